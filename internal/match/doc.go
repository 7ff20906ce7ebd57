// Package match provides name normalization, Levenshtein distance calculation
// and "did you mean" suggestions for misspelled names.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: picks the closest of a set of known names
package match
