package match

import "fmt"

// MinSuggestScore is the normalized similarity a candidate needs to be suggested.
const MinSuggestScore = 0.6

// Suggest returns the candidate most similar to name. Ties go to the earlier
// candidate. ok is false when no candidate reaches MinSuggestScore.
func Suggest(name string, candidates []string) (best string, ok bool) {
	bestScore := MinSuggestScore

	for _, c := range candidates {
		if c == name {
			continue
		}

		if score := NormalizedLevenshteinScore(name, c); score >= bestScore && (!ok || score > bestScore) {
			best, bestScore, ok = c, score, true
		}
	}

	return best, ok
}

// DidYouMean returns a `; did you mean "X"?` suffix for error messages, or ""
// when nothing is close enough.
func DidYouMean(name string, candidates []string) string {
	if s, ok := Suggest(name, candidates); ok {
		return fmt.Sprintf("; did you mean %q?", s)
	}

	return ""
}
