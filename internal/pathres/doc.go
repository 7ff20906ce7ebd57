// Package pathres resolves the owner of a field from a structural path.
//
// # Path Syntax
//
// Paths are dot-separated member names with bracketed sequence indices:
//   - Simple fields: "Name"
//   - Nested fields: "Address.Street"
//   - Sequence elements: "Items[2]"
//   - Fields within elements: "Items[2].ProductID"
//
// The serialized-property spelling "Items.Array.data[2]" is accepted and
// normalized to "Items[2]".
//
// # Resolution
//
// ResolveOwner drops the final segment (the leaf field) and walks the rest
// from the root. Member lookup searches the struct's own fields first and
// then its embedded structs, outward. Pointers and interfaces are followed
// between segments. Any segment that cannot be matched is reported as a
// *ResolutionError; nil is never substituted for a missing owner.
package pathres
