// Package catalog discovers and caches the concrete variants that can be
// stored in an interface-typed field.
//
// Go cannot enumerate the types linked into a binary, so discovery runs over
// a Universe: an ordered set of registrations populated by self-registration
// from init functions or by a table generated with cmd/variantgen.
//
// Key types:
//   - Universe: ordered type provider, in registration order
//   - Variant: a concrete type plus its optional default factory
//   - Catalog: resolves an interface to its variants, caching at most
//     MaxEntries interfaces with first-in first-out eviction
//
// Variants registered after an interface was first resolved are not visible
// through the cached entry until it is evicted or the catalog is Reset.
package catalog
