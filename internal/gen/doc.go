// Package gen provides deterministic Go code generation for variant registries.
//
// Generation approach uses text/template + go/format. The output is a single
// file whose init function registers every discovered implementation with a
// catalog universe, using the implementation's constructor as the factory
// when it has one.
package gen
