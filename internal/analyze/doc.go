// Package analyze provides package loading and implementation discovery.
//
// It uses golang.org/x/tools/go/packages with go/types to find the named
// concrete types of the loaded packages that implement a given interface,
// together with their zero-argument constructors.
//
// Key types:
//   - TypeID: package import path + type name
//   - Implementation: a concrete type, the form it is registered in, and its constructor
package analyze
