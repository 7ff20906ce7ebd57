// Package demo is a small game object model rendered by the polyfield CLI.
//
// Player carries a proxied health value, a polymorphic Person and a read-only
// counter. The Person variants are registered into catalog.Default by the
// generated variants_gen.go; regenerate it with
//
//	go generate ./demo
package demo

//go:generate go run polyfield/cmd/variantgen --interface polyfield/demo.Person --output . .
