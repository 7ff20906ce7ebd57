// Package proxy keeps a raw struct field and a derived accessor on its owner in step.
//
// An accessor named N is the getter method N() T and/or the setter method
// SetN(T), optionally returning an error. After the raw field is edited the
// accessor's capabilities pick the direction of synchronization:
//
//	readable and writable  SetN(N())   the setter normalizes the raw value
//	readable only          field = N() the accessor is authoritative
//	writable only          SetN(field) the edit is pushed into the accessor
//
// Bindings are resolved on every call against the owner's exact runtime type;
// they are never cached because owners differ between calls.
package proxy
