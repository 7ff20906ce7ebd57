// Package inspect renders and edits object graphs with interface-typed fields
// through a host Surface.
//
// An Inspector walks the exported fields of a root struct. Interface-typed
// fields get a variant selector whose option 0 is "None (null)" followed by
// every variant the catalog resolves for the interface. Choosing an option
// replaces the field value and commits it to the Store before anything nested
// is read. Expanded values render their members one level deeper per pass;
// deeper levels appear as their own foldouts are opened, which bounds the
// work done on self-referential graphs.
//
// Fields are configured with the `inspect` struct tag:
//
//	HP     int    `inspect:"name=Health,tooltip=Hit points,proxy=Health"`
//	Person Person `inspect:"fixed"`
//	B      int    `inspect:"readonly,order=-1"`
//	Secret string `inspect:"-"`
//
// Options: name, tooltip, order (stable sort among siblings), readonly,
// proxy (accessor synchronized after edits, see package proxy) and fixed
// (variant selector is not interactive). Tag values cannot contain commas.
// A YAML Overlay can override tag values per owner type and field.
//
// Failures stay local to one field: Render keeps going and returns the joined
// field errors at the end. Binding problems are reported as diagnostics only.
package inspect
