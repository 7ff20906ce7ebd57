// Package diagnostic provides structured warnings and errors raised while
// binding and rendering fields.
//
// Diagnostics travel on a side channel: they are collected per render pass
// and logged, never written into the edited object graph.
//
// Key capabilities:
//   - Owner resolution failures for a single field
//   - Invalid proxy accessor bindings
//   - Zero-value variant construction notices
//   - Out-of-range variant selections
package diagnostic
