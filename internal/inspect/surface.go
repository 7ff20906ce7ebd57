package inspect

import "reflect"

// NoneOption is the selector entry that clears an interface field.
const NoneOption = "None (null)"

// Label is the caption of one rendered row.
type Label struct {
	Text    string
	Tooltip string
	// Path identifies the field from the root, e.g. "Person.Courses[1]".
	Path string
}

// Surface is the host rendering surface. Depth is the nesting level, for indentation.
type Surface interface {
	// Popup shows options with selected highlighted and returns the chosen index.
	// When enabled is false the result is ignored.
	Popup(depth int, label Label, selected int, options []string, enabled bool) int
	// Foldout shows a disclosure toggle and returns its new state.
	Foldout(depth int, label Label, expanded bool) bool
	// Field shows an editor for value and reports whether the user changed it.
	// value is settable only when enabled is true.
	Field(depth int, label Label, value reflect.Value, enabled bool) bool
}

// Store receives pending edits. Commit is called right after a variant switch,
// before proxy synchronization, and at the end of a pass that changed anything.
type Store interface {
	Commit() error
}

// StoreFunc adapts a function to Store.
type StoreFunc func() error

// Commit calls f.
func (f StoreFunc) Commit() error {
	return f()
}

type nopStore struct{}

func (nopStore) Commit() error { return nil }
