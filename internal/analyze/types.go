package analyze

import (
	"cmp"

	"polyfield/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "polyfield/demo"
	Name    string // e.g., "Student"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// ParseTypeID parses "import/path.Name". The package path may contain dots.
func ParseTypeID(s string) (TypeID, bool) {
	for i := len(s) - 1; i > 0; i-- {
		if s[i] == '.' {
			if i == len(s)-1 {
				return TypeID{}, false
			}

			return TypeID{PkgPath: s[:i], Name: s[i+1:]}, true
		}

		if s[i] == '/' {
			break
		}
	}

	return TypeID{}, false
}

// Compare orders type IDs by package path, then name.
func (t TypeID) Compare(o TypeID) int {
	return cmp.Or(cmp.Compare(t.PkgPath, o.PkgPath), cmp.Compare(t.Name, o.Name))
}

// Qualifier returns the package alias used to refer to t from package from.
func (t TypeID) Qualifier(from string) string {
	if t.PkgPath == from {
		return ""
	}

	return common.PkgAlias(t.PkgPath)
}

// Implementation is a concrete type satisfying an interface.
type Implementation struct {
	ID TypeID
	// Pointer is true when the type is registered as *T.
	Pointer bool
	// Constructor is the name of a zero-argument function returning the
	// registered form, or "" when there is none.
	Constructor string
}

// TypeExpr returns the Go expression for the registered type as seen from package from.
func (i Implementation) TypeExpr(from string) string {
	name := i.ID.Name
	if q := i.ID.Qualifier(from); q != "" {
		name = q + "." + name
	}

	if i.Pointer {
		return "*" + name
	}

	return name
}

// Report lists the implementations of one interface.
type Report struct {
	Interface       TypeID
	Implementations []Implementation
}
