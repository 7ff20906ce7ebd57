package inspect

import (
	"cmp"
	"reflect"
	"slices"
	"strconv"

	"polyfield/internal/diagnostic"
	"polyfield/internal/pathres"
)

// FieldState is one field of the current pass. It is rebuilt on every pass.
type FieldState struct {
	// Owner is the struct or sequence holding the field.
	Owner reflect.Value
	// Name is the member name; empty for sequence elements.
	Name     string
	Path     pathres.Path
	Declared reflect.Type
	Value    reflect.Value
	Expanded bool
	Depth    int
	Config   FieldConfig
}

func (fs *FieldState) label() Label {
	text := fs.Config.DisplayName
	if text == "" {
		text = fs.Name
	}

	if text == "" && !fs.Path.IsEmpty() && fs.Path.Leaf().Kind == pathres.SegmentIndex {
		text = "Element " + strconv.Itoa(fs.Path.Leaf().Index)
	}

	return Label{Text: text, Tooltip: fs.Config.Tooltip, Path: fs.Path.String()}
}

// descendants lists the members of v depth-first. Direct members are reported at
// depth, members of inline structs and sequences deeper. Pointers and interfaces
// are not followed: they are expanded through their own field.
func (in *Inspector) descendants(p *pass, v reflect.Value, path pathres.Path, depth int, out []*FieldState) []*FieldState {
	var direct []*FieldState

	switch v.Kind() {
	case reflect.Struct:
		direct = in.structMembers(p, v, path, depth)
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			direct = append(direct, &FieldState{
				Owner:    v,
				Path:     path.Index(i),
				Declared: v.Type().Elem(),
				Value:    v.Index(i),
				Depth:    depth,
				Config:   DefaultFieldConfig(),
			})
		}
	default:
		return out
	}

	for _, fs := range direct {
		fs.Expanded = in.expanded[fs.Path.String()]
		out = append(out, fs)

		switch fs.Value.Kind() {
		case reflect.Struct, reflect.Slice, reflect.Array:
			if isComposite(fs.Declared) {
				out = in.descendants(p, fs.Value, fs.Path, depth+1, out)
			}
		}
	}

	return out
}

// structMembers returns the visible fields of v, including fields promoted from
// embedded structs, sorted by their order option.
func (in *Inspector) structMembers(p *pass, v reflect.Value, path pathres.Path, depth int) []*FieldState {
	var members []*FieldState

	seen := make(map[reflect.Type]bool)

	var walk func(t reflect.Type, prefix []int)
	walk = func(t reflect.Type, prefix []int) {
		if seen[t] {
			return
		}
		seen[t] = true

		for i := range t.NumField() {
			sf := t.Field(i)
			index := append(append([]int{}, prefix...), i)

			if sf.Anonymous {
				et := sf.Type
				if et.Kind() == reflect.Pointer {
					et = et.Elem()
				}

				if et.Kind() == reflect.Struct {
					walk(et, index)
					continue
				}
			}

			if !sf.IsExported() {
				continue
			}

			// Shadowed or ambiguous promoted names resolve elsewhere, or not at all.
			if resolved, ok := pathres.FieldIndex(v.Type(), sf.Name); !ok || !slices.Equal(resolved, index) {
				continue
			}

			value, err := v.FieldByIndexErr(index)
			if err != nil {
				continue
			}

			cfg, hidden, err := ParseTag(sf.Tag.Get(TagName))
			if err != nil {
				in.report(p, diagnostic.DiagnosticWarning, diagnostic.CodeTag,
					"invalid inspect tag: "+err.Error(), t.String(), path.Field(sf.Name).String())
			}

			cfg, hidden = in.overlay.Apply(t, sf.Name, cfg, hidden)
			if hidden {
				continue
			}

			members = append(members, &FieldState{
				Owner:    v,
				Name:     sf.Name,
				Path:     path.Field(sf.Name),
				Declared: sf.Type,
				Value:    value,
				Depth:    depth,
				Config:   cfg,
			})
		}
	}

	walk(v.Type(), nil)

	slices.SortStableFunc(members, func(a, b *FieldState) int {
		return cmp.Compare(a.Config.Order, b.Config.Order)
	})

	return members
}

// isComposite reports whether t renders as a foldout over nested members.
func isComposite(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct:
		return hasVisibleFields(t, nil)
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() != reflect.Uint8
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct && hasVisibleFields(t.Elem(), nil)
	default:
		return false
	}
}

func hasVisibleFields(t reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[t] {
		return false
	}

	if seen == nil {
		seen = make(map[reflect.Type]bool)
	}
	seen[t] = true

	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.IsExported() {
			return true
		}

		if sf.Anonymous {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}

			if et.Kind() == reflect.Struct && hasVisibleFields(et, seen) {
				return true
			}
		}
	}

	return false
}
