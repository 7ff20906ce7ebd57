package proxy

import (
	"errors"
	"fmt"
	"reflect"

	"polyfield/internal/match"
	"polyfield/internal/pathres"
)

// ErrBinding is wrapped by every *BindingError.
var ErrBinding = errors.New("invalid proxy binding")

// BindingError describes why an accessor cannot be bound.
type BindingError struct {
	Owner    reflect.Type
	Accessor string
	Reason   string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("proxy accessor %q on %s: %s", e.Accessor, e.Owner, e.Reason)
}

func (e *BindingError) Unwrap() error {
	return ErrBinding
}

// Mode is the synchronization direction chosen for a binding.
//
//go:generate go tool stringer -type=Mode -linecomment
type Mode int

const (
	// ModeNone never synchronizes.
	ModeNone Mode = iota // none
	// ModeRoundTrip runs SetN(N()).
	ModeRoundTrip // round-trip
	// ModeMirror copies N() into the field.
	ModeMirror // mirror
	// ModePush runs SetN(field).
	ModePush // push
)

var errorType = reflect.TypeFor[error]()

// Binding is an accessor resolved against one owner.
type Binding struct {
	Name     string
	Type     reflect.Type // declared value type of the accessor
	Readable bool
	Writable bool

	getter reflect.Value
	setter reflect.Value
}

// Mode returns the synchronization direction implied by the accessor's capabilities.
func (b *Binding) Mode() Mode {
	switch {
	case b.Readable && b.Writable:
		return ModeRoundTrip
	case b.Readable:
		return ModeMirror
	case b.Writable:
		return ModePush
	default:
		return ModeNone
	}
}

// Get calls the getter.
func (b *Binding) Get() reflect.Value {
	return b.getter.Call(nil)[0]
}

// Set calls the setter with v.
func (b *Binding) Set(v reflect.Value) error {
	out := b.setter.Call([]reflect.Value{v})
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}

	return nil
}

// Bind resolves accessor on owner and checks that a value of fieldType can be
// assigned to it.
func Bind(owner reflect.Value, accessor string, fieldType reflect.Type) (*Binding, error) {
	if !owner.IsValid() {
		return nil, &BindingError{Accessor: accessor, Reason: "owner is invalid"}
	}

	recv := owner
	if owner.Kind() != reflect.Pointer && owner.CanAddr() {
		recv = owner.Addr()
	}

	b := &Binding{Name: accessor}

	if m := recv.MethodByName(accessor); m.IsValid() && isGetter(m.Type()) {
		b.getter = m
		b.Readable = true
		b.Type = m.Type().Out(0)
	}

	if m := recv.MethodByName("Set" + accessor); m.IsValid() && isSetter(m.Type()) {
		b.setter = m
		b.Writable = true

		in := m.Type().In(0)
		if b.Type != nil && b.Type != in {
			return nil, &BindingError{
				Owner:    owner.Type(),
				Accessor: accessor,
				Reason:   fmt.Sprintf("getter returns %s but setter takes %s", b.Type, in),
			}
		}

		b.Type = in
	}

	if !b.Readable && !b.Writable {
		return nil, &BindingError{
			Owner:    owner.Type(),
			Accessor: accessor,
			Reason:   "accessor not found" + match.DidYouMean(accessor, getterNames(recv.Type())),
		}
	}

	if !fieldType.AssignableTo(b.Type) {
		return nil, &BindingError{
			Owner:    owner.Type(),
			Accessor: accessor,
			Reason:   fmt.Sprintf("accessor type %s does not accept field type %s", b.Type, fieldType),
		}
	}

	return b, nil
}

// Synchronize binds accessor on owner and reconciles it with the named field.
// The returned mode is the direction that was applied.
func Synchronize(owner reflect.Value, field, accessor string) (Mode, error) {
	for owner.IsValid() && owner.Kind() == reflect.Interface && !owner.IsNil() {
		owner = owner.Elem()
	}

	target, err := fieldOf(owner, field)
	if err != nil {
		return ModeNone, err
	}

	b, err := Bind(owner, accessor, target.Type())
	if err != nil {
		return ModeNone, err
	}

	return b.Mode(), Apply(b, target)
}

// Apply performs the synchronization chosen by b's mode against field.
func Apply(b *Binding, field reflect.Value) error {
	switch b.Mode() {
	case ModeRoundTrip:
		if err := b.Set(b.Get()); err != nil {
			return fmt.Errorf("proxy %s round trip: %w", b.Name, err)
		}
	case ModeMirror:
		v := b.Get()
		if !field.CanSet() {
			return fmt.Errorf("proxy %s: field is not settable", b.Name)
		}

		if !v.Type().AssignableTo(field.Type()) {
			return fmt.Errorf("proxy %s: %s cannot be stored in %s", b.Name, v.Type(), field.Type())
		}

		field.Set(v)
	case ModePush:
		if !field.CanInterface() {
			return fmt.Errorf("proxy %s: field is not readable", b.Name)
		}

		if err := b.Set(field); err != nil {
			return fmt.Errorf("proxy %s push: %w", b.Name, err)
		}
	case ModeNone:
	}

	return nil
}

func fieldOf(owner reflect.Value, name string) (reflect.Value, error) {
	strct := owner
	if strct.Kind() == reflect.Pointer {
		if strct.IsNil() {
			return reflect.Value{}, &BindingError{Owner: owner.Type(), Accessor: name, Reason: "owner is nil"}
		}

		strct = strct.Elem()
	}

	if strct.Kind() != reflect.Struct {
		return reflect.Value{}, &BindingError{Owner: owner.Type(), Accessor: name, Reason: "owner is not a struct"}
	}

	index, ok := pathres.FieldIndex(strct.Type(), name)
	if !ok {
		return reflect.Value{}, &BindingError{Owner: owner.Type(), Accessor: name, Reason: "field " + name + " not found"}
	}

	f, err := strct.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, &BindingError{Owner: owner.Type(), Accessor: name, Reason: err.Error()}
	}

	return f, nil
}

// getterNames lists the methods of t shaped like getters.
func getterNames(t reflect.Type) []string {
	var names []string

	for i := range t.NumMethod() {
		if m := t.Method(i); isGetter(m.Type) {
			names = append(names, m.Name)
		}
	}

	return names
}

// isGetter and isSetter check bound method types, which have no receiver parameter.
func isGetter(t reflect.Type) bool {
	return t.NumIn() == 0 && t.NumOut() == 1
}

func isSetter(t reflect.Type) bool {
	if t.NumIn() != 1 {
		return false
	}

	return t.NumOut() == 0 || (t.NumOut() == 1 && t.Out(0) == errorType)
}
