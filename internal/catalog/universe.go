package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrInterfaceVariant is returned when an interface type is registered as a variant.
	ErrInterfaceVariant = errors.New("interface types cannot be variants")
	// ErrDuplicateVariant is returned when a type is registered twice.
	ErrDuplicateVariant = errors.New("variant already registered")
)

// Provider enumerates every type known to the process, in a stable order.
type Provider interface {
	Variants() []Variant
}

// Variant is a concrete type that can be assigned to some interface.
type Variant struct {
	Type reflect.Type
	// Name is the short display name. Pointer variants report their element's name.
	Name string
	// Factory builds a default instance. Nil means the variant is built as a zero value.
	Factory func() any
}

// String returns the fully qualified variant type.
func (v Variant) String() string {
	return v.Type.String()
}

// ShortName returns the display name for t, looking through one pointer level.
func ShortName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}

	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}

// Universe is an ordered, concurrency-safe set of variant registrations.
type Universe struct {
	mu       sync.RWMutex
	variants []Variant
	index    map[reflect.Type]int
}

// NewUniverse creates an empty universe.
func NewUniverse() *Universe {
	return &Universe{
		index: make(map[reflect.Type]int),
	}
}

// Default is the process-wide universe used by New when no provider is given.
var Default = NewUniverse()

// RegisterType adds t to the universe. factory may be nil.
func (u *Universe) RegisterType(t reflect.Type, factory func() any) error {
	if t == nil {
		return errors.New("nil variant type")
	}

	if t.Kind() == reflect.Interface {
		return fmt.Errorf("register %s: %w", t, ErrInterfaceVariant)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, exists := u.index[t]; exists {
		return fmt.Errorf("register %s: %w", t, ErrDuplicateVariant)
	}

	u.index[t] = len(u.variants)
	u.variants = append(u.variants, Variant{
		Type:    t,
		Name:    ShortName(t),
		Factory: factory,
	})

	return nil
}

// Variants returns a snapshot of all registrations in registration order.
func (u *Universe) Variants() []Variant {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make([]Variant, len(u.variants))
	copy(out, u.variants)

	return out
}

// Len returns the number of registrations.
func (u *Universe) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return len(u.variants)
}

// Register adds T to u. A nil factory registers T without a default factory,
// in which case it is constructed as a zero value.
func Register[T any](u *Universe, factory func() T) error {
	var wrapped func() any
	if factory != nil {
		wrapped = func() any { return factory() }
	}

	return u.RegisterType(reflect.TypeFor[T](), wrapped)
}

// MustRegister is like Register but panics on error. Intended for init functions.
func MustRegister[T any](u *Universe, factory func() T) {
	if err := Register(u, factory); err != nil {
		panic(err)
	}
}
