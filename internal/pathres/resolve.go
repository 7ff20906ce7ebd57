package pathres

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrMemberNotFound means no field with the segment's name exists on the
	// current type or any type it embeds.
	ErrMemberNotFound = errors.New("member not found")
	// ErrIndexOutOfRange means an index segment exceeds the sequence length.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotSequence means an index segment was applied to a non-sequence value.
	ErrNotSequence = errors.New("not a sequence")
	// ErrNilReference means a nil pointer or interface was met before the owner.
	ErrNilReference = errors.New("nil reference")
)

// ResolutionError reports the segment at which owner resolution failed.
type ResolutionError struct {
	Path    string
	Segment string
	Err     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve owner of %q at %q: %v", e.Path, e.Segment, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ResolveOwner parses path and returns the object that directly holds its final segment.
func ResolveOwner(root any, path string) (reflect.Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return reflect.Value{}, err
	}

	return p.Owner(reflect.ValueOf(root))
}

// Owner walks every segment but the last from root and returns the value reached,
// with pointers and interfaces followed. Struct owners reached through pointers
// are addressable.
func (p Path) Owner(root reflect.Value) (reflect.Value, error) {
	if p.IsEmpty() {
		return reflect.Value{}, errors.New("empty path has no owner")
	}

	return p.Parent().Walk(root)
}

// Walk follows every segment of p from root and returns the value reached.
func (p Path) Walk(root reflect.Value) (reflect.Value, error) {
	cur, err := indirect(root)
	if err != nil {
		return reflect.Value{}, &ResolutionError{Path: p.String(), Segment: "<root>", Err: err}
	}

	for _, seg := range p.Segments {
		next, err := step(cur, seg)
		if err != nil {
			return reflect.Value{}, &ResolutionError{Path: p.String(), Segment: seg.String(), Err: err}
		}

		cur, err = indirect(next)
		if err != nil {
			return reflect.Value{}, &ResolutionError{Path: p.String(), Segment: seg.String(), Err: err}
		}
	}

	return cur, nil
}

func step(cur reflect.Value, seg Segment) (reflect.Value, error) {
	if seg.Kind == SegmentIndex {
		switch cur.Kind() {
		case reflect.Slice, reflect.Array:
		default:
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotSequence, cur.Type())
		}

		if seg.Index >= cur.Len() {
			return reflect.Value{}, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, seg.Index, cur.Len())
		}

		return cur.Index(seg.Index), nil
	}

	if cur.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %s has no members", ErrMemberNotFound, cur.Type())
	}

	index, ok := FieldIndex(cur.Type(), seg.Name)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s", ErrMemberNotFound, cur.Type(), seg.Name)
	}

	field, err := cur.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %v", ErrNilReference, err)
	}

	return field, nil
}

// indirect follows pointers and interfaces until a concrete value is reached.
func indirect(v reflect.Value) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Value{}, ErrNilReference
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrNilReference, v.Type())
		}

		v = v.Elem()
	}

	return v, nil
}

type fieldKey struct {
	typ  reflect.Type
	name string
}

var fieldIndexCache sync.Map // fieldKey -> []int, nil when absent

// FieldIndex finds name on the struct type t, searching t's own fields and then
// its embedded structs outward. Results are memoized per (type, name).
func FieldIndex(t reflect.Type, name string) ([]int, bool) {
	key := fieldKey{typ: t, name: name}
	if cached, ok := fieldIndexCache.Load(key); ok {
		index := cached.([]int)
		return index, index != nil
	}

	var index []int
	if f, ok := t.FieldByName(name); ok {
		index = f.Index
	}

	fieldIndexCache.Store(key, index)

	return index, index != nil
}
