package pathres

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaf struct {
	C int
}

type middle struct {
	B []*leaf
}

type root struct {
	A *middle
}

type base struct {
	ID   string
	Tags []string
}

type derived struct {
	base
	Name  string
	Inner any
	Ptr   *leaf
	Grid  [2][]leaf
}

func newRoot() *root {
	return &root{A: &middle{B: []*leaf{{C: 0}, {C: 1}, {C: 2}}}}
}

func TestResolveOwner_SequenceElement(t *testing.T) {
	r := newRoot()

	owner, err := ResolveOwner(r, "A.B[2].C")
	require.NoError(t, err)
	assert.Same(t, r.A.B[2], owner.Addr().Interface())

	owner, err = ResolveOwner(r, "A.B.Array.data[1].C")
	require.NoError(t, err)
	assert.Same(t, r.A.B[1], owner.Addr().Interface())
	assert.True(t, owner.FieldByName("C").CanSet())
}

func TestResolveOwner_IndexOutOfRange(t *testing.T) {
	_, err := ResolveOwner(newRoot(), "A.B[9].C")
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "[9]", resErr.Segment)
	assert.Equal(t, "A.B[9].C", resErr.Path)
}

func TestResolveOwner_TopLevelFieldIsOwnedByRoot(t *testing.T) {
	r := newRoot()

	owner, err := ResolveOwner(r, "A")
	require.NoError(t, err)
	assert.Same(t, r, owner.Addr().Interface())
}

func TestResolveOwner_EmbeddedMembers(t *testing.T) {
	d := &derived{
		base:  base{ID: "x", Tags: []string{"t"}},
		Inner: &leaf{C: 7},
		Grid:  [2][]leaf{nil, {{C: 4}}},
	}

	owner, err := ResolveOwner(d, "Inner.C")
	require.NoError(t, err)
	assert.Equal(t, 7, owner.FieldByName("C").Interface())

	// Promoted through the embedded base.
	owner, err = ResolveOwner(d, "Tags[0]")
	require.NoError(t, err)
	assert.Equal(t, reflect.Slice, owner.Kind())

	owner, err = ResolveOwner(d, "Grid[1][0].C")
	require.NoError(t, err)
	assert.Equal(t, 4, owner.FieldByName("C").Interface())
}

func TestResolveOwner_Failures(t *testing.T) {
	d := &derived{Inner: 3}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing member", "Nope.C", ErrMemberNotFound},
		{"member on non-struct", "Inner.C.D", ErrMemberNotFound},
		{"nil pointer", "Ptr.C", ErrNilReference},
		{"nil before index", "Ptr[0].C", ErrNilReference},
		{"index on non-sequence", "Name[0].X", ErrNotSequence},
		{"nil element slice", "Grid[0][0].C", ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, err := ResolveOwner(d, tt.path)
			require.ErrorIs(t, err, tt.want)
			assert.False(t, owner.IsValid())
		})
	}

	_, err := ResolveOwner(nil, "A.B")
	require.ErrorIs(t, err, ErrNilReference)

	_, err = ResolveOwner(d, "bad..path")
	require.Error(t, err)
}

func TestFieldIndex_Memoized(t *testing.T) {
	typ := reflect.TypeFor[derived]()

	idx, ok := FieldIndex(typ, "ID")
	require.True(t, ok)
	assert.Equal(t, []int{0, 0}, idx)

	again, ok := FieldIndex(typ, "ID")
	require.True(t, ok)
	assert.Equal(t, idx, again)

	_, ok = FieldIndex(typ, "Missing")
	assert.False(t, ok)
	_, ok = FieldIndex(typ, "Missing")
	assert.False(t, ok)
}
