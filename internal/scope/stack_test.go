package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_PushReturnsConjunction(t *testing.T) {
	var s Stack

	assert.True(t, s.Effective())
	assert.True(t, s.Push(true))
	assert.False(t, s.Push(false))
	assert.False(t, s.Push(true), "read-only ancestor must win")
	assert.Equal(t, 3, s.Depth())

	assert.False(t, s.Pop())
	assert.True(t, s.Pop(), "removing the false restores writability")
	assert.True(t, s.Pop())
	assert.Equal(t, 0, s.Depth())
}

func TestStack_PopOnEmpty(t *testing.T) {
	var s Stack

	assert.True(t, s.Pop())

	s.Push(false)
	s.Push(false)
	assert.False(t, s.Pop())
	assert.True(t, s.Pop())
	assert.True(t, s.Pop(), "extra pop on an empty stack is fully writable")
	assert.True(t, s.Effective())
}

func TestStack_EffectiveMatchesConjunction(t *testing.T) {
	sequences := [][]bool{
		{},
		{true},
		{false},
		{true, true, false, true},
		{false, true, false},
		{true, true, true},
	}

	for _, seq := range sequences {
		var s Stack

		for i, v := range seq {
			got := s.Push(v)
			assert.Equal(t, conjunction(seq[:i+1]), got)
		}

		for i := len(seq) - 1; i >= 0; i-- {
			got := s.Pop()
			assert.Equal(t, conjunction(seq[:i]), got)
			assert.Equal(t, got, s.Effective())
		}
	}
}

func TestGuard_RestoresPreviousState(t *testing.T) {
	var s Stack

	outer := s.Enter(true)
	require.True(t, outer.Effective)

	func() {
		inner := s.Enter(false)
		defer inner.Exit()

		assert.False(t, inner.Effective)

		nested := s.Enter(true)
		defer nested.Exit()

		assert.False(t, nested.Effective)
	}()

	assert.True(t, s.Effective())
	assert.Equal(t, 1, s.Depth())

	assert.True(t, outer.Exit())
	assert.True(t, outer.Exit(), "second exit is a no-op")
	assert.Equal(t, 0, s.Depth())
}

func TestStack_Reset(t *testing.T) {
	var s Stack

	s.Push(false)
	s.Push(true)
	s.Reset()

	assert.True(t, s.Effective())
	assert.Equal(t, 0, s.Depth())
}

func conjunction(vs []bool) bool {
	for _, v := range vs {
		if !v {
			return false
		}
	}

	return true
}
