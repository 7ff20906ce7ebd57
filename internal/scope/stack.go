package scope

// Stack is a boolean-AND stack. The zero value is an empty, fully writable stack.
type Stack struct {
	values []bool
	falses int
}

// Push records enabled and returns the AND of every pushed value, including this one.
func (s *Stack) Push(enabled bool) bool {
	s.values = append(s.values, enabled)
	if !enabled {
		s.falses++
	}

	return s.falses == 0
}

// Pop removes the most recently pushed value and returns the AND of what remains.
// Popping an empty stack returns true.
func (s *Stack) Pop() bool {
	if len(s.values) == 0 {
		return true
	}

	last := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]

	if !last {
		s.falses--
	}

	return s.falses == 0
}

// Effective returns the AND of all currently pushed values.
func (s *Stack) Effective() bool {
	return s.falses == 0
}

// Depth returns the number of active scopes.
func (s *Stack) Depth() int {
	return len(s.values)
}

// Reset drops every active scope.
func (s *Stack) Reset() {
	s.values = s.values[:0]
	s.falses = 0
}

// Guard is an active scope entered with Enter.
type Guard struct {
	stack *Stack
	depth int

	// Effective is the writability in force inside the scope.
	Effective bool
}

// Enter pushes enabled and returns a guard whose Exit restores the previous
// effective value:
//
//	g := stack.Enter(cfg.CanWrite)
//	defer g.Exit()
func (s *Stack) Enter(enabled bool) Guard {
	effective := s.Push(enabled)

	return Guard{stack: s, depth: len(s.values), Effective: effective}
}

// Exit leaves the scope and returns the restored effective value.
// Calling Exit more than once, or on a guard whose scope was already popped,
// does not touch the stack.
func (g *Guard) Exit() bool {
	if g.stack == nil {
		return true
	}

	s := g.stack
	g.stack = nil

	if len(s.values) != g.depth {
		return s.Effective()
	}

	return s.Pop()
}
