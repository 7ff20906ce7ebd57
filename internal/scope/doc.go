// Package scope tracks effective writability across nested render levels.
//
// Every level pushes its own writability flag; the effective value is the
// logical AND of all flags currently on the stack, so a read-only ancestor
// forces every descendant to render read-only. Levels must be exited in
// LIFO order matching the recursive render call tree.
//
// A Stack is not safe for concurrent use. Each rendering surface owns its
// own instance.
package scope
