package textui

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"polyfield/internal/inspect"
	"polyfield/internal/match"
)

// Surface writes rows to an io.Writer and plays back staged steps.
// A staged step is consumed by the first row drawn at its path.
type Surface struct {
	w      io.Writer
	logger *zap.Logger

	pending map[string]Step
	errs    []error
	// drawn lists the paths drawn while steps were pending.
	drawn []string
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger consumed steps are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(s *Surface) { s.logger = l }
}

// New creates a surface writing to w.
func New(w io.Writer, opts ...Option) *Surface {
	s := &Surface{
		w:       w,
		logger:  zap.NewNop(),
		pending: make(map[string]Step),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetOutput redirects subsequent rows.
func (s *Surface) SetOutput(w io.Writer) {
	s.w = w
}

// Stage queues step for the next pass. A later step for the same path replaces it.
func (s *Surface) Stage(step Step) {
	s.pending[step.Path] = step
	s.drawn = s.drawn[:0]
}

// Pending returns the paths of staged steps not yet consumed, sorted.
func (s *Surface) Pending() []string {
	paths := make([]string, 0, len(s.pending))
	for p := range s.pending {
		paths = append(paths, p)
	}

	slices.Sort(paths)

	return paths
}

// Err returns and clears the errors collected while applying steps.
func (s *Surface) Err() error {
	err := errors.Join(s.errs...)
	s.errs = nil

	return err
}

func (s *Surface) take(path string, want func(Step) bool) (Step, bool) {
	if len(s.pending) == 0 {
		return Step{}, false
	}

	s.drawn = append(s.drawn, path)

	step, ok := s.pending[path]
	if !ok || !want(step) {
		return Step{}, false
	}

	delete(s.pending, path)
	s.logger.Debug("step applied", zap.String("path", path))

	return step, true
}

func (s *Surface) line(depth int, format string, args ...any) {
	fmt.Fprintf(s.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

// Popup implements inspect.Surface.
func (s *Surface) Popup(depth int, label inspect.Label, selected int, options []string, enabled bool) int {
	current := "?"
	if selected >= 0 && selected < len(options) {
		current = options[selected]
	}

	s.line(depth, "%s: <%s>%s", label.Text, current, lockedSuffix(enabled))

	step, ok := s.take(label.Path, func(st Step) bool { return st.Select != nil })
	if !ok {
		return selected
	}

	if !enabled {
		s.errs = append(s.errs, fmt.Errorf("%s: selector is read-only", label.Path))
		return selected
	}

	idx := slices.Index(options, *step.Select)
	if idx < 0 {
		s.errs = append(s.errs, fmt.Errorf("%s: unknown option %q%s",
			label.Path, *step.Select, match.DidYouMean(*step.Select, options)))

		return selected
	}

	return idx
}

// Foldout implements inspect.Surface. A foldout without a caption belongs to
// the selector row above it and draws nothing.
func (s *Surface) Foldout(depth int, label inspect.Label, expanded bool) bool {
	if step, ok := s.take(label.Path, func(st Step) bool { return st.Expand != nil }); ok {
		expanded = *step.Expand
	}

	if label.Text != "" {
		marker := "+"
		if expanded {
			marker = "-"
		}

		s.line(depth, "%s %s", marker, label.Text)
	}

	return expanded
}

// Field implements inspect.Surface.
func (s *Surface) Field(depth int, label inspect.Label, value reflect.Value, enabled bool) bool {
	changed := false

	if step, ok := s.take(label.Path, func(st Step) bool { return st.Value != nil }); ok {
		switch {
		case !enabled:
			s.errs = append(s.errs, fmt.Errorf("%s: field is read-only", label.Path))
		default:
			if err := Decode(*step.Value, value); err != nil {
				s.errs = append(s.errs, fmt.Errorf("%s: %w", label.Path, err))
			} else {
				changed = true
			}
		}
	}

	s.line(depth, "%s = %s%s", label.Text, Format(value), lockedSuffix(enabled))

	return changed
}

// Decode parses a YAML scalar into the settable value v.
func Decode(text string, v reflect.Value) error {
	if !v.CanSet() {
		return fmt.Errorf("cannot set %s", v.Type())
	}

	ptr := reflect.New(v.Type())
	if err := yaml.Unmarshal([]byte(text), ptr.Interface()); err != nil {
		return fmt.Errorf("decode %q as %s: %w", text, v.Type(), err)
	}

	v.Set(ptr.Elem())

	return nil
}

// Format renders a leaf value on one line.
func Format(v reflect.Value) string {
	if !v.IsValid() {
		return "<invalid>"
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return "<nil>"
		}
	case reflect.String:
		return fmt.Sprintf("%q", v.String())
	}

	if !v.CanInterface() {
		return "<" + v.Type().String() + ">"
	}

	return fmt.Sprintf("%v", v.Interface())
}

// Dump writes a deep listing of v.
func Dump(w io.Writer, v any) {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cfg.Fdump(w, v)
}

func lockedSuffix(enabled bool) string {
	if enabled {
		return ""
	}

	return " (read-only)"
}
