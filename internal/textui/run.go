package textui

import (
	"errors"
	"fmt"

	"polyfield/internal/inspect"
	"polyfield/internal/match"
)

// Renderer is the part of an inspector a script drives.
type Renderer interface {
	Render(root any) error
}

// Run applies script to root, one pass per step. A failing step does not stop
// the script; every failure is returned joined.
func Run(r Renderer, s *Surface, root any, script *Script) error {
	var errs []error

	for i, step := range script.Steps {
		s.Stage(step)

		err := r.Render(root)
		if err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}

		if err := s.Err(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}

		for _, path := range s.Pending() {
			errs = append(errs, fmt.Errorf("step %d: %s was not rendered%s", i+1, path, match.DidYouMean(path, s.drawn)))
		}

		clear(s.pending)
	}

	return errors.Join(errs...)
}

var _ inspect.Surface = (*Surface)(nil)
