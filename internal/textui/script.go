package textui

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one scripted interaction.
type Step struct {
	Path   string  `yaml:"path"`
	Select *string `yaml:"select,omitempty"`
	Value  *string `yaml:"value,omitempty"`
	Expand *bool   `yaml:"expand,omitempty"`
}

// Script is an ordered list of steps. Each step is applied in its own pass.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// LoadScript reads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file %s: %w", path, err)
	}

	return ParseScript(data)
}

// ParseScript parses YAML script data and validates every step.
func ParseScript(data []byte) (*Script, error) {
	var s Script

	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script YAML: %w", err)
	}

	var errs []error

	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &s, nil
}

func (s Step) validate() error {
	if s.Path == "" {
		return errors.New("path is required")
	}

	actions := 0
	for _, set := range []bool{s.Select != nil, s.Value != nil, s.Expand != nil} {
		if set {
			actions++
		}
	}

	if actions != 1 {
		return fmt.Errorf("%s: exactly one of select, value or expand is required", s.Path)
	}

	return nil
}
