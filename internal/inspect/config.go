package inspect

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"polyfield/internal/match"
)

// TagName is the struct tag key read by the inspector.
const TagName = "inspect"

var tagOptions = []string{"name", "tooltip", "order", "readonly", "proxy", "fixed"}

// FieldConfig is the per-field configuration.
type FieldConfig struct {
	DisplayName      string
	Tooltip          string
	Order            int
	CanWrite         bool
	Proxy            string
	CanSwitchVariant bool
}

// DefaultFieldConfig returns the configuration of an untagged field.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		CanWrite:         true,
		CanSwitchVariant: true,
	}
}

// ParseTag parses an `inspect` tag value. hidden is true for "-".
func ParseTag(tag string) (cfg FieldConfig, hidden bool, err error) {
	cfg = DefaultFieldConfig()

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return cfg, false, nil
	}

	if tag == "-" {
		return cfg, true, nil
	}

	for part := range strings.SplitSeq(tag, ",") {
		key, value, hasValue := strings.Cut(strings.TrimSpace(part), "=")

		switch key {
		case "name":
			cfg.DisplayName = value
		case "tooltip":
			cfg.Tooltip = value
		case "order":
			n, convErr := strconv.Atoi(value)
			if convErr != nil {
				return DefaultFieldConfig(), false, fmt.Errorf("invalid order %q: %w", value, convErr)
			}

			cfg.Order = n
		case "readonly":
			cfg.CanWrite = false
		case "proxy":
			if value == "" {
				return DefaultFieldConfig(), false, fmt.Errorf("proxy requires an accessor name")
			}

			cfg.Proxy = value
		case "fixed":
			cfg.CanSwitchVariant = false
		case "":
			continue
		default:
			return DefaultFieldConfig(), false, fmt.Errorf("unknown option %q%s", key, match.DidYouMean(key, tagOptions))
		}

		if hasValue && (key == "readonly" || key == "fixed") {
			return DefaultFieldConfig(), false, fmt.Errorf("option %q takes no value", key)
		}
	}

	return cfg, false, nil
}

// FieldOverride holds overlay values; nil members keep the tag value.
type FieldOverride struct {
	Name     *string `yaml:"name,omitempty"`
	Tooltip  *string `yaml:"tooltip,omitempty"`
	Order    *int    `yaml:"order,omitempty"`
	ReadOnly *bool   `yaml:"readonly,omitempty"`
	Proxy    *string `yaml:"proxy,omitempty"`
	Fixed    *bool   `yaml:"fixed,omitempty"`
	Hidden   *bool   `yaml:"hidden,omitempty"`
}

// Overlay overrides field configuration without touching struct tags.
//
//	types:
//	  demo.Player:
//	    HP:
//	      name: Health
//	      proxy: Health
//	    B:
//	      readonly: true
type Overlay struct {
	// Types maps an owner type name (reflect.Type.String) to field overrides.
	Types map[string]map[string]FieldOverride `yaml:"types"`
}

// LoadOverlay loads an overlay from a YAML file.
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overlay file %s: %w", path, err)
	}

	return ParseOverlay(data)
}

// ParseOverlay parses YAML overlay data.
func ParseOverlay(data []byte) (*Overlay, error) {
	var ov Overlay

	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("failed to parse overlay YAML: %w", err)
	}

	return &ov, nil
}

// Apply returns cfg with any override for owner.field applied.
func (o *Overlay) Apply(owner reflect.Type, field string, cfg FieldConfig, hidden bool) (FieldConfig, bool) {
	if o == nil {
		return cfg, hidden
	}

	ov, ok := o.Types[owner.String()][field]
	if !ok {
		return cfg, hidden
	}

	if ov.Name != nil {
		cfg.DisplayName = *ov.Name
	}

	if ov.Tooltip != nil {
		cfg.Tooltip = *ov.Tooltip
	}

	if ov.Order != nil {
		cfg.Order = *ov.Order
	}

	if ov.ReadOnly != nil {
		cfg.CanWrite = !*ov.ReadOnly
	}

	if ov.Proxy != nil {
		cfg.Proxy = *ov.Proxy
	}

	if ov.Fixed != nil {
		cfg.CanSwitchVariant = !*ov.Fixed
	}

	if ov.Hidden != nil {
		hidden = *ov.Hidden
	}

	return cfg, hidden
}
