package catalog

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"polyfield/internal/common"
)

// ErrNoFactory is returned by Construct in strict mode for variants without a factory.
var ErrNoFactory = errors.New("variant has no default factory")

// Construction reports how an instance was produced.
type Construction int

const (
	// ConstructedByFactory means the variant's registered factory built the instance.
	ConstructedByFactory Construction = iota
	// ConstructedZero means the instance is a zero value: nothing a factory would
	// normally establish holds for it, and consumers must tolerate that.
	ConstructedZero
)

// String returns a human-readable construction name.
func (k Construction) String() string {
	switch k {
	case ConstructedByFactory:
		return "factory"
	case ConstructedZero:
		return "zero"
	default:
		return common.UnknownStr
	}
}

// Construct builds a new instance of v. The returned value's type is exactly v.Type.
// Pointer variants without a factory get a pointer to a zero-valued element.
func (c *Catalog) Construct(v Variant) (reflect.Value, Construction, error) {
	if v.Factory != nil {
		produced := v.Factory()
		if produced == nil {
			return reflect.Value{}, ConstructedByFactory, fmt.Errorf("factory for %s returned nil", v)
		}

		rv := reflect.ValueOf(produced)
		if rv.Type() != v.Type {
			return reflect.Value{}, ConstructedByFactory,
				fmt.Errorf("factory for %s returned %s", v, rv.Type())
		}

		return rv, ConstructedByFactory, nil
	}

	if c.strict {
		return reflect.Value{}, ConstructedZero, fmt.Errorf("construct %s: %w", v, ErrNoFactory)
	}

	c.logger.Debug("constructing zero-valued variant", zap.Stringer("variant", v.Type))

	if v.Type.Kind() == reflect.Pointer {
		return reflect.New(v.Type.Elem()), ConstructedZero, nil
	}

	return reflect.New(v.Type).Elem(), ConstructedZero, nil
}
