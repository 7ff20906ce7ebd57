package catalog

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// MaxEntries is the number of interfaces the catalog keeps resolved at once.
const MaxEntries = 10

// Catalog resolves interfaces to their concrete variants. It is safe for concurrent use.
type Catalog struct {
	provider Provider
	strict   bool
	logger   *zap.Logger

	mu      sync.Mutex
	entries map[reflect.Type][]Variant
	order   []reflect.Type // insertion order, oldest first

	group singleflight.Group
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithProvider sets the type provider. Defaults to Default.
func WithProvider(p Provider) Option {
	return func(c *Catalog) { c.provider = p }
}

// WithStrictFactories makes Construct fail for variants registered without a factory
// instead of falling back to a zero value.
func WithStrictFactories() Option {
	return func(c *Catalog) { c.strict = true }
}

// WithLogger sets the logger used for eviction and construction messages.
func WithLogger(l *zap.Logger) Option {
	return func(c *Catalog) { c.logger = l }
}

// New creates a catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		provider: Default,
		logger:   zap.NewNop(),
		entries:  make(map[reflect.Type][]Variant),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Resolve returns the variants implementing abstract, in discovery order.
// abstract must be an interface type; any other type resolves to nil and is not cached.
// The returned slice is shared and must not be modified.
func (c *Catalog) Resolve(abstract reflect.Type) []Variant {
	if abstract == nil || abstract.Kind() != reflect.Interface {
		return nil
	}

	c.mu.Lock()
	if cached, ok := c.entries[abstract]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(flightKey(abstract), func() (any, error) {
		c.mu.Lock()
		if cached, ok := c.entries[abstract]; ok {
			c.mu.Unlock()
			return cached, nil
		}
		c.mu.Unlock()

		found := discover(c.provider, abstract)

		c.mu.Lock()
		defer c.mu.Unlock()

		c.insert(abstract, found)

		return found, nil
	})

	return v.([]Variant)
}

// insert adds an entry, evicting the oldest-inserted keys first. Caller holds mu.
func (c *Catalog) insert(abstract reflect.Type, variants []Variant) {
	for len(c.order) >= MaxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)

		c.logger.Debug("catalog entry evicted",
			zap.Stringer("interface", oldest),
			zap.Stringer("incoming", abstract))
	}

	c.entries[abstract] = variants
	c.order = append(c.order, abstract)
}

// Keys returns the cached interfaces, oldest first.
func (c *Catalog) Keys() []reflect.Type {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]reflect.Type, len(c.order))
	copy(out, c.order)

	return out
}

// Len returns the number of cached interfaces.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.order)
}

// Reset drops every cached entry.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[reflect.Type][]Variant)
	c.order = nil
}

// IndexOf returns the position of t within variants, or -1.
func IndexOf(variants []Variant, t reflect.Type) int {
	for i, v := range variants {
		if v.Type == t {
			return i
		}
	}

	return -1
}

func discover(p Provider, abstract reflect.Type) []Variant {
	var found []Variant

	for _, v := range p.Variants() {
		if v.Type.Kind() == reflect.Interface || v.Type == abstract {
			continue
		}

		if v.Type.Implements(abstract) {
			found = append(found, v)
		}
	}

	return found
}

// flightKey identifies abstract for singleflight by type identity. Distinct
// interfaces may share a name, for example when declared inside functions.
func flightKey(abstract reflect.Type) string {
	return fmt.Sprintf("%p", abstract)
}
