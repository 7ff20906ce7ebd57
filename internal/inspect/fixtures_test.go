package inspect

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"polyfield/internal/catalog"
)

type Animal interface{ Sound() string }

type Dog struct {
	Name   string
	Tricks []string
}

func (d *Dog) Sound() string { return "woof" }

func NewDog() *Dog { return &Dog{Name: "Rex"} }

type Mood struct{ Level int }

type Cat struct {
	Lives int
	Mood  Mood
}

func (c Cat) Sound() string { return "meow" }

type Pen struct {
	Size int `inspect:"proxy=Area"`
}

func (p *Pen) Area() int { return p.Size }

func (p *Pen) SetArea(v int) { p.Size = max(v, 1) }

type Shelter struct {
	Capacity int
	Guest    Animal
}

type Zoo struct {
	HP     int    `inspect:"name=Health,tooltip=Hit points,proxy=Health"`
	Pet    Animal `inspect:"tooltip=Resident"`
	Fixed  Animal `inspect:"fixed"`
	Locked Shelter `inspect:"readonly"`
	Pens   []*Pen
	Count  int `inspect:"readonly,proxy=Total"`
	Broken int `inspect:"proxy=Missing"`
	Secret string `inspect:"-"`
	notes  string
}

func (z *Zoo) Health() int { return z.HP }

func (z *Zoo) SetHealth(v int) { z.HP = min(max(v, 0), 100) }

func (z *Zoo) Total() int { return len(z.Pens) }

type Linker interface{ Link() Linker }

type Info struct{ X int }

type Meta struct{ Info Info }

type Node struct {
	Label string
	Meta  Meta
	Next  Linker
}

func (n *Node) Link() Linker { return n.Next }

type Graph struct {
	Head Linker
}

func testCatalog(t *testing.T, opts ...catalog.Option) *catalog.Catalog {
	t.Helper()

	u := catalog.NewUniverse()
	require.NoError(t, catalog.Register(u, NewDog))
	require.NoError(t, catalog.Register[Cat](u, nil))
	require.NoError(t, catalog.Register[*Node](u, nil))

	return catalog.New(append([]catalog.Option{catalog.WithProvider(u)}, opts...)...)
}

type row struct {
	Kind     string
	Depth    int
	Label    Label
	Options  []string
	Selected int
	Enabled  bool
}

// fakeSurface records every row and plays back scripted input once per path.
type fakeSurface struct {
	rows    []row
	events  *[]string
	choose  map[string]int
	edit    map[string]func(reflect.Value)
	panicAt string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		events: new([]string),
		choose: make(map[string]int),
		edit:   make(map[string]func(reflect.Value)),
	}
}

func (s *fakeSurface) record(r row) {
	s.rows = append(s.rows, r)
	*s.events = append(*s.events, r.Kind+":"+r.Label.Path)
}

func (s *fakeSurface) Popup(depth int, label Label, selected int, options []string, enabled bool) int {
	s.record(row{Kind: "popup", Depth: depth, Label: label, Options: options, Selected: selected, Enabled: enabled})

	if c, ok := s.choose[label.Path]; ok {
		delete(s.choose, label.Path)
		return c
	}

	return selected
}

func (s *fakeSurface) Foldout(depth int, label Label, expanded bool) bool {
	s.record(row{Kind: "foldout", Depth: depth, Label: label, Enabled: true})
	return expanded
}

func (s *fakeSurface) Field(depth int, label Label, value reflect.Value, enabled bool) bool {
	s.record(row{Kind: "field", Depth: depth, Label: label, Enabled: enabled})

	if label.Path == s.panicAt {
		panic("surface exploded")
	}

	if f, ok := s.edit[label.Path]; ok {
		delete(s.edit, label.Path)
		f(value)

		return true
	}

	return false
}

func (s *fakeSurface) find(kind, path string) (row, bool) {
	for _, r := range s.rows {
		if r.Kind == kind && r.Label.Path == path {
			return r, true
		}
	}

	return row{}, false
}

func (s *fakeSurface) paths() []string {
	var out []string
	for _, r := range s.rows {
		out = append(out, r.Label.Path)
	}

	return out
}

func (s *fakeSurface) maxDepth() int {
	d := 0
	for _, r := range s.rows {
		d = max(d, r.Depth)
	}

	return d
}

func (s *fakeSurface) reset() {
	s.rows = nil
	*s.events = nil
}
