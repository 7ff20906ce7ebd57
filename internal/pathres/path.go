package pathres

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// SegmentKind distinguishes named members from sequence indices.
type SegmentKind int

const (
	SegmentField SegmentKind = iota // named member
	SegmentIndex                    // element of a slice or array
)

// Segment is one step of a Path.
type Segment struct {
	Kind  SegmentKind
	Name  string // for SegmentField
	Index int    // for SegmentIndex
}

// String renders the segment the way it appears in a path.
func (s Segment) String() string {
	if s.Kind == SegmentIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}

	return s.Name
}

// Path identifies a leaf field starting from a root object.
type Path struct {
	Segments []Segment
}

const arrayDataMarker = ".Array.data["

// ParsePath parses a path string such as "a.b[2].c".
func ParsePath(path string) (Path, error) {
	if path == "" {
		return Path{}, errors.New("empty path")
	}

	normalized := strings.ReplaceAll(path, arrayDataMarker, "[")

	var segments []Segment

	for part := range strings.SplitSeq(normalized, ".") {
		if part == "" {
			return Path{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		name, rest, _ := strings.Cut(part, "[")
		if name != "" {
			if !token.IsIdentifier(name) {
				return Path{}, fmt.Errorf("invalid path %q: invalid identifier %q", path, name)
			}

			segments = append(segments, Segment{Kind: SegmentField, Name: name})
		} else if len(segments) == 0 {
			return Path{}, fmt.Errorf("invalid path %q: index without member", path)
		}

		if name == part {
			continue
		}

		indices, err := parseIndices("[" + rest)
		if err != nil {
			return Path{}, fmt.Errorf("invalid path %q: %w", path, err)
		}

		segments = append(segments, indices...)
	}

	return Path{Segments: segments}, nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(path string) Path {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}

	return p
}

// parseIndices parses one or more "[N]" groups, e.g. "[1][0]".
func parseIndices(s string) ([]Segment, error) {
	var out []Segment

	for s != "" {
		if s[0] != '[' {
			return nil, fmt.Errorf("unexpected %q after index", s)
		}

		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, fmt.Errorf("unterminated index in %q", s)
		}

		n, err := strconv.Atoi(s[1:end])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid index %q", s[1:end])
		}

		out = append(out, Segment{Kind: SegmentIndex, Index: n})
		s = s[end+1:]
	}

	return out, nil
}

// String returns the canonical path string.
func (p Path) String() string {
	var b strings.Builder

	for i, seg := range p.Segments {
		if seg.Kind == SegmentField && i > 0 {
			b.WriteByte('.')
		}

		b.WriteString(seg.String())
	}

	return b.String()
}

// IsEmpty returns true for the root path.
func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Leaf returns the final segment. It panics on an empty path.
func (p Path) Leaf() Segment {
	return p.Segments[len(p.Segments)-1]
}

// Parent returns the path without its final segment.
func (p Path) Parent() Path {
	if len(p.Segments) == 0 {
		return p
	}

	return Path{Segments: p.Segments[:len(p.Segments)-1]}
}

// Field returns a new path extended by a named member.
func (p Path) Field(name string) Path {
	return p.with(Segment{Kind: SegmentField, Name: name})
}

// Index returns a new path extended by a sequence index.
func (p Path) Index(i int) Path {
	return p.with(Segment{Kind: SegmentIndex, Index: i})
}

func (p Path) with(seg Segment) Path {
	segments := make([]Segment, len(p.Segments), len(p.Segments)+1)
	copy(segments, p.Segments)

	return Path{Segments: append(segments, seg)}
}
