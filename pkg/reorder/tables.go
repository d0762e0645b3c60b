package reorder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/tomlorder/pkg/syntax"
)

// Segment is a contiguous run of elements starting at a boundary element
// and extending to just before the next one.
type Segment struct {
	// Name is the header name, or the entry key at entry granularity.
	// The segment before the first boundary has an empty name.
	Name string

	// Elements are the segment's elements in source order.
	Elements []syntax.Element
}

// Len returns the number of elements in the segment.
func (s *Segment) Len() int {
	return len(s.Elements)
}

// Text returns the concatenated source text of the segment.
func (s *Segment) Text() string {
	var builder strings.Builder
	for _, elem := range s.Elements {
		builder.WriteString(elem.Text())
	}
	return builder.String()
}

// Tables is a document partitioned into table segments.
type Tables struct {
	// Positions maps a segment name to its index in Segments.
	// A later duplicate name (repeated [[array]] headers) overwrites.
	Positions map[string]int

	// Segments partition the scope's children in original order.
	Segments []*Segment
}

// NewTables partitions the children of scope into table segments.
func NewTables(scope *syntax.Node) *Tables {
	tables := &Tables{Positions: make(map[string]int)}

	var acc []syntax.Element
	for _, child := range scope.Children() {
		if child.Kind().IsHeader() && len(acc) > 0 {
			tables.add(acc)
			acc = nil
		}
		acc = append(acc, child)
	}
	if len(acc) > 0 {
		tables.add(acc)
	}

	return tables
}

func (t *Tables) add(elems []syntax.Element) {
	name := NameOf(elems[0])
	t.Positions[name] = len(t.Segments)
	t.Segments = append(t.Segments, &Segment{Name: name, Elements: elems})
}

// NameOf returns the name of a table or array-of-tables header, or the
// empty string for any other element.
func NameOf(elem syntax.Element) string {
	if elem == nil || !elem.Kind().IsHeader() {
		return ""
	}
	name, _ := syntax.KeyText(elem)
	return name
}

// Names returns the segment names in original order.
func (t *Tables) Names() []string {
	names := make([]string, len(t.Segments))
	for idx, seg := range t.Segments {
		names[idx] = seg.Name
	}
	return names
}

// Get returns the segment recorded under name in Positions.
func (t *Tables) Get(name string) (*Segment, error) {
	pos, ok := t.Positions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNameNotFound, name)
	}
	return t.Segments[pos], nil
}

// Named returns every segment called name, in original order.
func (t *Tables) Named(name string) ([]*Segment, error) {
	var out []*Segment
	for _, seg := range t.Segments {
		if seg.Name == name {
			out = append(out, seg)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNameNotFound, name)
	}
	return out, nil
}

// Reorder rewrites the children of scope so the segments follow the order
// computed from priority.
//
// A leading unnamed segment that is a single newline is dropped. When two
// adjacent segments have different group keys, the newline ending the first
// becomes exactly one blank line. Separators between segments sharing a
// group key are kept as they are. The replacement is fully built before the
// scope is touched.
func (t *Tables) Reorder(scope *syntax.Node, priority []string, opts ...Option) error {
	o := newOptions(opts)
	order := Order(t.Names(), priority)

	buf := make([]syntax.Element, 0, scope.ChildCount()+len(order))
	for pos, idx := range order {
		seg := t.Segments[idx]
		if len(seg.Elements) == 0 {
			continue
		}

		if seg.Name == "" && len(seg.Elements) == 1 && syntax.IsNewline(seg.Elements[0]) {
			o.logger.Debug("dropping leading blank line")
			continue
		}

		var next *Segment
		if pos+1 < len(order) {
			next = t.Segments[order[pos+1]]
		}
		buf = append(buf, t.separate(seg, idx, next)...)
	}

	if err := scope.SpliceChildren(0, scope.ChildCount(), buf); err != nil {
		return fmt.Errorf("reorder tables: %w", err)
	}
	return nil
}

// separate returns seg's elements with the trailing separator adjusted for
// the segment that follows it, or for the end of the scope when next is nil.
func (t *Tables) separate(seg *Segment, idx int, next *Segment) []syntax.Element {
	elems := seg.Elements
	tail := elems[len(elems)-1]

	if next == nil {
		// The end of the scope keeps its bytes unless a different segment used
		// to end it; then one line ending is enough.
		if idx != len(t.Segments)-1 && syntax.IsNewline(tail) {
			return withTail(elems, syntax.NewNewline(syntax.LineEnding(tail.Text())))
		}
		return elems
	}

	differ := GroupKey(seg.Name) != GroupKey(next.Name)
	switch {
	case syntax.IsNewline(tail):
		if differ {
			return withTail(elems, syntax.NewBlankLine(syntax.LineEnding(tail.Text())))
		}
		return elems
	case needsLineBreak(elems):
		sep := syntax.NewNewline(syntax.LF)
		if differ {
			sep = syntax.NewBlankLine(syntax.LF)
		}
		return append(slices.Clip(elems), sep)
	default:
		return elems
	}
}

// withTail returns a copy of elems with the last element replaced.
func withTail(elems []syntax.Element, tail syntax.Element) []syntax.Element {
	out := slices.Clone(elems)
	out[len(out)-1] = tail
	return out
}

// needsLineBreak reports whether elems end on an unterminated line, as the
// last line of a document without a final newline does. Trailing blanks after
// a newline are indentation of whatever follows and need nothing.
func needsLineBreak(elems []syntax.Element) bool {
	for idx := len(elems) - 1; idx >= 0; idx-- {
		switch elems[idx].Kind() {
		case syntax.KindWhitespace:
			continue
		case syntax.KindNewline:
			return false
		default:
			return true
		}
	}
	return false
}
