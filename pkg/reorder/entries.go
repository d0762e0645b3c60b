package reorder

import (
	"fmt"
	"iter"

	"github.com/yaklabco/tomlorder/pkg/syntax"
)

// ReorderEntries moves the entry groups of seg into the order given by keys.
//
// An entry group starts at an entry and absorbs the trivia following it.
// Everything before the first entry (the header and its trailing trivia)
// forms an unnamed group that stays in front. Groups named in keys come
// first, in that order; all other groups follow in their original order.
// Separators are moved as they are.
func ReorderEntries(seg *Segment, keys []string, opts ...Option) error {
	o := newOptions(opts)

	groups, err := loadEntryGroups(seg, o)
	if err != nil {
		return err
	}

	positions := make(map[string]int, len(groups))
	for idx, group := range groups {
		positions[group.Name] = idx
	}

	handled := make([]bool, len(groups))
	order := make([]int, 0, len(groups))
	if len(groups) > 0 && groups[0].Name == "" {
		order = append(order, 0)
		handled[0] = true
	}
	for _, key := range keys {
		pos, ok := positions[key]
		if !ok || handled[pos] {
			continue
		}
		order = append(order, pos)
		handled[pos] = true
	}
	for idx := range groups {
		if !handled[idx] {
			order = append(order, idx)
		}
	}

	buf := make([]syntax.Element, 0, len(seg.Elements)+1)
	for pos, idx := range order {
		elems := groups[idx].Elements
		buf = append(buf, elems...)
		if pos < len(order)-1 && needsLineBreak(elems) {
			buf = append(buf, syntax.NewNewline(syntax.LF))
		}
	}

	seg.Elements = buf
	return nil
}

// loadEntryGroups partitions seg into entry groups named by their keys.
func loadEntryGroups(seg *Segment, o *options) ([]*Segment, error) {
	var groups []*Segment
	var acc []syntax.Element
	key := ""

	for _, elem := range seg.Elements {
		if elem.Kind() == syntax.KindEntry {
			if len(acc) > 0 {
				groups = append(groups, &Segment{Name: key, Elements: acc})
				acc = nil
			}

			next, ok := syntax.KeyText(elem)
			if !ok {
				if o.strict {
					return nil, fmt.Errorf("%w: entry without key in %q", ErrMalformedSegment, seg.Name)
				}
				o.logger.Warn("entry without key; continuing previous key",
					"table", seg.Name, "key", key)
			} else {
				key = next
			}
		}
		acc = append(acc, elem)
	}
	if len(acc) > 0 {
		groups = append(groups, &Segment{Name: key, Elements: acc})
	}

	return groups, nil
}

// Entries yields (key, value) pairs for the entries of seg. The key is the
// most recent key seen, so an entry without a key reports its predecessor's.
func Entries(seg *Segment) iter.Seq2[string, *syntax.Node] {
	return func(yield func(string, *syntax.Node) bool) {
		key := ""
		for _, elem := range seg.Elements {
			entry, ok := syntax.AsNode(elem)
			if !ok || entry.Kind() != syntax.KindEntry {
				continue
			}
			for _, child := range entry.Children() {
				switch child.Kind() {
				case syntax.KindKey:
					key, _ = syntax.KeyText(entry)
				case syntax.KindValue:
					value, ok := syntax.AsNode(child)
					if !ok {
						continue
					}
					if !yield(key, value) {
						return
					}
				}
			}
		}
	}
}

// ForEachEntry calls visit for every (key, value) pair of seg.
func ForEachEntry(seg *Segment, visit func(key string, value *syntax.Node)) {
	for key, value := range Entries(seg) {
		visit(key, value)
	}
}
