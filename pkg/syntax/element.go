// Package syntax provides a lossless concrete syntax tree for TOML documents.
//
// Every byte of the source is owned by exactly one token, so the text of the
// root node always reproduces the parsed input. Comments, blank lines and
// indentation are first-class elements that can be relocated like any other.
package syntax

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSpliceRange is returned when a splice range falls outside a node's children.
var ErrSpliceRange = errors.New("splice range out of bounds")

// Element is a node or token of the syntax tree.
type Element interface {
	// Kind classifies the element.
	Kind() Kind

	// Text returns the exact source text the element represents.
	Text() string

	// Len returns the length of Text in bytes.
	Len() int
}

// Compile-time interface checks.
var (
	_ Element = (*Node)(nil)
	_ Element = (*Token)(nil)
)

// Token is a leaf element holding a span of source text.
type Token struct {
	kind Kind
	text string
}

// NewToken creates a token of the given kind.
func NewToken(kind Kind, text string) *Token {
	return &Token{kind: kind, text: text}
}

// Kind implements Element.
func (t *Token) Kind() Kind { return t.kind }

// Text implements Element.
func (t *Token) Text() string { return t.text }

// Len implements Element.
func (t *Token) Len() int { return len(t.text) }

// String returns a debug representation of the token.
func (t *Token) String() string {
	return fmt.Sprintf("%s(%q)", t.kind, t.text)
}

// Node is an interior element owning an ordered list of children.
type Node struct {
	kind     Kind
	children []Element
}

// NewNode creates a node of the given kind with the given children.
func NewNode(kind Kind, children ...Element) *Node {
	return &Node{kind: kind, children: children}
}

// Kind implements Element.
func (n *Node) Kind() Kind { return n.kind }

// Text implements Element by concatenating the text of all descendants.
func (n *Node) Text() string {
	var builder strings.Builder
	builder.Grow(n.Len())
	n.writeText(&builder)
	return builder.String()
}

func (n *Node) writeText(builder *strings.Builder) {
	for _, child := range n.children {
		switch c := child.(type) {
		case *Node:
			c.writeText(builder)
		default:
			builder.WriteString(c.Text())
		}
	}
}

// Len implements Element.
func (n *Node) Len() int {
	total := 0
	for _, child := range n.children {
		total += child.Len()
	}
	return total
}

// Children returns a copy of the node's direct children in source order.
func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the first direct child of the given kind, or nil.
func (n *Node) Child(kind Kind) Element {
	for _, child := range n.children {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// SpliceChildren replaces children [start, end) with elems.
// The node is left untouched when the range is invalid.
func (n *Node) SpliceChildren(start, end int, elems []Element) error {
	if start < 0 || end > len(n.children) || start > end {
		return fmt.Errorf("%w: [%d, %d) of %d", ErrSpliceRange, start, end, len(n.children))
	}

	replaced := make([]Element, 0, len(n.children)-(end-start)+len(elems))
	replaced = append(replaced, n.children[:start]...)
	replaced = append(replaced, elems...)
	replaced = append(replaced, n.children[end:]...)
	n.children = replaced

	return nil
}

// String returns a debug representation of the node.
func (n *Node) String() string {
	return fmt.Sprintf("%s(%q)", n.kind, n.Text())
}

// Clone returns a deep copy of elem.
func Clone(elem Element) Element {
	switch e := elem.(type) {
	case *Node:
		out := &Node{kind: e.kind, children: make([]Element, len(e.children))}
		for idx, child := range e.children {
			out.children[idx] = Clone(child)
		}
		return out
	case *Token:
		return &Token{kind: e.kind, text: e.text}
	default:
		return elem
	}
}

// AsNode returns elem as a *Node if it is one.
func AsNode(elem Element) (*Node, bool) {
	node, ok := elem.(*Node)
	return node, ok
}

// KeyText returns the trimmed text of the Key child of a header or entry
// node. The second result is false when elem has no Key child.
func KeyText(elem Element) (string, bool) {
	node, ok := AsNode(elem)
	if !ok {
		return "", false
	}
	key := node.Child(KindKey)
	if key == nil {
		return "", false
	}
	return strings.TrimSpace(key.Text()), true
}

// WalkFunc is called for every element visited by Walk.
// Return a non-nil error to stop the walk.
type WalkFunc func(elem Element) error

// Walk performs a pre-order traversal starting at root.
func Walk(root Element, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := walkFunc(root); err != nil {
		return err
	}
	node, ok := AsNode(root)
	if !ok {
		return nil
	}
	for _, child := range node.children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}
