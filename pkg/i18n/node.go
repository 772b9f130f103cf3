package i18n

import (
	"iter"
	"math"
	"slices"
)

// Node is one element of a translation tree: a Leaf, a Scalar or a *Branch.
type Node interface {
	isNode()
}

// Leaf is a translated string.
type Leaf string

func (Leaf) isNode() {}

// Scalar is a number, boolean or null taken from the source document.
// Text holds its literal form ("42", "false"); null has no text.
// Falsy marks 0, false and null, which deep search and Translate treat as misses.
type Scalar struct {
	Text  string
	Falsy bool
}

func (Scalar) isNode() {}

// Null is the scalar stored for a null entry.
var Null = Scalar{Falsy: true}

// Number builds the scalar for a numeric literal. Zero and NaN are falsy.
func Number(text string, f float64) Scalar {
	return Scalar{Text: text, Falsy: f == 0 || math.IsNaN(f)}
}

// Bool builds the scalar for a boolean literal.
func Bool(b bool) Scalar {
	if b {
		return Scalar{Text: "true"}
	}
	return Scalar{Text: "false", Falsy: true}
}

// Branch is a mapping from keys to nodes that remembers insertion order.
// Deep search walks entries in that order, so the first matching branch
// in the source document wins.
type Branch struct {
	nodes map[string]Node
	keys  []string
}

func (*Branch) isNode() {}

// NewBranch creates an empty branch.
func NewBranch() *Branch {
	return &Branch{nodes: make(map[string]Node)}
}

// Set stores n under key. A new key is appended to the iteration order;
// an existing key keeps its position and gets the new node.
func (b *Branch) Set(key string, n Node) {
	if n == nil {
		return
	}
	if _, exists := b.nodes[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.nodes[key] = n
}

// Get returns the node owned directly by this branch.
func (b *Branch) Get(key string) (Node, bool) {
	if b == nil {
		return nil, false
	}
	n, ok := b.nodes[key]
	return n, ok
}

// Len returns the number of entries.
func (b *Branch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Keys returns the keys in iteration order.
func (b *Branch) Keys() []string {
	if b == nil {
		return nil
	}
	return slices.Clone(b.keys)
}

// All iterates over entries in iteration order.
func (b *Branch) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if b == nil {
			return
		}
		for _, k := range b.keys {
			if !yield(k, b.nodes[k]) {
				return
			}
		}
	}
}

// Value is the result of a lookup. The zero Value is absent, which is
// distinct from a present empty Leaf.
type Value struct {
	node Node
}

// Found wraps n into a present Value. A nil node or nil branch yields an absent Value.
func Found(n Node) Value {
	if b, ok := n.(*Branch); ok && b == nil {
		return Value{}
	}
	return Value{node: n}
}

// IsAbsent reports whether nothing was found.
func (v Value) IsAbsent() bool {
	return v.node == nil
}

// Node returns the underlying node, nil when absent.
func (v Value) Node() Node {
	return v.node
}

// Leaf returns the string when the value is a leaf.
func (v Value) Leaf() (string, bool) {
	s, ok := v.node.(Leaf)
	return string(s), ok
}

// Scalar returns the non-string scalar when the value is one.
func (v Value) Scalar() (Scalar, bool) {
	s, ok := v.node.(Scalar)
	return s, ok
}

// Branch returns the mapping when the value is a branch.
func (v Value) Branch() (*Branch, bool) {
	b, ok := v.node.(*Branch)
	return b, ok
}

// IsEmptyString reports whether the value is a present, empty leaf.
func (v Value) IsEmptyString() bool {
	s, ok := v.Leaf()
	return ok && s == ""
}

// Truthy reports whether the value counts as a hit during deep search:
// a non-empty leaf, a scalar other than 0, false or null, or a branch with
// at least one entry.
func (v Value) Truthy() bool {
	switch n := v.node.(type) {
	case Leaf:
		return n != ""
	case Scalar:
		return !n.Falsy
	case *Branch:
		return n.Len() > 0
	default:
		return false
	}
}
