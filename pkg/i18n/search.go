package i18n

import (
	"slices"
	"strings"
)

// GetLangKey is the reserved key segment that resolves to the localized language.
const GetLangKey = "getLang"

// SplitKey splits a dotted key into its path segments.
func SplitKey(key string) []string {
	return strings.Split(key, ".")
}

// DeepSearch looks key up in v and, failing that, in every nested branch of v,
// depth-first in iteration order. The first truthy result wins.
//
// A value that is not a branch (absent or a leaf) returns the key itself as a leaf.
// A key owned directly by the branch is returned as-is, empty string included.
// When nothing truthy is found the result is absent.
func DeepSearch(v Value, key string) Value {
	b, ok := v.Branch()
	if !ok {
		return Found(Leaf(key))
	}

	if n, ok := b.Get(key); ok {
		return Found(n)
	}

	for _, n := range b.All() {
		child, ok := n.(*Branch)
		if !ok {
			continue
		}
		if res := DeepSearch(Found(child), key); res.Truthy() {
			return res
		}
	}

	return Value{}
}

// Resolve walks a dotted key through doc and returns the raw result.
// When meta is true the walk starts at the document root (titles, descriptions,
// keywords); otherwise it starts at the translations subtree.
//
// A single-segment key is a direct lookup on the root. Longer keys apply
// DeepSearch once per segment, each time on the previous result.
func Resolve(doc *Document, key string, meta bool) Value {
	root := rootValue(doc, meta)
	segments := SplitKey(key)

	if len(segments) == 1 {
		b, ok := root.Branch()
		if !ok {
			return Value{}
		}
		n, _ := b.Get(key)
		return Found(n)
	}

	v := root
	for _, seg := range segments {
		v = DeepSearch(v, seg)
	}
	return v
}

// Translate resolves key against doc and applies the key-echo fallback:
// an empty string is returned as-is, anything absent yields key.
// A key containing the getLang segment returns localized() instead.
//
// Numbers and booleans render as their literal text. On a dotted key
// 0, false and null are misses and yield key; a single-segment lookup
// returns the literal as stored, except null which has no text.
//
// A key resolving to a whole branch cannot be rendered as text and also
// yields key; use Resolve to inspect such results.
func Translate(doc *Document, key string, meta bool, localized func() string) string {
	segments := SplitKey(key)
	if slices.Contains(segments, GetLangKey) {
		if localized == nil {
			return key
		}
		return localized()
	}

	v := Resolve(doc, key, meta)
	switch n := v.Node().(type) {
	case Leaf:
		return string(n)
	case Scalar:
		if n.Text == "" || (n.Falsy && len(segments) > 1) {
			return key
		}
		return n.Text
	default:
		return key
	}
}

func rootValue(doc *Document, meta bool) Value {
	if doc == nil {
		return Value{}
	}
	if meta {
		return doc.Root()
	}
	return doc.Translations()
}
