package i18n

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed translation file:
//
//	{
//	    "language": "en_US",
//	    "localizedLanguage": "English",
//	    "translations": {"key": "value", "group": {"key": "value"}},
//	    "titles": {"index": "Home"},
//	    "descriptions": {"index": "..."},
//	    "keywords": {"index": "..."}
//	}
//
// Only the root object is required; every field is optional.
// A Document is not modified after parsing.
type Document struct {
	root *Branch
}

// NewDocument wraps an already built root branch.
func NewDocument(root *Branch) *Document {
	if root == nil {
		root = NewBranch()
	}
	return &Document{root: root}
}

// Root returns the whole document, the starting point of meta lookups.
func (d *Document) Root() Value {
	return Found(d.root)
}

// Translations returns the translations subtree, absent if the document has none.
func (d *Document) Translations() Value {
	n, _ := d.root.Get("translations")
	return Found(n)
}

// Language returns the document's language code.
func (d *Document) Language() string {
	return d.leaf("language")
}

// LocalizedLanguage returns the human-readable language name, if present.
func (d *Document) LocalizedLanguage() string {
	return d.leaf("localizedLanguage")
}

func (d *Document) leaf(key string) string {
	n, _ := d.root.Get(key)
	s, _ := Found(n).Leaf()
	return s
}

// DecodeDocument parses data according to the extension of name:
// .yaml and .yml are parsed as YAML, anything else as JSON.
func DecodeDocument(name string, data []byte) (*Document, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON parses a JSON translation document keeping object key order.
// Numbers, booleans and null become Scalar nodes and arrays become branches
// keyed by element index.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotAnObject
	}

	root, err := decodeJSONObject(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after root object", ErrInvalidDocument)
	}

	return NewDocument(root), nil
}

func decodeJSONObject(dec *json.Decoder) (*Branch, error) {
	b := NewBranch()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		n, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		b.Set(key, n)
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return b, nil
}

func decodeJSONArray(dec *json.Decoder) (*Branch, error) {
	b := NewBranch()
	for i := 0; dec.More(); i++ {
		n, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		b.Set(strconv.Itoa(i), n)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return b, nil
}

func decodeJSONValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		var b *Branch
		switch t {
		case '{':
			b, err = decodeJSONObject(dec)
		case '[':
			b, err = decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
		if err != nil {
			return nil, err
		}
		return b, nil
	case string:
		return Leaf(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			// out of float64 range, but not zero
			f = math.Inf(1)
		}
		return Number(t.String(), f), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// ParseYAML parses a YAML translation document with the same rules as ParseJSON.
func ParseYAML(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	top := &doc
	if top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = top.Content[0]
	}
	if top.Kind != yaml.MappingNode {
		return nil, ErrNotAnObject
	}

	n, err := fromYAML(top)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	root, _ := n.(*Branch)
	return NewDocument(root), nil
}

func fromYAML(n *yaml.Node) (Node, error) {
	switch n.Kind {
	case yaml.MappingNode:
		b := NewBranch()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			child, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			b.Set(key, child)
		}
		return b, nil
	case yaml.SequenceNode:
		b := NewBranch()
		for i, item := range n.Content {
			child, err := fromYAML(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			b.Set(strconv.Itoa(i), child)
		}
		return b, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("dangling alias at line %d", n.Line)
		}
		return fromYAML(n.Alias)
	default:
		return nil, fmt.Errorf("unsupported node kind %d at line %d", n.Kind, n.Line)
	}
}

func yamlScalar(n *yaml.Node) (Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Number(n.Value, f), nil
	default:
		return Leaf(n.Value), nil
	}
}
