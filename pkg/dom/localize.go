package dom

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
)

const (
	// ContentAttr holds the translation key of an element's content.
	ContentAttr = "data-i18n"
	// TargetAttr holds "attribute:key" for attribute translation.
	TargetAttr = "data-i18n-attr"
)

// Translator resolves a key to display text.
// *i18n.Session satisfies it.
type Translator interface {
	T(ctx context.Context, key string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(ctx context.Context, key string) string

func (f TranslatorFunc) T(ctx context.Context, key string) string {
	return f(ctx, key)
}

// Stats counts what Localize changed.
type Stats struct {
	Content    int
	Attributes int
	// Skipped counts data-i18n-attr values without an "attribute:key" pair.
	Skipped int
}

// Option configures Localize and Rewrite.
type Option func(*options)

type options struct {
	policy    *bluemonday.Policy
	plainText bool
	meta      *i18n.PageMeta
	lang      string
}

// WithSanitizer filters translated content through policy before it is
// inserted. Attribute values are never parsed as HTML and are not filtered.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithPlainText inserts translated content as a text node instead of parsing it.
func WithPlainText() Option {
	return func(o *options) {
		o.plainText = true
	}
}

// WithPageMeta makes Rewrite apply meta to the document head.
func WithPageMeta(meta i18n.PageMeta) Option {
	return func(o *options) {
		o.meta = &meta
	}
}

// WithDocumentLang makes Rewrite set the lang attribute of the html element.
func WithDocumentLang(code string) Option {
	return func(o *options) {
		o.lang = code
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Localize applies tr to every marked element under root in document order.
// Content of a data-i18n element is replaced, so markers inside it are not visited.
func Localize(ctx context.Context, root *html.Node, tr Translator, opts ...Option) Stats {
	o := newOptions(opts)

	var (
		stats   Stats
		content []*html.Node
		targets []*html.Node
	)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, ok := attr(n, TargetAttr); ok {
				targets = append(targets, n)
			}
			if _, ok := attr(n, ContentAttr); ok {
				content = append(content, n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for _, n := range content {
		key, _ := attr(n, ContentAttr)
		o.replaceContent(n, tr.T(ctx, key))
		stats.Content++
	}

	for _, n := range targets {
		marker, _ := attr(n, TargetAttr)
		name, key, ok := splitTarget(marker)
		if !ok {
			stats.Skipped++
			continue
		}
		setAttr(n, name, tr.T(ctx, key))
		stats.Attributes++
	}

	return stats
}

func (o *options) replaceContent(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}

	if o.plainText {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		return
	}

	if o.policy != nil {
		text = o.policy.Sanitize(text)
	}

	nodes, err := html.ParseFragment(strings.NewReader(text), n)
	if err != nil {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		return
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

// splitTarget splits "attribute:key". Anything after a second colon is ignored.
func splitTarget(marker string) (name, key string, ok bool) {
	parts := strings.Split(marker, ":")
	if len(parts) < 2 {
		return "", "", false
	}
	name = strings.TrimSpace(parts[0])
	key = strings.TrimSpace(parts[1])
	if name == "" || key == "" {
		return "", "", false
	}
	return name, key, true
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: val})
}
