package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
)

// PageName returns the page identifier used for metadata keys: the last path
// segment up to its first dot. "/docs/index.html" gives "index", "/" gives "".
func PageName(p string) string {
	base := p
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		base = p[i+1:]
	}
	name, _, _ := strings.Cut(base, ".")
	return name
}

// ApplyPageMeta sets the document title and the content of the description
// and keywords meta elements. A missing title element is created in head;
// missing meta elements are left alone.
func ApplyPageMeta(root *html.Node, meta i18n.PageMeta) {
	head := findElement(root, atom.Head, nil)

	title := findElement(root, atom.Title, nil)
	if title == nil && head != nil {
		title = &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
		head.AppendChild(title)
	}
	if title != nil {
		for c := title.FirstChild; c != nil; c = title.FirstChild {
			title.RemoveChild(c)
		}
		title.AppendChild(&html.Node{Type: html.TextNode, Data: meta.Title})
	}

	if n := findMeta(root, "description"); n != nil {
		setAttr(n, "content", meta.Description)
	}
	if n := findMeta(root, "keywords"); n != nil {
		setAttr(n, "content", meta.Keywords)
	}
}

// LanguageTag converts a language code such as en_US or zh_Hans to a
// canonical BCP 47 tag.
func LanguageTag(code string) (language.Tag, error) {
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, code, err)
	}
	return tag, nil
}

// SetDocumentLang sets the lang attribute of the html element to the BCP 47
// form of code.
func SetDocumentLang(root *html.Node, code string) error {
	tag, err := LanguageTag(code)
	if err != nil {
		return err
	}
	n := findElement(root, atom.Html, nil)
	if n == nil {
		return ErrNoHTMLElement
	}
	setAttr(n, "lang", tag.String())
	return nil
}

func findMeta(root *html.Node, name string) *html.Node {
	return findElement(root, atom.Meta, func(n *html.Node) bool {
		v, _ := attr(n, "name")
		return strings.EqualFold(v, name)
	})
}

func findElement(n *html.Node, a atom.Atom, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a && (match == nil || match(n)) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a, match); found != nil {
			return found
		}
	}
	return nil
}
