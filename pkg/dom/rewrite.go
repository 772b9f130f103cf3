package dom

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// Rewrite parses an HTML document from r, localizes it with tr and renders
// the result to w. Page metadata and the document language are applied first
// when WithPageMeta and WithDocumentLang are given.
func Rewrite(ctx context.Context, r io.Reader, w io.Writer, tr Translator, opts ...Option) (Stats, error) {
	root, err := html.Parse(r)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	o := newOptions(opts)
	if o.meta != nil {
		ApplyPageMeta(root, *o.meta)
	}
	if o.lang != "" {
		if err := SetDocumentLang(root, o.lang); err != nil {
			return Stats{}, err
		}
	}

	stats := Localize(ctx, root, tr, opts...)

	if err := html.Render(w, root); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return stats, nil
}
