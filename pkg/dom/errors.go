package dom

import "errors"

var (
	ErrInvalidLanguage = errors.New("dom: invalid language code")
	ErrNoHTMLElement   = errors.New("dom: document has no html element")
	ErrParseFailed     = errors.New("dom: failed to parse document")
	ErrRenderFailed    = errors.New("dom: failed to render document")
)
