package dom

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	contentPolicy *bluemonday.Policy
	policyOnce    sync.Once
)

// ContentPolicy allows the inline formatting translators usually need
// (emphasis, line breaks, code, links with rel=nofollow) and strips
// everything else, including scripts, event handlers and javascript: URLs.
// The policy is shared and must not be modified.
func ContentPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowElements(
			"br", "span",
			"strong", "b", "em", "i", "u", "small", "mark",
			"code", "sub", "sup",
		)
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		contentPolicy = p
	})
	return contentPolicy
}
