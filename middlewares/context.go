package middlewares

import (
	"context"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
)

type sessionKey struct{}

type pageKey struct{}

// pageState carries per-request results of session callbacks.
type pageState struct {
	meta     *i18n.PageMeta
	reloadTo string
}

// GetSession returns the session stored by I18n, or nil.
func GetSession(ctx context.Context) *i18n.Session {
	s, _ := ctx.Value(sessionKey{}).(*i18n.Session)
	return s
}

// LanguageFromContext reports the language of the request session.
// It matches the lookup signature of logger.LanguageExtractor.
func LanguageFromContext(ctx context.Context) (string, bool) {
	if s := GetSession(ctx); s != nil {
		return s.Lang(), true
	}
	return "", false
}

// PageMetaFromContext returns the page metadata computed after Load, if the
// session translates metadata.
func PageMetaFromContext(ctx context.Context) (i18n.PageMeta, bool) {
	st, _ := ctx.Value(pageKey{}).(*pageState)
	if st == nil || st.meta == nil {
		return i18n.PageMeta{}, false
	}
	return *st.meta, true
}
