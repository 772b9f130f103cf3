package langstore

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
)

// CookieManager holds the cookie attributes shared by every request.
// Build one at startup and call Store per request.
type CookieManager struct {
	prefix   string
	domain   string
	path     string
	maxAge   int
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// CookieOption configures a CookieManager.
type CookieOption func(*CookieManager)

// NewCookieManager creates a CookieManager with the given options.
func NewCookieManager(opts ...CookieOption) *CookieManager {
	m := &CookieManager{
		path:     "/",
		maxAge:   365 * 24 * 60 * 60,
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithCookiePrefix prefixes every cookie name. Default: none, so the language
// lives in a cookie named "lang".
func WithCookiePrefix(prefix string) CookieOption {
	return func(m *CookieManager) {
		m.prefix = prefix
	}
}

// WithCookiePath sets the cookie path. Default: "/".
func WithCookiePath(path string) CookieOption {
	return func(m *CookieManager) {
		m.path = path
	}
}

// WithCookieDomain sets the cookie domain.
func WithCookieDomain(domain string) CookieOption {
	return func(m *CookieManager) {
		m.domain = domain
	}
}

// WithCookieSecure sets the Secure flag.
func WithCookieSecure(secure bool) CookieOption {
	return func(m *CookieManager) {
		m.secure = secure
	}
}

// WithCookieHTTPOnly sets the HttpOnly flag. Default: true.
func WithCookieHTTPOnly(httpOnly bool) CookieOption {
	return func(m *CookieManager) {
		m.httpOnly = httpOnly
	}
}

// WithCookieSameSite sets the SameSite attribute. Default: Lax.
func WithCookieSameSite(ss http.SameSite) CookieOption {
	return func(m *CookieManager) {
		m.sameSite = ss
	}
}

// WithCookieMaxAge sets the cookie lifetime in seconds. Default: one year.
func WithCookieMaxAge(seconds int) CookieOption {
	return func(m *CookieManager) {
		m.maxAge = seconds
	}
}

// Get returns the unescaped value of the request cookie key.
func (m *CookieManager) Get(r *http.Request, key string) (string, error) {
	c, err := r.Cookie(m.prefix + key)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", i18n.ErrKeyNotFound
		}
		return "", err
	}

	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return c.Value, nil
	}
	return v, nil
}

// Set writes cookie key to the response.
func (m *CookieManager) Set(w http.ResponseWriter, key, value string) {
	http.SetCookie(w, m.cookie(key, url.QueryEscape(value), m.maxAge))
}

// Delete expires cookie key.
func (m *CookieManager) Delete(w http.ResponseWriter, key string) {
	http.SetCookie(w, m.cookie(key, "", -1))
}

func (m *CookieManager) cookie(key, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.prefix + key,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}

// Store binds the manager to one HTTP exchange.
func (m *CookieManager) Store(w http.ResponseWriter, r *http.Request) *Cookie {
	return &Cookie{
		m:       m,
		w:       w,
		r:       r,
		written: make(map[string]string),
	}
}

// Cookie stores values as cookies of one HTTP exchange.
// It is not safe for concurrent use, like the request it is bound to.
type Cookie struct {
	m       *CookieManager
	w       http.ResponseWriter
	r       *http.Request
	written map[string]string
}

// NewCookie creates a store reading from r and writing to w.
// It is shorthand for NewCookieManager(opts...).Store(w, r).
func NewCookie(w http.ResponseWriter, r *http.Request, opts ...CookieOption) *Cookie {
	return NewCookieManager(opts...).Store(w, r)
}

// Get returns the value written earlier in this request, or the request cookie.
func (c *Cookie) Get(_ context.Context, key string) (string, error) {
	if v, ok := c.written[key]; ok {
		return v, nil
	}
	return c.m.Get(c.r, key)
}

// Set writes the cookie to the response.
func (c *Cookie) Set(_ context.Context, key, value string) error {
	c.m.Set(c.w, key, value)
	c.written[key] = value
	return nil
}
