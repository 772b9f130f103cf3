// Package langstore provides i18n.Store implementations for persisting the
// visitor's language outside the process: a browser cookie bound to one HTTP
// exchange, and Redis for language preferences shared between instances.
//
// # Cookie
//
// The cookie store is created per request and plays the role localStorage
// plays in the browser. A CookieManager carries the cookie attributes:
//
//	cookies := langstore.NewCookieManager(langstore.WithCookieSecure(true))
//	// per request
//	s, err := i18n.New(ctx, cfg, i18n.WithStore(cookies.Store(w, r)))
//
// Values written during the request are visible to later reads of the same
// request, so the fallback correction and language switch behave as
// read-then-write on a single store.
//
// # Redis
//
//	client, err := langstore.OpenRedis(ctx, os.Getenv("REDIS_URL"))
//	store, err := langstore.NewRedis(client, visitorID, langstore.WithTTL(30*24*time.Hour))
//
// Every key is namespaced by prefix and scope, e.g. "i18n:<visitor>:lang".
package langstore
