// Package middlewares wires i18n sessions into net/http servers.
//
// The middlewares are plain func(http.Handler) http.Handler values and work
// with chi or any compatible router.
//
// # I18n
//
// I18n starts a session per request. The language is read from a per-request
// store (a "lang" cookie by default, or Redis scoped by a visitor id cookie).
// An unsupported language is replaced by the fallback and the request is
// redirected to itself.
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.Use(middlewares.Recover(middlewares.WithRecoverLogger(log)))
//	r.Use(middlewares.I18n(translations, fetcher,
//		middlewares.WithI18nMetaTranslated(true),
//		middlewares.WithI18nAcceptLanguage(),
//	))
//
// # Localize
//
// Localize rewrites text/html responses with the request session: elements
// marked with data-i18n or data-i18n-attr, the html lang attribute, and the
// page metadata when enabled.
//
//	r.With(middlewares.Localize()).Handle("/*", http.FileServer(pages))
//
// # SwitchLanguage
//
// SwitchLanguage persists a new language and sends the visitor back to the
// page they came from. It only answers POST.
//
//	r.Post("/lang/{code}", middlewares.SwitchLanguage(log))
//
// # Recover
//
// Recover turns panics into logged PanicErrors and a 500 response.
package middlewares
