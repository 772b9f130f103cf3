package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
)

// SwitchLanguage returns a handler that persists the language named by the
// "code" route parameter (or the "lang" form value) and redirects back to the
// referring page of the same host, or to "/".
//
// Only POST is served, so a cross-site image or link cannot change the
// visitor's language; other methods get 405.
//
//	r.With(middlewares.I18n(...)).Post("/lang/{code}", middlewares.SwitchLanguage(log))
func SwitchLanguage(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		ctx := r.Context()
		s := GetSession(ctx)
		if s == nil {
			http.Error(w, ErrNoSession.Error(), http.StatusInternalServerError)
			return
		}

		code := chi.URLParam(r, "code")
		if code == "" {
			code = r.FormValue("lang")
		}

		if err := s.SetLang(ctx, code); err != nil {
			if log != nil {
				log.WarnContext(ctx, "language not switched",
					slog.String("lang", code),
					slog.String("error", err.Error()),
				)
			}
			status := http.StatusInternalServerError
			if errors.Is(err, i18n.ErrEmptyLanguage) {
				status = http.StatusBadRequest
			}
			http.Error(w, http.StatusText(status), status)
			return
		}

		http.Redirect(w, r, backTarget(r), http.StatusSeeOther)
	}
}

// backTarget returns the path of a same-host Referer, or "/".
// Paths a browser would read as scheme-relative ("//host", "/\host") go home too.
func backTarget(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if !strings.HasPrefix(ref.Path, "/") ||
		strings.HasPrefix(ref.Path, "//") ||
		strings.HasPrefix(ref.Path, "/\\") {
		return "/"
	}
	target := ref.EscapedPath()
	if ref.RawQuery != "" {
		target += "?" + ref.RawQuery
	}
	return target
}
