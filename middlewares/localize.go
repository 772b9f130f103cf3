package middlewares

import (
	"bytes"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/simplei18n/pkg/dom"
	"github.com/dmitrymomot/simplei18n/pkg/logger"
)

// LocalizeConfig configures the Localize middleware.
type LocalizeConfig struct {
	DOMOptions []dom.Option
	Logger     *slog.Logger
}

// LocalizeOption configures LocalizeConfig.
type LocalizeOption func(*LocalizeConfig)

// WithLocalizeDOMOptions passes options to dom.Rewrite, e.g. dom.WithSanitizer.
func WithLocalizeDOMOptions(opts ...dom.Option) LocalizeOption {
	return func(cfg *LocalizeConfig) {
		cfg.DOMOptions = append(cfg.DOMOptions, opts...)
	}
}

// WithLocalizeLogger sets the logger. Default: discard.
func WithLocalizeLogger(l *slog.Logger) LocalizeOption {
	return func(cfg *LocalizeConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// Localize returns middleware that applies the request session to HTML
// responses: data-i18n markers, the html lang attribute and, when the session
// translates metadata, the page title, description and keywords.
// It must run inside I18n. Other responses pass through untouched.
func Localize(opts ...LocalizeOption) func(http.Handler) http.Handler {
	cfg := &LocalizeConfig{Logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			s := GetSession(ctx)
			if s == nil {
				next.ServeHTTP(w, r)
				return
			}

			// The body depends on the session, so validators and ranges of
			// the underlying resource do not apply.
			for _, h := range []string{"If-Modified-Since", "If-None-Match", "If-Range", "Range"} {
				r.Header.Del(h)
			}

			buf := &bufferedResponse{header: w.Header(), status: http.StatusOK}
			next.ServeHTTP(buf, r)

			if !buf.isHTML() || buf.status != http.StatusOK {
				buf.flush(w, buf.body.Bytes())
				return
			}

			domOpts := append([]dom.Option{dom.WithDocumentLang(s.Lang())}, cfg.DOMOptions...)
			if meta, ok := PageMetaFromContext(ctx); ok {
				domOpts = append(domOpts, dom.WithPageMeta(meta))
			}

			var out bytes.Buffer
			stats, err := dom.Rewrite(ctx, bytes.NewReader(buf.body.Bytes()), &out, s, domOpts...)
			if err != nil {
				cfg.Logger.WarnContext(ctx, "page not localized", slog.String("error", err.Error()))
				buf.flush(w, buf.body.Bytes())
				return
			}

			w.Header().Del("Last-Modified")
			w.Header().Del("ETag")
			w.Header().Add("Vary", "Cookie")
			w.Header().Add("Vary", "Accept-Language")

			cfg.Logger.DebugContext(ctx, "page localized",
				slog.Int("content", stats.Content),
				slog.Int("attributes", stats.Attributes),
				slog.Int("skipped", stats.Skipped),
			)
			buf.flush(w, out.Bytes())
		})
	}
}

// bufferedResponse holds a response until it has been localized.
// It shares the header map with the real writer.
type bufferedResponse struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.status = status
	b.wroteHeader = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}
	if b.header.Get("Content-Type") == "" {
		b.header.Set("Content-Type", http.DetectContentType(p))
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) isHTML() bool {
	mt, _, err := mime.ParseMediaType(b.header.Get("Content-Type"))
	return err == nil && mt == "text/html"
}

func (b *bufferedResponse) flush(w http.ResponseWriter, body []byte) {
	if b.status != http.StatusNoContent && b.status != http.StatusNotModified {
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	}
	w.WriteHeader(b.status)
	_, _ = w.Write(body)
}
