package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/simplei18n/pkg/dom"
	"github.com/dmitrymomot/simplei18n/pkg/i18n"
	"github.com/dmitrymomot/simplei18n/pkg/langstore"
	"github.com/dmitrymomot/simplei18n/pkg/logger"
)

// StoreFunc returns the language store of one request.
type StoreFunc func(w http.ResponseWriter, r *http.Request) (i18n.Store, error)

// CookieStore keeps the language in a browser cookie.
// The options are applied once and shared by every request.
func CookieStore(opts ...langstore.CookieOption) StoreFunc {
	m := langstore.NewCookieManager(opts...)
	return func(w http.ResponseWriter, r *http.Request) (i18n.Store, error) {
		return m.Store(w, r), nil
	}
}

// I18nConfig configures the I18n middleware.
type I18nConfig struct {
	Translations     map[string]string
	FallbackLang     string
	IsMetaTranslated bool
	Fetcher          i18n.Fetcher
	Store            StoreFunc
	Logger           *slog.Logger
	AcceptLanguage   bool
}

// I18nOption configures I18nConfig.
type I18nOption func(*I18nConfig)

// WithI18nFallback sets the fallback language. Default: i18n.DefaultFallbackLang.
func WithI18nFallback(lang string) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.FallbackLang = lang
	}
}

// WithI18nMetaTranslated enables page title, description and keywords translation.
func WithI18nMetaTranslated(enabled bool) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.IsMetaTranslated = enabled
	}
}

// WithI18nStore sets how the per-request store is built. Default: CookieStore().
func WithI18nStore(fn StoreFunc) I18nOption {
	return func(cfg *I18nConfig) {
		if fn != nil {
			cfg.Store = fn
		}
	}
}

// WithI18nLogger sets the logger. Default: discard.
func WithI18nLogger(l *slog.Logger) I18nOption {
	return func(cfg *I18nConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithI18nAcceptLanguage picks the first language of a visitor without a
// persisted one from the Accept-Language header.
func WithI18nAcceptLanguage() I18nOption {
	return func(cfg *I18nConfig) {
		cfg.AcceptLanguage = true
	}
}

// I18n returns middleware that starts an i18n session for every request.
//
// The session language comes from the request store. When it is not
// supported, the fallback is persisted and the client is redirected to the
// same URL, so the next request starts over with the fallback language.
// Load errors are logged; the request continues with a session whose
// lookups echo their keys.
func I18n(translations map[string]string, fetcher i18n.Fetcher, opts ...I18nOption) func(http.Handler) http.Handler {
	cfg := &I18nConfig{
		Translations: translations,
		FallbackLang: i18n.DefaultFallbackLang,
		Fetcher:      fetcher,
		Store:        CookieStore(),
		Logger:       logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	_, fallbackOK := cfg.Translations[cfg.FallbackLang]
	var (
		matcher language.Matcher
		codes   []string
	)
	if cfg.AcceptLanguage {
		matcher, codes = newLanguageMatcher(cfg.Translations, cfg.FallbackLang)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if !fallbackOK {
				cfg.Logger.ErrorContext(ctx, "i18n misconfigured",
					slog.String("fallback", cfg.FallbackLang),
					slog.String("error", ErrNoFallback.Error()),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			store, err := cfg.Store(w, r)
			if err != nil {
				cfg.Logger.ErrorContext(ctx, "language store unavailable", slog.String("error", err.Error()))
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}

			if len(codes) > 0 {
				detectLanguage(ctx, r, store, matcher, codes, cfg.Logger)
			}

			st := &pageState{}
			page := pageName(r.URL.Path)

			s, err := i18n.New(ctx, i18n.Config{
				Translations:     cfg.Translations,
				FallbackLang:     cfg.FallbackLang,
				IsMetaTranslated: cfg.IsMetaTranslated,
			},
				i18n.WithStore(store),
				i18n.WithFetcher(cfg.Fetcher),
				i18n.WithLogger(cfg.Logger),
				i18n.WithReloadFunc(func(_ context.Context, lang string) {
					st.reloadTo = lang
				}),
				i18n.WithMetaSetter(func(ctx context.Context, s *i18n.Session) {
					meta := s.PageMeta(ctx, page)
					st.meta = &meta
				}),
			)
			if err != nil {
				var ule *i18n.UnsupportedLanguageError
				if errors.As(err, &ule) && st.reloadTo != "" {
					cfg.Logger.InfoContext(ctx, "unsupported language replaced",
						slog.String("lang", ule.Lang),
						slog.String("fallback", ule.Fallback),
					)
					http.Redirect(w, r, r.URL.RequestURI(), http.StatusFound)
					return
				}
				cfg.Logger.ErrorContext(ctx, "i18n session failed", slog.String("error", err.Error()))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if err := s.Load(ctx); err != nil {
				cfg.Logger.WarnContext(ctx, "translation document not loaded",
					slog.String("lang", s.Lang()),
					slog.String("error", err.Error()),
				)
			}

			ctx = context.WithValue(ctx, sessionKey{}, s)
			ctx = context.WithValue(ctx, pageKey{}, st)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// pageName maps a URL path to its metadata key. The site root is "index".
func pageName(p string) string {
	if name := dom.PageName(p); name != "" {
		return name
	}
	return "index"
}

// newLanguageMatcher builds a matcher over the supported codes with the
// fallback first, so it wins ties. Codes that are not valid BCP 47 are left out.
func newLanguageMatcher(translations map[string]string, fallback string) (language.Matcher, []string) {
	codes := []string{fallback}
	for _, code := range slices.Sorted(maps.Keys(translations)) {
		if code != fallback {
			codes = append(codes, code)
		}
	}

	tags := make([]language.Tag, 0, len(codes))
	valid := make([]string, 0, len(codes))
	for _, code := range codes {
		tag, err := dom.LanguageTag(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		valid = append(valid, code)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return language.NewMatcher(tags), valid
}

// detectLanguage persists the best Accept-Language match when the store has
// no language yet.
func detectLanguage(ctx context.Context, r *http.Request, store i18n.Store, matcher language.Matcher, codes []string, log *slog.Logger) {
	header := r.Header.Get("Accept-Language")
	if header == "" || len(codes) == 0 {
		return
	}

	if v, err := store.Get(ctx, i18n.LangKey); err == nil && v != "" && v != "undefined" {
		return
	}

	accepted, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(accepted) == 0 {
		return
	}

	_, idx, conf := matcher.Match(accepted...)
	if conf == language.No || idx < 0 || idx >= len(codes) {
		return
	}

	if err := store.Set(ctx, i18n.LangKey, codes[idx]); err != nil {
		log.WarnContext(ctx, "failed to persist detected language", slog.String("error", err.Error()))
	}
}
