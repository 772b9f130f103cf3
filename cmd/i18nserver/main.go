// Command i18nserver serves static HTML pages localized per visitor.
//
// Pages under PAGES_DIR are rewritten on the way out: elements marked with
// data-i18n or data-i18n-attr are translated, and the page metadata and html
// lang attribute are set. Translation documents come from LOCALES_DIR, from
// LOCALES_BASE_URL over HTTP, or from S3 when S3_BUCKET is set. The visitor's
// language lives in a cookie, or in Redis when REDIS_URL is set.
//
// Configuration is read from the environment and an optional .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/simplei18n/internal/health"
	"github.com/dmitrymomot/simplei18n/internal/server"
	"github.com/dmitrymomot/simplei18n/middlewares"
	"github.com/dmitrymomot/simplei18n/pkg/dom"
	"github.com/dmitrymomot/simplei18n/pkg/i18n"
	"github.com/dmitrymomot/simplei18n/pkg/langstore"
	"github.com/dmitrymomot/simplei18n/pkg/logger"
	"github.com/dmitrymomot/simplei18n/pkg/s3fetch"
)

type config struct {
	Addr            string            `env:"ADDR" envDefault:":8080"`
	PagesDir        string            `env:"PAGES_DIR" envDefault:"./web"`
	LocalesDir      string            `env:"LOCALES_DIR" envDefault:"./web/locales"`
	LocalesBaseURL  string            `env:"LOCALES_BASE_URL"`
	Langs           map[string]string `env:"LANGS" envDefault:"en_US:en_US.json,zh_Hans:zh_Hans.yaml"`
	FallbackLang    string            `env:"FALLBACK_LANG" envDefault:"en_US"`
	MetaTranslated  bool              `env:"META_TRANSLATED" envDefault:"true"`
	AcceptLanguage  bool              `env:"ACCEPT_LANGUAGE" envDefault:"true"`
	SanitizeHTML    bool              `env:"SANITIZE_HTML" envDefault:"false"`
	SecureCookies   bool              `env:"SECURE_COOKIES" envDefault:"false"`
	RedisURL        string            `env:"REDIS_URL"`
	RedisTTL        time.Duration     `env:"REDIS_TTL" envDefault:"8760h"`
	ShutdownTimeout time.Duration     `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	S3              s3fetch.Config    `envPrefix:"S3_"`
	Log             logger.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	log := logger.FromConfig(cfg.Log,
		logger.RequestIDExtractor(),
		logger.LanguageExtractor(middlewares.LanguageFromContext),
	)
	defer logger.Flush()

	fetcher, source, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	log.Info("translation source", slog.String("source", source), slog.Any("languages", cfg.Langs))

	checks := health.Checks{
		"translations": health.DocumentCheck(fetcher, cfg.Langs[cfg.FallbackLang]),
	}
	opts := []server.Option{
		server.WithAddress(cfg.Addr),
		server.WithLogger(log),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
	}

	store := middlewares.CookieStore(langstore.WithCookieSecure(cfg.SecureCookies))
	if cfg.RedisURL != "" {
		client, err := langstore.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		store = middlewares.RedisStore(client, langstore.WithTTL(cfg.RedisTTL))
		checks["redis"] = langstore.RedisHealthcheck(client)
		opts = append(opts, server.WithShutdownHook(closeRedis(client)))
	}

	var domOpts []dom.Option
	if cfg.SanitizeHTML {
		domOpts = append(domOpts, dom.WithSanitizer(dom.ContentPolicy()))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.Recover(middlewares.WithRecoverLogger(log)))

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(checks, health.WithLogger(log)))

	r.Group(func(r chi.Router) {
		r.Use(middlewares.I18n(cfg.Langs, fetcher,
			middlewares.WithI18nFallback(cfg.FallbackLang),
			middlewares.WithI18nMetaTranslated(cfg.MetaTranslated),
			middlewares.WithI18nStore(store),
			middlewares.WithI18nLogger(log),
			acceptLanguage(cfg.AcceptLanguage),
		))
		r.Post("/lang/{code}", middlewares.SwitchLanguage(log))
		r.Post("/lang", middlewares.SwitchLanguage(log))
		r.With(middlewares.Localize(
			middlewares.WithLocalizeDOMOptions(domOpts...),
			middlewares.WithLocalizeLogger(log),
		)).Handle("/*", http.FileServer(http.Dir(cfg.PagesDir)))
	})

	return server.Run(ctx, r, opts...)
}

// newFetcher picks the translation source: S3, then HTTP, then a directory.
func newFetcher(cfg config) (i18n.Fetcher, string, error) {
	switch {
	case cfg.S3.Bucket != "":
		f, err := s3fetch.New(cfg.S3)
		if err != nil {
			return nil, "", err
		}
		return f, "s3://" + cfg.S3.Bucket + "/" + cfg.S3.Prefix, nil
	case cfg.LocalesBaseURL != "":
		base, err := url.Parse(cfg.LocalesBaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("parse LOCALES_BASE_URL: %w", err)
		}
		return i18n.NewHTTPFetcher(i18n.WithBaseURL(base)), base.String(), nil
	default:
		return i18n.NewFSFetcher(os.DirFS(cfg.LocalesDir)), cfg.LocalesDir, nil
	}
}

func acceptLanguage(enabled bool) middlewares.I18nOption {
	if enabled {
		return middlewares.WithI18nAcceptLanguage()
	}
	return func(*middlewares.I18nConfig) {}
}

func closeRedis(client redis.UniversalClient) server.Hook {
	return func(context.Context) error {
		return client.Close()
	}
}
