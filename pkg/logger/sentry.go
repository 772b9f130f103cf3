package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry settings.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// ErrorsOnly restricts forwarded logs to errors; warnings are sent by default.
	ErrorsOnly bool `env:"SENTRY_ERRORS_ONLY"`
}

// newSentryHandler initializes the SDK. It returns nil when the DSN is empty
// or initialization fails; the failure is reported through fallback.
func newSentryHandler(cfg SentryConfig, fallback slog.Handler) slog.Handler {
	if cfg.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(fallback).Error("sentry init failed", slog.String("error", err.Error()))
		return nil
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.ErrorsOnly {
		logLevel = []slog.Level{slog.LevelError}
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())
}

// Flush waits for buffered Sentry events. It is a no-op when Sentry is off.
func Flush() {
	sentry.Flush(flushTimeout)
}

const flushTimeout = 2 * time.Second
