package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the local handler encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config holds logger settings read from the environment.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

// Option configures New.
type Option func(*options)

type options struct {
	out        io.Writer
	level      slog.Leveler
	format     Format
	extractors []ContextExtractor
	sentry     *SentryConfig
}

// WithLevel sets the minimum level written locally. Default: info.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		if level != nil {
			o.level = level
		}
	}
}

// WithFormat sets the local encoding. Unknown formats fall back to JSON.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithOutput sets the local destination. Default: stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithSentry enables the Sentry fan-out.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) {
		o.sentry = &cfg
	}
}

// New creates a logger.
func New(opts ...Option) *slog.Logger {
	o := &options{
		out:    os.Stdout,
		level:  slog.LevelInfo,
		format: FormatJSON,
	}
	for _, opt := range opts {
		opt(o)
	}

	var local slog.Handler
	hopts := &slog.HandlerOptions{Level: o.level}
	switch o.format {
	case FormatText:
		local = slog.NewTextHandler(o.out, hopts)
	default:
		local = slog.NewJSONHandler(o.out, hopts)
	}

	handler := local
	if o.sentry != nil {
		if sh := newSentryHandler(*o.sentry, local); sh != nil {
			handler = newFanout(local, sh)
		}
	}

	return slog.New(NewDecorator(handler, o.extractors...))
}

// FromConfig creates a logger from environment settings.
func FromConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return New(
		WithLevel(ParseLevel(cfg.Level)),
		WithFormat(Format(strings.ToLower(cfg.Format))),
		WithSentry(cfg.Sentry),
		WithExtractors(extractors...),
	)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewNope creates a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
