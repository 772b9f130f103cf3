package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/simplei18n/pkg/logger"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace in logs
	Logger            *slog.Logger
	Handler           func(w http.ResponseWriter, r *http.Request, pe *PanicError)
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack trace in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// WithRecoverLogger sets the logger receiving recovered panics.
func WithRecoverLogger(l *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithRecoverHandler replaces the default 500 response.
func WithRecoverHandler(fn func(w http.ResponseWriter, r *http.Request, pe *PanicError)) RecoverOption {
	return func(cfg *RecoverConfig) {
		if fn != nil {
			cfg.Handler = fn
		}
	}
}

// Recover returns middleware that recovers from panics, logs them as errors
// and hands a PanicError to the configured handler.
// http.ErrAbortHandler is re-panicked.
func Recover(opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
		Logger:    logger.NewNope(),
		Handler: func(w http.ResponseWriter, _ *http.Request, _ *PanicError) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rv := recover()
				if rv == nil {
					return
				}
				if rv == http.ErrAbortHandler {
					panic(rv)
				}

				var stack []byte
				attrs := []any{slog.Any("panic", rv)}
				if !cfg.DisablePrintStack {
					stack = make([]byte, cfg.StackSize)
					stack = stack[:runtime.Stack(stack, false)]
					attrs = append(attrs, slog.String("stack", string(stack)))
				}
				cfg.Logger.ErrorContext(r.Context(), "panic recovered", attrs...)

				cfg.Handler(w, r, &PanicError{Value: rv, Stack: stack})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
