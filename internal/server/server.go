// Package server runs an http.Handler until the context is cancelled or the
// process receives SIGINT or SIGTERM, then shuts down gracefully.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/simplei18n/pkg/logger"
)

const (
	defaultAddress           = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// Hook runs during shutdown after the HTTP server has stopped.
type Hook func(ctx context.Context) error

type config struct {
	address         string
	logger          *slog.Logger
	shutdownTimeout time.Duration
	hooks           []Hook
	ready           func(addr net.Addr)
}

// Option configures Run.
type Option func(*config)

// WithAddress sets the listen address. Default: ":8080".
func WithAddress(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.address = addr
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithShutdownTimeout bounds server shutdown and hooks together.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WithShutdownHook adds a hook, e.g. closing a Redis client. Hooks run in order.
func WithShutdownHook(h Hook) Option {
	return func(c *config) {
		if h != nil {
			c.hooks = append(c.hooks, h)
		}
	}
}

// WithReady is called with the bound address once the listener is open.
func WithReady(fn func(addr net.Addr)) Option {
	return func(c *config) {
		c.ready = fn
	}
}

// Run serves handler and blocks until shutdown completes.
func Run(ctx context.Context, handler http.Handler, opts ...Option) error {
	cfg := &config{
		address:         defaultAddress,
		logger:          logger.NewNope(),
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", cfg.address)
	if err != nil {
		return err
	}
	if cfg.ready != nil {
		cfg.ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	cfg.logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range cfg.hooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			cfg.logger.Error("shutdown hook failed", slog.String("error", err.Error()))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	cfg.logger.Info("shutdown completed")
	return nil
}
