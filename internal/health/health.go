package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
	"github.com/dmitrymomot/simplei18n/pkg/logger"
)

var (
	ErrCheckFailed  = errors.New("health: check failed")
	ErrCheckTimeout = errors.New("health: check timeout")
)

const (
	defaultTimeout = 5 * time.Second

	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to checks.
type Checks map[string]CheckFunc

// Response is the readiness payload.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check is the outcome of one check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures readiness checks.
type Option func(*config)

// WithTimeout bounds all checks together. Default: 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{timeout: defaultTimeout, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes checks concurrently. A failing check does not cancel the others.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	return run(ctx, checks, newConfig(opts...))
}

func run(ctx context.Context, checks Checks, cfg *config) *Response {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]Check, len(checks))
		status  = StatusHealthy
	)

	var g errgroup.Group
	for name, check := range checks {
		g.Go(func() error {
			res := Check{Status: StatusHealthy}
			if err := check(ctx); err != nil {
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					err = fmt.Errorf("%w: %w", ErrCheckTimeout, err)
				}
				res = Check{Status: StatusUnhealthy, Error: err.Error()}
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = res
			if res.Status == StatusUnhealthy {
				status = StatusUnhealthy
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return &Response{Status: status, Checks: results}
}

// DocumentCheck fetches the document at location and fails when it cannot be
// fetched or parsed.
func DocumentCheck(f i18n.Fetcher, location string) CheckFunc {
	return func(ctx context.Context) error {
		if f == nil {
			return fmt.Errorf("%w: %w", ErrCheckFailed, i18n.ErrNoFetcher)
		}
		if _, err := f.Fetch(ctx, location); err != nil {
			return fmt.Errorf("%w: %w", ErrCheckFailed, err)
		}
		return nil
	}
}
