package logger

import (
	"context"
	"errors"
	"log/slog"
)

// fanout sends each record to every handler that accepts its level.
type fanout struct {
	handlers []slog.Handler
}

func newFanout(handlers ...slog.Handler) slog.Handler {
	return &fanout{handlers: handlers}
}

func (h *fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, next := range h.handlers {
		if next.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle keeps going after a failing handler and reports all failures.
func (h *fanout) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, next := range h.handlers {
		if !next.Enabled(ctx, rec.Level) {
			continue
		}
		if err := next.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, next := range h.handlers {
		handlers[i] = next.WithAttrs(attrs)
	}
	return newFanout(handlers...)
}

func (h *fanout) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, next := range h.handlers {
		handlers[i] = next.WithGroup(name)
	}
	return newFanout(handlers...)
}
