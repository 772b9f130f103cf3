package logger

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDExtractor adds request_id set by chi's RequestID middleware.
func RequestIDExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := middleware.GetReqID(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}

// LanguageExtractor adds lang as reported by lookup.
func LanguageExtractor(lookup func(ctx context.Context) (string, bool)) ContextExtractor {
	if lookup == nil {
		return nil
	}
	return func(ctx context.Context) (slog.Attr, bool) {
		if lang, ok := lookup(ctx); ok && lang != "" {
			return slog.String("lang", lang), true
		}
		return slog.Attr{}, false
	}
}
