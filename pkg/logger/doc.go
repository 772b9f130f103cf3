// Package logger builds slog loggers for the i18n server.
//
// Loggers write JSON or text to an io.Writer, optionally fan out to Sentry,
// and enrich every record with request-scoped attributes taken from the
// context by ContextExtractors:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(
//			logger.RequestIDExtractor(),
//			logger.LanguageExtractor(middlewares.LanguageFromContext),
//		),
//	)
//	log.InfoContext(r.Context(), "page localized", slog.Int("elements", n))
//	// {"level":"INFO","msg":"page localized","elements":3,"request_id":"host/abc-000001","lang":"en_US"}
//
// When Sentry is configured but its DSN is empty the logger silently
// writes to the local output only, so the same code runs in development.
package logger
