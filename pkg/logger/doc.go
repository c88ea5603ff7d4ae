// Package logger provides structured logging with context extraction and Sentry integration.
//
// It extends log/slog with context-based attribute injection and optional
// Sentry error reporting.
//
// # Basic Usage
//
// Create a logger with context extractors:
//
//	// Define an extractor for request ID
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if reqID, ok := ctx.Value("request_id").(string); ok && reqID != "" {
//			return slog.String("request_id", reqID), true
//		}
//		return slog.Attr{}, false
//	}
//
//	// Create logger with extractors
//	log := logger.New(requestIDExtractor)
//
//	// Use with context - request_id is automatically included
//	ctx := context.WithValue(context.Background(), "request_id", "abc-123")
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// Output: {"level":"INFO","msg":"request processed","status":200,"request_id":"abc-123"}
//
// # Configuration
//
// NewWithConfig selects the writer, format and level:
//
//	log := logger.NewWithConfig(logger.Config{
//		Output: os.Stderr,
//		Format: logger.FormatText,
//		Level:  logger.ParseLevel("debug"),
//	})
//
// # Sentry Integration
//
// For production error tracking, use NewWithSentry:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:      os.Getenv("SENTRY_DSN"),
//		MinLevel: slog.LevelWarn,
//	}, requestIDExtractor)
//
// Errors create Issues in Sentry; records at or above MinLevel are stored
// as logs. With an empty DSN the logger writes locally only, so the same
// code path works in development.
//
// # Context Extractors
//
// A ContextExtractor extracts a log attribute from context. Extractors run
// on every log call; returning false skips the attribute for that record.
// NewContextHandler adds extraction to any slog.Handler.
//
// Every logger built here also reports the route serving the request as
// "matched_route", once the router has stored it with WithMatchedRoute:
//
//	ctx = logger.WithMatchedRoute(ctx, "users.show")
//	log.DebugContext(ctx, "url generation failed") // ... matched_route=users.show
package logger
