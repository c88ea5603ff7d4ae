package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string
	Environment string
	// MinLevel determines which log levels are stored in Sentry.
	// Errors always create Issues.
	MinLevel slog.Level
	// Local configures the local handler records are also written to.
	Local Config
}

// NewWithSentry creates a logger that writes locally and to Sentry.
// If DSN is empty, only local logging is enabled.
// Context extractors are applied to records sent to both destinations.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	local := cfg.Local.handler()

	if cfg.DSN == "" {
		return slog.New(NewContextHandler(local, extractors...))
	}

	environment := cfg.Environment
	if environment == "" {
		environment = "production"
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(local, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   sentryLogLevels(cfg.MinLevel),
	}.NewSentryHandler(context.Background())

	return slog.New(NewContextHandler(newMultiHandler(local, sentryHandler), extractors...))
}

// sentryLogLevels lists the levels at or above floor that Sentry stores.
func sentryLogLevels(floor slog.Level) []slog.Level {
	var levels []slog.Level
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= floor {
			levels = append(levels, l)
		}
	}
	return levels
}
