package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forgeroute/pkg/logger"
)

type tenantKey struct{}

func tenantExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(tenantKey{}).(string); ok {
		return slog.String("tenant", v), true
	}
	return slog.Attr{}, false
}

func TestNewWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("json with extractor", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf}, tenantExtractor)

		ctx := context.WithValue(context.Background(), tenantKey{}, "acme")
		log.InfoContext(ctx, "hello", slog.Int("n", 1))

		require.Contains(t, buf.String(), `"msg":"hello"`)
		require.Contains(t, buf.String(), `"tenant":"acme"`)
		require.Contains(t, buf.String(), `"n":1`)
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf, Format: logger.FormatText})
		log.Info("hello")

		require.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf, Level: slog.LevelWarn})
		log.Info("hidden")
		log.Warn("shown")

		require.NotContains(t, buf.String(), "hidden")
		require.Contains(t, buf.String(), "shown")
	})

	t.Run("nil extractors are ignored", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf}, nil, tenantExtractor)
		require.NotPanics(t, func() { log.Info("ok") })
	})
}

func TestDecoratorKeepsExtractorsAcrossWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithConfig(logger.Config{Output: &buf}, tenantExtractor).
		With("component", "web").
		WithGroup("req")

	ctx := context.WithValue(context.Background(), tenantKey{}, "acme")
	log.InfoContext(ctx, "grouped", slog.String("path", "/"))

	require.Contains(t, buf.String(), `"component":"web"`)
	require.Contains(t, buf.String(), `"tenant":"acme"`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestNewWithSentryWithoutDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithSentry(logger.SentryConfig{
		Local: logger.Config{Output: &buf},
	}, tenantExtractor)

	ctx := context.WithValue(context.Background(), tenantKey{}, "acme")
	log.ErrorContext(ctx, "local only")

	require.Contains(t, buf.String(), `"msg":"local only"`)
	require.Contains(t, buf.String(), `"tenant":"acme"`)
}

func TestMatchedRoute(t *testing.T) {
	t.Parallel()

	t.Run("added to every record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf}).With("component", "urlgen").WithGroup("req")

		ctx := logger.WithMatchedRoute(context.Background(), "users.show")
		log.DebugContext(ctx, "skipped")
		log.InfoContext(ctx, "url generation failed")

		require.Contains(t, buf.String(), `"matched_route":"users.show"`)
		require.Contains(t, buf.String(), `"component":"urlgen"`)
	})

	t.Run("absent without a route", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithConfig(logger.Config{Output: &buf})
		log.InfoContext(logger.WithMatchedRoute(context.Background(), ""), "anonymous")

		require.NotContains(t, buf.String(), logger.MatchedRouteKey)
	})

	t.Run("read back", func(t *testing.T) {
		t.Parallel()

		name, ok := logger.MatchedRoute(logger.WithMatchedRoute(context.Background(), "home"))
		require.True(t, ok)
		require.Equal(t, "home", name)

		_, ok = logger.MatchedRoute(context.Background())
		require.False(t, ok)
	})
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { logger.NewNope().Error("discarded") })
	require.False(t, logger.NewNope().Enabled(context.Background(), slog.LevelError))

	custom := logger.NewWithConfig(logger.Config{Output: &bytes.Buffer{}})
	require.Same(t, custom, logger.OrNope(custom))
	require.Same(t, logger.NewNope(), logger.OrNope(nil))
}
