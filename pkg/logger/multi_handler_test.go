package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type failingHandler struct {
	slog.Handler
	err error
}

func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }

func TestMultiHandler(t *testing.T) {
	t.Parallel()

	t.Run("forwards to enabled handlers", func(t *testing.T) {
		t.Parallel()

		var info, errOnly bytes.Buffer
		h := newMultiHandler(
			slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
			slog.NewJSONHandler(&errOnly, &slog.HandlerOptions{Level: slog.LevelError}),
		)
		log := slog.New(h).With("app", "test")

		log.Info("info record")
		log.Error("error record")

		require.Contains(t, info.String(), "info record")
		require.Contains(t, info.String(), "error record")
		require.NotContains(t, errOnly.String(), "info record")
		require.Contains(t, errOnly.String(), `"app":"test"`)
	})

	t.Run("joins handler errors and keeps going", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		e1, e2 := errors.New("first"), errors.New("second")
		base := slog.NewJSONHandler(&buf, nil)
		h := newMultiHandler(
			failingHandler{Handler: base, err: e1},
			base,
			failingHandler{Handler: base, err: e2},
		)

		err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0))
		require.ErrorIs(t, err, e1)
		require.ErrorIs(t, err, e2)
		require.Contains(t, buf.String(), `"msg":"msg"`)
	})

	t.Run("enabled when any handler is", func(t *testing.T) {
		t.Parallel()

		h := newMultiHandler(
			slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
			slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
		require.True(t, h.Enabled(context.Background(), slog.LevelDebug))
	})
}

func TestSentryLogLevels(t *testing.T) {
	t.Parallel()

	require.Equal(t, []slog.Level{slog.LevelWarn, slog.LevelError}, sentryLogLevels(slog.LevelWarn))
	require.Equal(t, []slog.Level{slog.LevelError}, sentryLogLevels(slog.LevelError))
	require.Len(t, sentryLogLevels(slog.LevelDebug), 4)
}
