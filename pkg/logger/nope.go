package logger

import "log/slog"

var nope = slog.New(slog.DiscardHandler)

// NewNope returns a logger that drops every record.
func NewNope() *slog.Logger {
	return nope
}

// OrNope returns l, or the discarding logger when l is nil.
func OrNope(l *slog.Logger) *slog.Logger {
	if l == nil {
		return nope
	}
	return l
}
