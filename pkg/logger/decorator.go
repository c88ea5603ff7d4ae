package logger

import (
	"context"
	"log/slog"
	"slices"
)

// ContextExtractor pulls one attribute out of a request context.
// Returning false leaves the record without it.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// MatchedRouteKey is the attribute key of the matched route name.
const MatchedRouteKey = "matched_route"

type matchedRouteKey struct{}

// WithMatchedRoute returns a copy of ctx carrying the name of the route
// that serves the request.
func WithMatchedRoute(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, matchedRouteKey{}, name)
}

// MatchedRoute returns the route name stored with WithMatchedRoute.
func MatchedRoute(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(matchedRouteKey{}).(string)
	return name, ok && name != ""
}

// MatchedRouteExtractor adds the matched route name under MatchedRouteKey.
func MatchedRouteExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		name, ok := MatchedRoute(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String(MatchedRouteKey, name), true
	}
}

// ContextHandler is a slog.Handler that adds request-scoped attributes to
// every record: the matched route name, then the attributes of its
// extractors. Extractors run per record, so values set late in a request
// (such as the route name) are still picked up.
type ContextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewContextHandler wraps next. Nil extractors are dropped.
func NewContextHandler(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	all := make([]ContextExtractor, 0, len(extractors)+1)
	all = append(all, MatchedRouteExtractor())
	for _, ex := range extractors {
		if ex != nil {
			all = append(all, ex)
		}
	}
	return &ContextHandler{next: next, extractors: all}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ctx == nil {
		return h.next.Handle(ctx, rec)
	}
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs), extractors: slices.Clip(h.extractors)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name), extractors: slices.Clip(h.extractors)}
}
