package urlgen

import (
	"context"
	"net/http"
)

type urlsCtxKey struct{}

// Middleware binds every request to a fresh URLs stored in its context.
func Middleware(g *Generator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithURLs(r.Context(), g.Bind(r))))
		})
	}
}

// WithURLs returns a copy of ctx carrying u.
func WithURLs(ctx context.Context, u *URLs) context.Context {
	return context.WithValue(ctx, urlsCtxKey{}, u)
}

// FromContext returns the URLs stored by Middleware or WithURLs.
func FromContext(ctx context.Context) (*URLs, bool) {
	u, ok := ctx.Value(urlsCtxKey{}).(*URLs)
	return u, ok && u != nil
}
