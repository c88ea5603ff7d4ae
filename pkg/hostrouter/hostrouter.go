package hostrouter

import (
	"net/http"
	"strings"
)

// Routes maps host patterns to HTTP handlers.
// Exact: "api.example.com"
// Wildcard: "*.example.com"
type Routes map[string]http.Handler

// Router dispatches requests on the Host header.
// Exact hosts win over wildcard patterns; unmatched hosts go to the fallback.
type Router struct {
	exact    map[string]http.Handler
	wildcard map[string]http.Handler // keyed by parent domain: "*.example.com" -> "example.com"
	fallback http.Handler
}

// New creates a host router from the given routes.
// A nil fallback responds with 404.
func New(routes Routes, fallback http.Handler) *Router {
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}

	r := &Router{
		exact:    make(map[string]http.Handler, len(routes)),
		wildcard: make(map[string]http.Handler),
		fallback: fallback,
	}

	for pattern, handler := range routes {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" || handler == nil {
			continue
		}
		if parent, ok := strings.CutPrefix(pattern, "*."); ok {
			r.wildcard[parent] = handler
			continue
		}
		r.exact[pattern] = handler
	}

	return r
}

// Match returns the handler registered for host, if any.
// The host may carry a port.
func (r *Router) Match(host string) (http.Handler, bool) {
	host, _ = SplitHostPort(host)

	if h, ok := r.exact[host]; ok {
		return h, true
	}
	if _, parent, ok := strings.Cut(host, "."); ok {
		if h, ok := r.wildcard[parent]; ok {
			return h, true
		}
	}
	return nil, false
}

// ServeHTTP routes the request to the matching handler or the fallback.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r.Match(req.Host); ok {
		h.ServeHTTP(w, req)
		return
	}
	r.fallback.ServeHTTP(w, req)
}
