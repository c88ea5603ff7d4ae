package internal

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/forgeroute/pkg/logger"
	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

// Router is the interface handlers use to declare routes.
// It provides HTTP method routing, grouping, and route naming.
//
// Paths use the chi syntax extended with optional parameters:
// "/posts/{page?}" answers both "/posts" and "/posts/{page}".
type Router interface {
	// GET registers a handler for GET requests.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// POST registers a handler for POST requests.
	POST(path string, h HandlerFunc, mw ...Middleware)

	// PUT registers a handler for PUT requests.
	PUT(path string, h HandlerFunc, mw ...Middleware)

	// PATCH registers a handler for PATCH requests.
	PATCH(path string, h HandlerFunc, mw ...Middleware)

	// DELETE registers a handler for DELETE requests.
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// HEAD registers a handler for HEAD requests.
	HEAD(path string, h HandlerFunc, mw ...Middleware)

	// OPTIONS registers a handler for OPTIONS requests.
	OPTIONS(path string, h HandlerFunc, mw ...Middleware)

	// Name returns a router whose registrations are recorded in the
	// route table under name. Group prefixes are part of the template.
	//
	//	r.Name("users.show").GET("/users/{id}", h.show)
	Name(name string) Router

	// Group creates an inline route group.
	// All routes defined inside fn share no common pattern prefix.
	Group(fn func(r Router))

	// Route creates a route group with a pattern prefix.
	// All routes defined inside fn share the pattern prefix.
	// The prefix may not contain optional parameters.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to the router's middleware stack.
	Use(mw ...Middleware)

	// Mount attaches an http.Handler at the given pattern.
	// Use this for legacy handlers or third-party routers.
	Mount(pattern string, h http.Handler)
}

// routerAdapter wraps chi.Router to implement the Router interface.
type routerAdapter struct {
	router chi.Router
	app    *App
	prefix string
	name   string
}

func (r *routerAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodGet, path, h, mw)
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPost, path, h, mw)
}

func (r *routerAdapter) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPut, path, h, mw)
}

func (r *routerAdapter) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPatch, path, h, mw)
}

func (r *routerAdapter) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodDelete, path, h, mw)
}

func (r *routerAdapter) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodHead, path, h, mw)
}

func (r *routerAdapter) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodOptions, path, h, mw)
}

func (r *routerAdapter) Name(name string) Router {
	named := *r
	named.name = name
	return &named
}

func (r *routerAdapter) Group(fn func(Router)) {
	r.router.Group(func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app, prefix: r.prefix})
	})
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	def, err := urlgen.ParsePattern(pattern)
	if err != nil {
		panic(fmt.Sprintf("forgeroute: route group %q: %v", pattern, err))
	}
	for _, seg := range def.Segments() {
		if seg.Optional {
			panic(fmt.Sprintf("forgeroute: route group %q: optional parameter %q in prefix", pattern, seg.Name))
		}
	}

	prefix := r.prefix + strings.TrimSuffix(pattern, "/")
	r.router.Route(pattern, func(cr chi.Router) {
		fn(&routerAdapter{router: cr, app: r.app, prefix: prefix})
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.router.Use(r.app.adaptMiddleware(m))
	}
}

func (r *routerAdapter) Mount(pattern string, h http.Handler) {
	r.router.Mount(pattern, h)
}

// handle registers h for every chi pattern the path expands to and records
// the full template when the router carries a name.
func (r *routerAdapter) handle(method, path string, h HandlerFunc, mw []Middleware) {
	def, err := urlgen.ParsePattern(path)
	if err != nil {
		panic(fmt.Sprintf("forgeroute: %s %s: %v", method, path, err))
	}

	if r.name != "" {
		if err := r.app.nameRoute(r.name, r.template(path)); err != nil {
			panic(fmt.Sprintf("forgeroute: %s %s: %v", method, path, err))
		}
	}

	handler := r.wrap(h, mw...)
	for _, pattern := range def.ChiPatterns() {
		if pattern == "" {
			pattern = "/"
		}
		r.router.Method(method, pattern, handler)
	}
}

// template returns path as seen from the root router.
func (r *routerAdapter) template(path string) string {
	if r.prefix == "" {
		return path
	}
	if path == "/" || path == "" {
		return r.prefix
	}
	return r.prefix + path
}

func (r *routerAdapter) wrap(h HandlerFunc, mw ...Middleware) http.HandlerFunc {
	// Apply route-specific middleware in reverse order (last registered = first executed)
	mw = slices.Clone(mw)
	slices.Reverse(mw)
	for _, m := range mw {
		h = m(h)
	}
	return r.adaptHandler(h)
}

func (r *routerAdapter) adaptHandler(h HandlerFunc) http.HandlerFunc {
	name := r.name
	return func(w http.ResponseWriter, req *http.Request) {
		if name != "" {
			req = req.WithContext(logger.WithMatchedRoute(req.Context(), name))
		}
		c := newContext(w, req, r.app)
		if err := h(c); err != nil {
			r.app.reportError(c, errorSinkFrom(req), err)
		}
	}
}

// errorSink carries a handler error back up to the enclosing middleware,
// so middleware written against Context sees what handlers return.
type errorSink struct {
	err error
}

type errorSinkKey struct{}

func errorSinkFrom(r *http.Request) *errorSink {
	s, _ := r.Context().Value(errorSinkKey{}).(*errorSink)
	return s
}

// adaptMiddleware converts a Middleware to chi middleware.
// The error returned by the rest of the chain is passed to mw; the
// outermost middleware hands the final error to the error handler.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parent := errorSinkFrom(r)
			sink := &errorSink{}
			r = r.WithContext(context.WithValue(r.Context(), errorSinkKey{}, sink))

			nextFunc := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return sink.err
			}
			c := newContext(w, r, a)
			if err := mw(nextFunc)(c); err != nil {
				a.reportError(c, parent, err)
			}
		})
	}
}
