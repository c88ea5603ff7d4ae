package internal

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/forgeroute/pkg/logger"
	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It manages HTTP routing, the named route table, and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	logger                  *slog.Logger
	routes                  *urlgen.Table
	urls                    *urlgen.Generator
	baseDomain              string
	urlOptions              []urlgen.Option
	externalRoutes          []*urlgen.Table
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
// The App is immutable after creation: the route table is frozen once
// every handler has declared its routes.
//
// New panics when two routes share a name.
//
// Example:
//
//	app := forgeroute.New(
//	    forgeroute.WithRootURL("https://example.com"),
//	    forgeroute.WithHandlers(
//	        handlers.NewUsers(repo),
//	        handlers.NewPages(repo),
//	    ),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(), // Default: noop logger (before options)
		routes: urlgen.NewTable(),
	}

	for _, opt := range opts {
		opt(a)
	}

	for _, t := range a.externalRoutes {
		for _, r := range t.Routes() {
			if err := a.routes.AddDefinition(r.Name, r.Definition); err != nil {
				panic(fmt.Sprintf("forgeroute: %v", err))
			}
		}
	}

	a.urls = urlgen.New(a.routes, append(a.urlOptions, urlgen.WithLogger(a.logger))...)

	a.setupRoutes()
	a.routes.Freeze()
	return a
}

// Router returns the underlying chi.Router for the App.
// This is used internally for composing multi-domain routing.
func (a *App) Router() chi.Router {
	return a.router
}

// URLs returns the URL generator shared by all requests of the app.
func (a *App) URLs() *urlgen.Generator {
	return a.urls
}

// Routes returns the frozen named route table.
func (a *App) Routes() *urlgen.Table {
	return a.routes
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts a single-domain HTTP server and blocks until shutdown.
// This is a convenience method for the common single-app case.
//
// Example:
//
//	app := forgeroute.New(
//	    forgeroute.WithHandlers(handlers.NewLandingHandler()),
//	)
//	err := app.Run(":8080", forgeroute.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
		listener:        cfg.listener,
	})
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	// Every request gets its URL view first, so middleware can build URLs.
	a.router.Use(urlgen.Middleware(a.urls))

	// Set custom error handlers on chi router
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	// Apply global middleware
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	// Mount static file handlers
	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	// Register handlers
	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// nameRoute records a named template. Registering the same template under
// the same name again is a no-op, so one named router may serve several
// methods.
func (a *App) nameRoute(name, template string) error {
	if def, err := a.routes.Resolve(name); err == nil && def.Pattern() == template {
		return nil
	}
	return a.routes.Add(name, template)
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.reportError(c, errorSinkFrom(r), err)
		}
	}
}

// reportError passes err to the enclosing middleware when there is one,
// and to the error handler otherwise.
func (a *App) reportError(c Context, sink *errorSink, err error) {
	if sink != nil {
		sink.err = err
		return
	}
	a.handleError(c, err)
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	// Check if response has already been written
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		_ = a.errorHandler(c, err)
		return
	}

	code := http.StatusInternalServerError
	if httpErr := AsHTTPError(err); httpErr != nil {
		code = httpErr.Code
	}
	if code >= http.StatusInternalServerError {
		c.LogError("request failed", "error", err)
	}
	http.Error(c.Response(), http.StatusText(code), code)
}
