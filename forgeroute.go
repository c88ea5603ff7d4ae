package forgeroute

import (
	"context"
	"io/fs"
	"log/slog"
	"net"
	"time"

	"github.com/dmitrymomot/forgeroute/internal"
	"github.com/dmitrymomot/forgeroute/pkg/logger"
	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, the named route table, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access, URL generation and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// ResponseWriter wraps http.ResponseWriter and tracks the written status.
	ResponseWriter = internal.ResponseWriter

	// HTTPError represents an HTTP error with status code and message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ContextExtractor extracts a log attribute from a request context.
	ContextExtractor = logger.ContextExtractor

	// Params is an ordered bag of named and positional route parameters.
	Params = urlgen.Params

	// Table maps route names to URL templates.
	Table = urlgen.Table
)

// Error codes set on URL generation failures.
const (
	ErrorCodeRouteNotFound    = internal.ErrorCodeRouteNotFound
	ErrorCodeMissingParameter = internal.ErrorCodeMissingParameter
	ErrorCodeInvalidParameter = internal.ErrorCodeInvalidParameter
)

// Sentinel errors.
var (
	// ErrUnnamedRoute is returned by CurrentRoute when the matched route has no name.
	ErrUnnamedRoute = internal.ErrUnnamedRoute

	// ErrNoApps is returned by Run when neither domains nor a fallback are configured.
	ErrNoApps = internal.ErrNoApps
)

// New creates a new application with the given options.
// The route table is frozen once every handler has declared its routes.
//
// Example:
//
//	app := forgeroute.New(
//	    forgeroute.WithRootURL("https://example.com"),
//	    forgeroute.WithHandlers(handlers.NewUsers(repo)),
//	)
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Run starts the HTTP server with the given configuration.
// It blocks until a shutdown signal is received or the context is cancelled.
//
// Example:
//
//	err := forgeroute.Run(
//	    forgeroute.Domain("api.acme.com", apiApp),
//	    forgeroute.Fallback(landingApp),
//	    forgeroute.Address(":8080"),
//	)
func Run(opts ...RunOption) error {
	return internal.Run(opts...)
}

// P builds a parameter bag from alternating key/value pairs.
//
//	c.RouteURL("users.show", forgeroute.P("id", 42))
func P(pairs ...any) Params {
	return urlgen.P(pairs...)
}

// Positional builds a parameter bag of unkeyed values.
func Positional(values ...any) Params {
	return urlgen.Positional(values...)
}

// NewTable creates an empty route table for use with WithRoutes.
func NewTable() *Table {
	return urlgen.NewTable()
}

// WithBaseDomain configures the base domain for subdomain extraction.
func WithBaseDomain(domain string) Option {
	return internal.WithBaseDomain(domain)
}

// WithMiddleware adds global middleware to the application.
// Middleware runs for every request in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithRoutes adds named routes that are not served by this app,
// for example routes of another domain. Names must not clash with
// routes the handlers declare.
//
// Example:
//
//	admin := forgeroute.NewTable().
//	    MustAdd("admin.dashboard", "/admin").
//	    MustAdd("admin.users.show", "/admin/users/{id}")
//
//	forgeroute.New(forgeroute.WithRoutes(admin))
func WithRoutes(tables ...*Table) Option {
	return internal.WithRoutes(tables...)
}

// WithRootURL pins the root URL used for absolute URLs instead of
// deriving it from each request. It panics if raw is not an absolute URL.
//
// Example:
//
//	forgeroute.New(
//	    forgeroute.WithRootURL("https://example.com"),
//	)
func WithRootURL(raw string) Option {
	return internal.WithRootURL(raw)
}

// WithAssetURL serves asset URLs from a separate root such as a CDN.
// It panics if raw is not an absolute URL.
func WithAssetURL(raw string) Option {
	return internal.WithAssetURL(raw)
}

// WithURLScheme forces the scheme of generated absolute URLs.
func WithURLScheme(scheme string) Option {
	return internal.WithURLScheme(scheme)
}

// WithTrustedProxyHeaders derives the request root from the
// X-Forwarded-Proto and X-Forwarded-Host headers.
// Enable it only behind a proxy that sets them.
func WithTrustedProxyHeaders() Option {
	return internal.WithTrustedProxyHeaders()
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	forgeroute.New(
//	    forgeroute.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithLogger creates a logger with a component name and optional extractors.
//
// Example:
//
//	forgeroute.New(
//	    forgeroute.WithLogger("web", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Run options

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the runtime logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run after the port is bound
// and before serving requests. Hooks run concurrently; the first
// failure stops the server.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// Domain maps a host pattern to an App.
// Patterns: "api.example.com" (exact) or "*.example.com" (wildcard)
func Domain(pattern string, app *App) RunOption {
	return internal.Domain(pattern, app)
}

// Fallback sets the App for requests that match no domain.
func Fallback(app *App) RunOption {
	return internal.Fallback(app)
}

// WithContext sets the base context. Cancelling it starts a graceful shutdown.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Listener serves on an existing listener instead of binding Address.
func Listener(ln net.Listener) RunOption {
	return internal.Listener(ln)
}

// HTTP error helpers

// NewHTTPError creates a new HTTP error.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithTitle sets the error title.
func WithTitle(title string) HTTPErrorOption { return internal.WithTitle(title) }

// WithDetail sets the error detail.
func WithDetail(detail string) HTTPErrorOption { return internal.WithDetail(detail) }

// WithErrorCode sets a machine readable error code.
func WithErrorCode(code string) HTTPErrorOption { return internal.WithErrorCode(code) }

// WithRequestID sets the request ID on the error.
func WithRequestID(id string) HTTPErrorOption { return internal.WithRequestID(id) }

// WithError wraps an underlying error.
func WithError(err error) HTTPErrorOption { return internal.WithError(err) }

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound creates a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrInternal creates a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// URLError converts a URL generation failure into a 500 HTTPError
// carrying one of the ErrorCode constants. Other errors yield nil.
func URLError(err error) *HTTPError {
	return internal.URLError(err)
}

// IsHTTPError reports whether err is or wraps an HTTPError.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError extracts an HTTPError from err, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Request helpers

// Param returns a URL parameter converted to T.
// Returns the zero value if the parameter is missing or invalid.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// QueryDefault returns a query parameter converted to T, or defaultValue.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// ContextValue returns a typed value stored with c.Set.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// RouteParams returns the URL parameters of the matched route as a bag.
func RouteParams(c Context) Params {
	return internal.RouteParams(c)
}

// CurrentRoute renders the URL of the matched named route,
// with overrides replacing its parameters.
//
//	next, err := forgeroute.CurrentRoute(c, forgeroute.P("page", page+1))
func CurrentRoute(c Context, overrides Params) (string, error) {
	return internal.CurrentRoute(c, overrides)
}
