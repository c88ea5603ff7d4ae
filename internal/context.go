package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/forgeroute/pkg/hostrouter"
	"github.com/dmitrymomot/forgeroute/pkg/logger"
	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

// Header names of the HTMX protocol.
const (
	headerHXRequest  = "HX-Request"
	headerHXRedirect = "HX-Redirect"
)

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	Form(name string) string

	// Domain returns the normalized domain from the request Host header.
	Domain() string

	// Subdomain extracts the subdomain using the base domain configured
	// via WithBaseDomain. Returns empty string if none is configured.
	Subdomain() string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	// HTMX requests get an HX-Redirect header and a 200 instead.
	Redirect(code int, url string) error

	// Error creates and returns an HTTPError without writing a response.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// IsHTMX returns true if the request originated from HTMX.
	IsHTMX() bool

	// Render renders a templ component with the given status code.
	// The URL helpers of package viewurl work inside the component.
	Render(code int, component templ.Component) error

	// Written returns true if a response has already been written.
	Written() bool

	// ResponseWriter returns the wrapped response writer.
	ResponseWriter() *ResponseWriter

	// Logger returns the logger for advanced usage.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get retrieves a value from the request context.
	Get(key any) any

	// URLs returns the URL view bound to this request.
	URLs() *urlgen.URLs

	// RouteName returns the name of the matched route, or "" for unnamed routes.
	RouteName() string

	// Route renders the relative URL of a named route.
	Route(name string, params urlgen.Params) (string, error)

	// RouteURL renders the absolute URL of a named route.
	RouteURL(name string, params urlgen.Params) (string, error)

	// URL turns a path into an absolute URL under the request root.
	URL(path string, extra ...any) string

	// SecureURL is URL over https.
	SecureURL(path string, extra ...any) string

	// RedirectRoute redirects to a named route.
	RedirectRoute(code int, name string, params urlgen.Params) error

	// RedirectBack redirects to the same-host Referer, or to fallback.
	RedirectBack(code int, fallback string) error
}

// requestContext implements the Context interface.
type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	app            *App
	urls           *urlgen.URLs
}

// newContext creates a new context with the response wrapper.
// The request is already bound to its URL view by the app router.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, isHTMX(r))
	}

	urls, ok := urlgen.FromContext(r.Context())
	switch {
	case !ok:
		urls = app.urls.Bind(r)
		r = r.WithContext(urlgen.WithURLs(r.Context(), urls))
	case hasMatchedRoute(r):
		urls = urls.WithContext(r.Context())
		r = r.WithContext(urlgen.WithURLs(r.Context(), urls))
	}

	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		app:            app,
		urls:           urls,
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get(headerHXRequest) == "true"
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Domain() string {
	return hostrouter.GetDomain(c.request)
}

func (c *requestContext) Subdomain() string {
	if c.app.baseDomain == "" {
		return ""
	}
	return hostrouter.GetSubdomain(c.request, c.app.baseDomain)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	if c.IsHTMX() {
		// HTMX follows the header client-side and needs a 2xx to read it.
		c.response.Header().Set(headerHXRedirect, url)
		c.response.WriteHeader(http.StatusOK)
		return nil
	}
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) IsHTMX() bool {
	return isHTMX(c.request)
}

func (c *requestContext) Render(code int, component templ.Component) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Logger() *slog.Logger {
	return c.app.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.app.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.app.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.app.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.app.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) URLs() *urlgen.URLs {
	return c.urls
}

func hasMatchedRoute(r *http.Request) bool {
	_, ok := logger.MatchedRoute(r.Context())
	return ok
}

func (c *requestContext) RouteName() string {
	name, _ := logger.MatchedRoute(c.request.Context())
	return name
}

func (c *requestContext) Route(name string, params urlgen.Params) (string, error) {
	return c.urls.Route(name, params)
}

func (c *requestContext) RouteURL(name string, params urlgen.Params) (string, error) {
	return c.urls.RouteURL(name, params)
}

func (c *requestContext) URL(path string, extra ...any) string {
	return c.urls.To(path, extra...)
}

func (c *requestContext) SecureURL(path string, extra ...any) string {
	return c.urls.Secure(path, extra...)
}

func (c *requestContext) RedirectRoute(code int, name string, params urlgen.Params) error {
	target, err := c.urls.Route(name, params)
	if err != nil {
		return err
	}
	return c.Redirect(code, target)
}

func (c *requestContext) RedirectBack(code int, fallback string) error {
	return c.Redirect(code, c.urls.Previous(fallback))
}
