package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/forgeroute/pkg/logger"
	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

// Option configures the application.
type Option func(*App)

// WithBaseDomain configures the base domain for subdomain extraction.
// This enables c.Subdomain() to work without parameters.
//
// Example:
//
//	forgeroute.New(
//	    forgeroute.WithBaseDomain("example.com"),
//	)
func WithBaseDomain(domain string) Option {
	return func(a *App) {
		a.baseDomain = domain
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithRoutes adds named routes the app links to but does not serve, such
// as pages of another App or routes loaded from a manifest. Their names
// share one namespace with the routes handlers declare.
//
// Example:
//
//	m, _ := manifest.LoadFile("routes.yaml")
//	forgeroute.New(
//	    forgeroute.WithRoutes(m.Table()),
//	)
func WithRoutes(tables ...*urlgen.Table) Option {
	return func(a *App) {
		for _, t := range tables {
			if t != nil {
				a.externalRoutes = append(a.externalRoutes, t)
			}
		}
	}
}

// WithRootURL fixes the root of absolute URLs, e.g. "https://example.com".
// Without it the root is taken from each request.
// It panics if raw is not an absolute URL.
func WithRootURL(raw string) Option {
	opt := urlgen.WithRootURL(raw)
	return func(a *App) {
		a.urlOptions = append(a.urlOptions, opt)
	}
}

// WithAssetURL serves Asset URLs from a separate origin, such as a CDN.
// It panics if raw is not an absolute URL.
func WithAssetURL(raw string) Option {
	opt := urlgen.WithAssetRootURL(raw)
	return func(a *App) {
		a.urlOptions = append(a.urlOptions, opt)
	}
}

// WithURLScheme forces the scheme of absolute URLs, for apps served over
// https behind a TLS-terminating proxy.
func WithURLScheme(scheme string) Option {
	return func(a *App) {
		a.urlOptions = append(a.urlOptions, urlgen.WithScheme(scheme))
	}
}

// WithTrustedProxyHeaders makes request roots honour X-Forwarded-Proto
// and X-Forwarded-Host.
func WithTrustedProxyHeaders() Option {
	return func(a *App) {
		a.urlOptions = append(a.urlOptions, urlgen.WithTrustedProxyHeaders(true))
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Files are served with default cache headers.
// Link to the files with c.URLs().Asset.
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
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Block directory listings
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
//
// Example:
//
//	forgeroute.WithErrorHandler(func(c forgeroute.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
// Extractors pull values from context (e.g., request_id).
//
// Example:
//
//	forgeroute.New(
//	    forgeroute.WithLogger("web", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
// Use this when you need complete control over logging configuration.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
