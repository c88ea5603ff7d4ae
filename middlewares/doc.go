// Package middlewares provides HTTP middleware for forgeroute applications.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing. It reuses an
// ID from the X-Request-ID or X-Correlation-ID header, or generates a UUIDv7.
//
//	app := forgeroute.New(
//	    forgeroute.WithLogger("web", middlewares.RequestIDExtractor()),
//	    forgeroute.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Recover
//
// Recover catches panics and converts them to a PanicError for the app's
// error handler.
//
// # URL Errors
//
// URLErrors converts errors from named route lookups into 500 HTTPErrors
// with a machine-readable error code:
//
//	forgeroute.WithErrorHandler(func(c forgeroute.Context, err error) error {
//	    if httpErr := forgeroute.AsHTTPError(err); httpErr != nil {
//	        return c.JSON(httpErr.Code, httpErr)
//	    }
//	    return c.String(http.StatusInternalServerError, "internal error")
//	})
//
// # Canonical Host
//
// CanonicalHost redirects GET and HEAD requests arriving on another host
// to the fixed root configured with WithRootURL.
//
// # Recommended Middleware Order
//
//	forgeroute.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.CanonicalHost(),
//	    middlewares.Recover(),
//	    middlewares.URLErrors(),
//	)
package middlewares
