// Package internal provides the core types and implementation for forgeroute.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/forgeroute" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Orchestrates HTTP routing, the named route table, and graceful shutdown
//   - Context: Request/response access plus URL helpers bound to the request
//   - Router: Interface handlers use to declare and name routes
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for individual route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns
//   - ErrorHandler: Custom error handling function for handler errors
//
// # Named Routes
//
// Routes registered through a named router are recorded in the app's route
// table with their full template, group prefixes included:
//
//	func (h *UserHandler) Routes(r internal.Router) {
//	    r.Route("/users", func(r internal.Router) {
//	        r.Name("users.index").GET("/", h.index)
//	        r.Name("users.show").GET("/{id}/{tab?}", h.show)
//	    })
//	}
//
// Optional parameters register one chi pattern per prefix, so "/{id}/{tab?}"
// serves both "/users/42" and "/users/42/posts". The table is frozen when
// New returns.
//
// # Building URLs
//
// Each request is bound to its own URL view. The root of absolute URLs is
// resolved once per request from WithRootURL, or from the request itself:
//
//	func (h *UserHandler) show(c internal.Context) error {
//	    edit, err := c.RouteURL("users.edit", urlgen.P("id", c.Param("id")))
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, map[string]string{"edit": edit})
//	}
//
// RedirectRoute and RedirectBack cover the common redirect flows. A failed
// lookup returns an error wrapping urlgen.ErrRouteNotFound or
// urlgen.ErrMissingParameter; URLError turns it into an HTTPError.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any
// function that expects a standard library context.
package internal
