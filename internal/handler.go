package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PostHandler struct {
//	    repo *repository.Queries
//	}
//
//	func (h *PostHandler) Routes(r forgeroute.Router) {
//	    r.Name("posts.index").GET("/posts/{page?:[0-9]+}", h.index)
//	    r.Name("posts.show").GET("/posts/{slug}", h.show)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error triggers the app's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
//
// Example:
//
//	func Auth(next forgeroute.HandlerFunc) forgeroute.HandlerFunc {
//	    return func(c forgeroute.Context) error {
//	        if !isAuthenticated(c) {
//	            return c.RedirectRoute(http.StatusFound, "login", urlgen.Params{})
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
