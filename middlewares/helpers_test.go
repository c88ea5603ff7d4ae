package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/forgeroute/internal"
)

// routesFunc adapts a function to the Handler interface.
type routesFunc func(r internal.Router)

func (f routesFunc) Routes(r internal.Router) { f(r) }

// serveVia builds an app with mw applied globally and h served at GET /
// under the name "home", then sends req through it.
func serveVia(req *http.Request, opts []internal.Option, h internal.HandlerFunc, mw ...internal.Middleware) *httptest.ResponseRecorder {
	opts = append(opts,
		internal.WithMiddleware(mw...),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.Name("home").GET("/", h)
			r.Name("users.show").GET("/users/{id}", h)
		})),
	)
	app := internal.New(opts...)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}
