// Package forgeroute is a small HTTP framework built around named routes
// and URL generation.
//
// Routes are declared with a name and a template. The same template drives
// request matching and URL generation, so links never drift from the routes
// that serve them.
//
// # Quick Start
//
//	app := forgeroute.New(
//	    forgeroute.WithRootURL("https://example.com"),
//	    forgeroute.WithHandlers(handlers.NewUsers(repo)),
//	)
//
//	if err := forgeroute.Run(forgeroute.Fallback(app)); err != nil {
//	    log.Fatal(err)
//	}
//
// # Named Routes
//
// Handlers implement the [Handler] interface. Router.Name names the next
// route it declares:
//
//	func (h *Users) Routes(r forgeroute.Router) {
//	    r.Name("users.index").GET("/users/{page?:[0-9]+}", h.list)
//	    r.Name("users.show").GET("/users/{id}", h.show)
//	}
//
// Templates use chi syntax with two extensions. A parameter followed by "?"
// is optional: when its value is missing the rest of the path is dropped.
// A parameter followed by "*" is a catch-all and keeps its slashes.
//
// # URL Generation
//
// Every request carries a URL view bound to its root. Values that do not
// fill a path parameter become the query string:
//
//	func (h *Users) show(c forgeroute.Context) error {
//	    edit, err := c.Route("users.edit", forgeroute.P("id", c.Param("id")))
//	    if err != nil {
//	        return err
//	    }
//	    next, _ := c.RouteURL("users.index", forgeroute.P("page", 2, "sort", "name"))
//	    // next == "https://example.com/users/2?sort=name"
//	    ...
//	}
//
// Routes served by other apps can be added with [WithRoutes] so links
// across domains resolve too.
//
// # Middleware
//
// Middleware wraps handlers to add cross-cutting concerns. Global
// middleware also sees the errors handlers return:
//
//	app := forgeroute.New(
//	    forgeroute.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.URLErrors(),
//	    ),
//	)
//
// # Shutdown
//
// The runtime handles SIGINT/SIGTERM for graceful shutdown.
// Register cleanup functions with [ShutdownHook]:
//
//	forgeroute.Run(
//	    forgeroute.Fallback(app),
//	    forgeroute.ShutdownHook(func(ctx context.Context) error {
//	        return pool.Close()
//	    }),
//	)
package forgeroute
