// Package urlgen generates URLs for named routes.
//
// Routes are registered once in a Table under a unique name, using the same
// template syntax as chi. A Generator renders relative paths from that table,
// and a request-scoped URLs view turns paths into absolute URLs under the
// root (scheme and host) of the request being served.
//
// # Route Templates
//
//	/users/{id}              required parameter
//	/users/{id:[0-9]+}       required parameter with a matching pattern
//	/posts/{page?}           optional trailing parameter
//	/posts/{page?:[0-9]+}    optional parameter with a pattern
//	/files/{path*}, /files/* catch-all parameter
//
// Patterns are used by the router only and never checked while generating.
// An optional parameter may only be followed by other optional parameters
// and literal text. A catch-all must be the last segment.
//
// # Parameters
//
// Params is an ordered bag of named and positional values. A parameter takes
// its named value first and the next unused positional value otherwise.
// Whatever is left becomes the query string, in insertion order:
//
//	table := urlgen.NewTable().
//	    MustAdd("posts.show", "/posts/{id}").
//	    MustAdd("posts.index", "/posts/{page?}")
//	table.Freeze()
//
//	gen := urlgen.New(table)
//	gen.Route("posts.show", urlgen.P("id", 7, "ref", "feed")) // "/posts/7?ref=feed"
//	gen.Route("posts.show", urlgen.Positional(7))             // "/posts/7"
//	gen.Route("posts.index", urlgen.Params{})                 // "/posts"
//
// Values are converted by Stringify. Types implementing RouteKeyer supply
// their own identifier, so domain entities can be passed directly.
// Slices render as repeated bracketed keys: tags[]=a&tags[]=b.
//
// # Absolute URLs
//
// Install Middleware to bind each request to its own URLs value, then read it
// back with FromContext:
//
//	router.Use(urlgen.Middleware(gen))
//
//	func show(w http.ResponseWriter, r *http.Request) {
//	    urls, _ := urlgen.FromContext(r.Context())
//	    urls.To("docs", "intro")                      // "http://example.com/docs/intro"
//	    urls.Secure("login")                          // "https://example.com/login"
//	    urls.RouteURL("posts.show", urlgen.P("id", 7)) // "http://example.com/posts/7"
//	}
//
// The root is derived from the request on first use and cached until the
// request ends. WithRootURL and WithScheme force it for every request;
// WithTrustedProxyHeaders honours X-Forwarded-Proto and X-Forwarded-Host.
//
// # Errors
//
// Unknown route names fail with *RouteNotFoundError and required parameters
// without a value fail with *MissingParameterError. Both match their
// sentinels (ErrRouteNotFound, ErrMissingParameter) through errors.Is.
package urlgen
