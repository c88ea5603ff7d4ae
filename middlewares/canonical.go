package middlewares

import (
	"net/http"

	"github.com/dmitrymomot/forgeroute/internal"
	"github.com/dmitrymomot/forgeroute/pkg/hostrouter"
)

// CanonicalHost returns middleware that redirects requests whose host
// differs from the root of generated URLs. It only has an effect together
// with a fixed root (WithRootURL); otherwise the root is the request host,
// taken from X-Forwarded-Host when proxy headers are trusted.
//
// Only GET and HEAD are redirected, with 301 Moved Permanently. The path
// and query are kept.
func CanonicalHost() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet && req.Method != http.MethodHead {
				return next(c)
			}

			urls := c.URLs()
			root := urls.Root()
			host := urls.Generator().RequestHost(req)
			if root.IsZero() || hostrouter.NormalizeAuthority(host, root.Scheme) == root.Host {
				return next(c)
			}

			return c.Redirect(http.StatusMovedPermanently, urls.Full())
		}
	}
}
