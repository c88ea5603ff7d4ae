package middlewares

import (
	"github.com/dmitrymomot/forgeroute/internal"
)

// URLErrors returns middleware that turns URL generation failures returned
// by handlers into HTTP 500 errors. The resulting HTTPError carries an
// error code ("route_not_found", "missing_route_parameter" or
// "invalid_route_parameter") and the request ID when RequestID runs first.
// Other errors pass through unchanged.
func URLErrors() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			httpErr := internal.URLError(err)
			if httpErr == nil {
				return err
			}

			httpErr.RequestID = GetRequestID(c)
			c.LogError("url generation failed",
				"route", c.RouteName(),
				"code", httpErr.ErrorCode,
				"error", err,
			)
			return httpErr
		}
	}
}
