package internal

import (
	"errors"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

// ErrUnnamedRoute is returned by CurrentRoute when the matched route has no name.
var ErrUnnamedRoute = errors.New("current route has no name")

func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	v, _ := convertParam[T](c.Param(name))
	return v
}

// QueryDefault retrieves a typed query parameter with a default value.
// Returns defaultValue if the parameter is empty or cannot be parsed.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// RouteParams returns the URL parameters of the matched route as a bag,
// in the order they appear in the path. For a named route only the
// parameters of its template are returned and the chi wildcard is keyed by
// the catch-all name. Empty wildcards left by mounted subrouters are skipped.
func RouteParams(c Context) urlgen.Params {
	var p urlgen.Params
	rctx := chi.RouteContext(c.Request().Context())
	if rctx == nil {
		return p
	}

	wildcard := "*"
	var allowed []string
	if name := c.RouteName(); name != "" {
		if def, err := c.URLs().Generator().Table().Resolve(name); err == nil {
			allowed = def.Parameters()
			for _, seg := range def.Segments() {
				if seg.CatchAll {
					wildcard = seg.Name
				}
			}
		}
	}

	for i, key := range rctx.URLParams.Keys {
		value := rctx.URLParams.Values[i]
		if key == "*" {
			if value == "" {
				continue
			}
			key = wildcard
		}
		if allowed != nil && !slices.Contains(allowed, key) {
			continue
		}
		p = p.With(key, value)
	}
	return p
}

// CurrentRoute renders the URL of the matched named route with its own
// parameters, overridden by overrides. Extra overrides become the query.
//
//	next, err := forgeroute.CurrentRoute(c, urlgen.P("page", page+1))
func CurrentRoute(c Context, overrides urlgen.Params) (string, error) {
	name := c.RouteName()
	if name == "" {
		return "", ErrUnnamedRoute
	}
	return c.Route(name, RouteParams(c).Merge(overrides))
}

// convertParam converts a raw string to the target type T.
// Returns the converted value and true on success, or the zero value and false on failure.
func convertParam[T ~string | ~int | ~int64 | ~float64 | ~bool](raw string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(raw).(T), true
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	}
	return zero, false
}
