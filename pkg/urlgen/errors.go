package urlgen

import (
	"errors"
	"fmt"
)

// Sentinel errors for route table and URL generation operations.
var (
	// ErrRouteNotFound is returned when no route is registered under the requested name.
	ErrRouteNotFound = errors.New("urlgen: route not defined")

	// ErrMissingParameter is returned when a required route parameter has no value.
	ErrMissingParameter = errors.New("urlgen: missing route parameter")

	// ErrDuplicateRoute is returned when a route name is registered twice.
	ErrDuplicateRoute = errors.New("urlgen: duplicate route name")

	// ErrTableFrozen is returned when a frozen route table is modified.
	ErrTableFrozen = errors.New("urlgen: route table is frozen")

	// ErrInvalidPattern is returned when a route template cannot be parsed.
	ErrInvalidPattern = errors.New("urlgen: invalid route pattern")

	// ErrUnsupportedValue is returned when a parameter value has no string form.
	ErrUnsupportedValue = errors.New("urlgen: unsupported parameter value")
)

// RouteNotFoundError carries the name of the unregistered route.
type RouteNotFoundError struct {
	Name string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("Route [%s] not defined.", e.Name)
}

func (e *RouteNotFoundError) Is(target error) bool {
	return target == ErrRouteNotFound
}

// MissingParameterError names the required parameter that could not be filled.
type MissingParameterError struct {
	Route string
	Name  string
}

func (e *MissingParameterError) Error() string {
	if e.Route == "" {
		return fmt.Sprintf("Missing required parameter [%s].", e.Name)
	}
	return fmt.Sprintf("Missing required parameter [%s] for route [%s].", e.Name, e.Route)
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// PatternError describes why a route template was rejected.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("urlgen: invalid route pattern %q: %s", e.Pattern, e.Reason)
}

func (e *PatternError) Unwrap() error {
	return ErrInvalidPattern
}

// IsRouteNotFound reports whether err is, or wraps, a route lookup failure.
func IsRouteNotFound(err error) bool {
	return errors.Is(err, ErrRouteNotFound)
}

// IsMissingParameter reports whether err is, or wraps, a missing parameter failure.
func IsMissingParameter(err error) bool {
	return errors.Is(err, ErrMissingParameter)
}
