package internal

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/forgeroute/pkg/hostrouter"
)

// ErrNoApps is returned by Run when neither a domain nor a fallback is set.
var ErrNoApps = errors.New("forgeroute.Run: no domains or fallback configured")

// Run starts a multi-domain HTTP server and blocks until shutdown.
// Use this for composing multiple Apps under different domain patterns.
// Each App keeps its own route table, so links built inside an App point
// at that App's routes on the host of the current request.
//
// Example:
//
//	api := forgeroute.New(
//	    forgeroute.WithHandlers(handlers.NewAPIHandler()),
//	)
//
//	website := forgeroute.New(
//	    forgeroute.WithHandlers(handlers.NewLandingHandler()),
//	)
//
//	err := forgeroute.Run(
//	    forgeroute.Domain("api.acme.com", api),
//	    forgeroute.Domain("*.acme.com", website),
//	    forgeroute.Address(":8080"),
//	    forgeroute.Logger(slog),
//	)
func Run(opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	handler, err := cfg.handler()
	if err != nil {
		return err
	}

	return runServer(runtimeConfig{
		handler:         handler,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
		listener:        cfg.listener,
	})
}

// handler builds the root handler from the domain mappings.
func (c *runConfig) handler() (http.Handler, error) {
	if len(c.domains) == 0 {
		if c.fallback == nil {
			return nil, ErrNoApps
		}
		return c.fallback.Router(), nil
	}

	routes := make(hostrouter.Routes, len(c.domains))
	for pattern, app := range c.domains {
		routes[pattern] = app.Router()
	}

	var fallback http.Handler = http.NotFoundHandler()
	if c.fallback != nil {
		fallback = c.fallback.Router()
	}
	return hostrouter.New(routes, fallback), nil
}
