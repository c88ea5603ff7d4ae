// Package hostrouter provides host-based HTTP routing and host normalization.
//
// It routes incoming requests to different handlers based on the Host header,
// supporting both exact matches and wildcard patterns, and exposes the host
// helpers used to build absolute URLs for a request.
//
// # Host Patterns
//
//   - Exact: "api.example.com" matches only that host
//   - Wildcard: "*.example.com" matches any subdomain (foo.example.com, bar.example.com)
//
// Exact matches take priority over wildcard matches. Host matching is case-insensitive,
// and ports are stripped before matching.
//
//	router := hostrouter.New(hostrouter.Routes{
//	    "api.example.com": apiHandler,
//	    "*.example.com":   tenantHandler,
//	}, defaultHandler)
//
// # Authorities
//
// SplitHostPort and NormalizeAuthority keep IPv6 brackets and drop default
// ports, so "Example.com:443" under https becomes "example.com".
package hostrouter
