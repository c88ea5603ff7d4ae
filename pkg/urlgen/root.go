package urlgen

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/forgeroute/pkg/hostrouter"
)

const (
	schemeHTTP  = "http"
	schemeHTTPS = "https"
)

// Root is the scheme and authority prefix of absolute URLs.
// Host carries the port only when it is not the scheme default.
type Root struct {
	Scheme string
	Host   string
}

// String renders the root as "scheme://host" with no trailing slash.
func (r Root) String() string {
	if r.Host == "" {
		return ""
	}
	return r.Scheme + "://" + r.Host
}

// IsZero reports whether the root has no host.
func (r Root) IsZero() bool {
	return r.Host == ""
}

// WithScheme returns a copy of r using scheme. Default ports are
// normalized against the new scheme.
func (r Root) WithScheme(scheme string) Root {
	scheme = strings.ToLower(scheme)
	return Root{Scheme: scheme, Host: hostrouter.NormalizeAuthority(r.Host, scheme)}
}

// ParseRoot parses an absolute URL such as "https://example.com:8443".
// Any path, query or fragment is ignored.
func ParseRoot(raw string) (Root, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Root{}, fmt.Errorf("urlgen: parse root url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Root{}, fmt.Errorf("urlgen: root url %q must be absolute", raw)
	}
	scheme := strings.ToLower(u.Scheme)
	return Root{Scheme: scheme, Host: hostrouter.NormalizeAuthority(u.Host, scheme)}, nil
}

// RootFromRequest derives the root of r. The scheme is https when the
// connection is TLS. With trustProxy set, X-Forwarded-Proto and
// X-Forwarded-Host override the connection values.
func RootFromRequest(r *http.Request, trustProxy bool) Root {
	scheme := schemeHTTP
	if r.TLS != nil {
		scheme = schemeHTTPS
	}
	if trustProxy {
		if proto := firstHeaderValue(r.Header.Get("X-Forwarded-Proto")); proto != "" {
			scheme = strings.ToLower(proto)
		}
	}

	return Root{Scheme: scheme, Host: hostrouter.NormalizeAuthority(requestHost(r, trustProxy), scheme)}
}

// requestHost returns the authority the client addressed, before
// default port normalisation.
func requestHost(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := firstHeaderValue(r.Header.Get("X-Forwarded-Host")); fwd != "" {
			return fwd
		}
	}
	if r.Host == "" && r.URL != nil {
		return r.URL.Host
	}
	return r.Host
}

// firstHeaderValue returns the first element of a comma-separated header.
func firstHeaderValue(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}
