package urlgen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// URLs builds absolute URLs for one unit of work, usually a request.
//
// The root is resolved on first use and cached for the lifetime of the
// value. Each request gets its own URLs, so roots never leak between
// requests. A URLs is safe for concurrent use by the goroutines of the
// request it belongs to.
type URLs struct {
	gen   *Generator
	req   *http.Request
	ctx   context.Context
	fixed Root

	once sync.Once
	root Root
}

// context is what failures are logged against.
func (u *URLs) context() context.Context {
	switch {
	case u.ctx != nil:
		return u.ctx
	case u.req != nil:
		return u.req.Context()
	default:
		return context.Background()
	}
}

// WithContext returns a view sharing u's request and resolved root whose
// route failures are logged against ctx. Routers use it once the matched
// route is known, after the view was bound by an outer middleware.
func (u *URLs) WithContext(ctx context.Context) *URLs {
	root := u.Root()
	v := &URLs{gen: u.gen, req: u.req, ctx: ctx, fixed: u.fixed}
	v.once.Do(func() { v.root = root })
	return v
}

// Generator returns the generator the view was bound from.
func (u *URLs) Generator() *Generator {
	return u.gen
}

// Root returns the cached root of absolute URLs.
func (u *URLs) Root() Root {
	u.once.Do(func() {
		u.root = u.resolveRoot()
	})
	return u.root
}

func (u *URLs) resolveRoot() Root {
	var root Root
	switch {
	case !u.gen.root.IsZero():
		root = u.gen.root
	case u.req != nil:
		root = RootFromRequest(u.req, u.gen.trustProxy)
	default:
		root = u.fixed
	}
	if u.gen.scheme != "" && root.Scheme != u.gen.scheme {
		root = root.WithScheme(u.gen.scheme)
	}
	return root
}

// To turns a path into an absolute URL under the current root.
//
// Values that are already URLs (see IsValidURL) are returned unchanged and
// extra is ignored. Each extra value is appended as one path segment with
// every character outside A-Z a-z 0-9 - _ . ~ percent-encoded. Extra values
// are converted with Stringify; values it rejects fall back to fmt.Sprint.
//
//	u.To("foo", "bar", "?") // "http://example.com/foo/bar/%3F"
func (u *URLs) To(path string, extra ...any) string {
	return u.to(path, u.Root(), extra)
}

// ToSecure is like To with an explicit scheme: https when secure is true,
// http otherwise.
func (u *URLs) ToSecure(path string, secure bool, extra ...any) string {
	scheme := schemeHTTP
	if secure {
		scheme = schemeHTTPS
	}
	return u.to(path, u.Root().WithScheme(scheme), extra)
}

// Secure is To over https.
func (u *URLs) Secure(path string, extra ...any) string {
	return u.ToSecure(path, true, extra...)
}

func (u *URLs) to(path string, root Root, extra []any) string {
	if IsValidURL(path) {
		return path
	}

	tail := make([]string, 0, len(extra))
	for _, v := range extra {
		s, err := Stringify(v)
		if err != nil {
			s = fmt.Sprint(v)
		}
		tail = append(tail, rawURLEncode(s))
	}

	path, query := splitQuery(path)
	if len(tail) > 0 {
		path += "/" + strings.Join(tail, "/")
	}
	return join(root, path) + query
}

// Route renders the relative URL of a named route.
func (u *URLs) Route(name string, params Params) (string, error) {
	return u.gen.route(u.context(), name, params)
}

// RouteURL renders the absolute URL of a named route under the current root.
func (u *URLs) RouteURL(name string, params Params) (string, error) {
	path, err := u.gen.route(u.context(), name, params)
	if err != nil {
		return "", err
	}
	return u.Root().String() + path, nil
}

// SecureRouteURL is RouteURL over https.
func (u *URLs) SecureRouteURL(name string, params Params) (string, error) {
	path, err := u.gen.route(u.context(), name, params)
	if err != nil {
		return "", err
	}
	return u.Root().WithScheme(schemeHTTPS).String() + path, nil
}

// Asset returns the URL of a static file. The asset root is used when one
// is configured, the current root otherwise.
func (u *URLs) Asset(path string) string {
	return u.asset(path, "")
}

// SecureAsset is Asset over https.
func (u *URLs) SecureAsset(path string) string {
	return u.asset(path, schemeHTTPS)
}

func (u *URLs) asset(path, scheme string) string {
	if IsValidURL(path) {
		return path
	}
	root := u.gen.assetRoot
	if root.IsZero() {
		root = u.Root()
	}
	if scheme != "" {
		root = root.WithScheme(scheme)
	}
	return join(root, path)
}

// Current returns the absolute URL of the request without its query string.
func (u *URLs) Current() string {
	if u.req == nil || u.req.URL == nil {
		return u.To("/")
	}
	return join(u.Root(), u.req.URL.EscapedPath())
}

// Full returns the absolute URL of the request including its query string.
func (u *URLs) Full() string {
	current := u.Current()
	if u.req == nil || u.req.URL == nil || u.req.URL.RawQuery == "" {
		return current
	}
	return current + "?" + u.req.URL.RawQuery
}

// Previous returns the Referer of the request when it points at the same
// host, and fallback resolved with To otherwise. An empty fallback is the
// root URL.
func (u *URLs) Previous(fallback string) string {
	if u.req != nil {
		if ref := u.req.Referer(); ref != "" {
			if prev, err := ParseRoot(ref); err == nil && prev.Host == u.Root().Host {
				return ref
			}
		}
	}
	if fallback == "" {
		fallback = "/"
	}
	return u.To(fallback)
}

// IsValidURL reports whether s is already a URL target that must not be
// rebased: it starts with "#" or "//", or with a scheme such as "https:",
// "mailto:" or "tel:".
func IsValidURL(s string) bool {
	if strings.HasPrefix(s, "#") || strings.HasPrefix(s, "//") {
		return true
	}
	scheme, _, ok := strings.Cut(s, ":")
	if !ok || scheme == "" {
		return false
	}
	for i, c := range scheme {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// join places path under root, collapsing duplicate and trailing slashes.
func join(root Root, path string) string {
	path = strings.Trim(path, "/")
	base := root.String()
	if path == "" {
		if base == "" {
			return "/"
		}
		return base
	}
	return base + "/" + path
}

// splitQuery separates a path from its query string and fragment.
func splitQuery(path string) (string, string) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i], path[i:]
	}
	return path, ""
}

// rawURLEncode percent-encodes every byte outside the RFC 3986 unreserved
// set. url.PathEscape keeps sub-delimiters such as "=" and ":" which must
// be encoded inside an extra segment.
func rawURLEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := range len(s) {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

