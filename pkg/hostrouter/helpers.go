package hostrouter

import (
	"net/http"
	"strings"
)

// SplitHostPort splits an authority into a lowercase host and its port.
// Unlike net.SplitHostPort it accepts hosts without a port and keeps the
// brackets of IPv6 literals.
//
//	"Example.com:8080" -> "example.com", "8080"
//	"[::1]:8080"       -> "[::1]", "8080"
//	"[::1]"            -> "[::1]", ""
func SplitHostPort(hostport string) (host, port string) {
	hostport = strings.ToLower(strings.TrimSpace(hostport))

	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end < 0 {
			return hostport, ""
		}
		host = hostport[:end+1]
		port, _ = strings.CutPrefix(hostport[end+1:], ":")
		return host, port
	}

	if i := strings.LastIndexByte(hostport, ':'); i != -1 {
		return hostport[:i], hostport[i+1:]
	}
	return hostport, ""
}

// NormalizeAuthority lowercases hostport and drops the port when it is the
// default one for scheme (80 for http, 443 for https).
//
//	NormalizeAuthority("Example.com:443", "https") -> "example.com"
//	NormalizeAuthority("example.com:8443", "https") -> "example.com:8443"
func NormalizeAuthority(hostport, scheme string) string {
	host, port := SplitHostPort(hostport)
	if port == "" || port == defaultPort(scheme) {
		return host
	}
	return host + ":" + port
}

func defaultPort(scheme string) string {
	switch strings.ToLower(scheme) {
	case "http", "ws":
		return "80"
	case "https", "wss":
		return "443"
	}
	return ""
}

// GetDomain returns the normalized domain from the request Host header.
// Strips port, handles IPv6, and converts to lowercase.
func GetDomain(r *http.Request) string {
	host, _ := SplitHostPort(r.Host)
	return host
}

// GetSubdomain extracts the subdomain from a request given a base domain.
// Returns empty string if host doesn't match the base domain or has no subdomain.
//
//	GetSubdomain(req, "example.com") // req.Host = "bar.foo.example.com" -> "bar.foo"
//	GetSubdomain(req, "example.com") // req.Host = "example.com" -> ""
func GetSubdomain(r *http.Request, baseDomain string) string {
	host := GetDomain(r)
	sub, ok := strings.CutSuffix(host, "."+strings.ToLower(baseDomain))
	if !ok {
		return ""
	}
	return sub
}
