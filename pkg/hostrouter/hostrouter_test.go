package hostrouter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forgeroute/pkg/hostrouter"
)

func body(s string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(s))
	})
}

func TestRouter_ServeHTTP(t *testing.T) {
	t.Parallel()

	router := hostrouter.New(hostrouter.Routes{
		"example.com":          body("example"),
		"*.example.com":        body("wildcard"),
		"specific.example.com": body("specific"),
		"[::1]":                body("ipv6"),
	}, body("fallback"))

	tests := []struct {
		name string
		host string
		want string
	}{
		{"exact match", "example.com", "example"},
		{"case insensitive", "Example.COM", "example"},
		{"with port", "example.com:8080", "example"},
		{"specific takes priority", "specific.example.com", "specific"},
		{"wildcard match", "foo.example.com", "wildcard"},
		{"wildcard case insensitive", "FOO.Example.COM", "wildcard"},
		{"ipv6", "[::1]:8080", "ipv6"},
		{"fallback", "other.com", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRouter_NilFallback(t *testing.T) {
	t.Parallel()

	router := hostrouter.New(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Match(t *testing.T) {
	t.Parallel()

	router := hostrouter.New(hostrouter.Routes{"*.acme.com": body("tenant")}, nil)

	_, ok := router.Match("foo.acme.com:443")
	require.True(t, ok)

	_, ok = router.Match("acme.com")
	require.False(t, ok)
}
