package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forgeroute/internal"
	"github.com/dmitrymomot/forgeroute/middlewares"
)

func TestCanonicalHost(t *testing.T) {
	t.Parallel()

	ok := func(c internal.Context) error { return c.String(http.StatusOK, "ok") }
	fixed := []internal.Option{internal.WithRootURL("https://example.com")}
	proxied := []internal.Option{internal.WithTrustedProxyHeaders()}
	forwarded := map[string]string{"X-Forwarded-Host": "example.com", "X-Forwarded-Proto": "https"}

	tests := []struct {
		name     string
		method   string
		target   string
		opts     []internal.Option
		headers  map[string]string
		code     int
		location string
	}{
		{"other host redirects", http.MethodGet, "http://www.example.com/users/1?tab=a", fixed, nil, http.StatusMovedPermanently, "https://example.com/users/1?tab=a"},
		{"canonical host passes", http.MethodGet, "http://example.com/users/1", fixed, nil, http.StatusOK, ""},
		{"default port is canonical", http.MethodGet, "http://example.com:443/", fixed, nil, http.StatusOK, ""},
		{"post is not redirected", http.MethodPost, "http://www.example.com/", fixed, nil, http.StatusMethodNotAllowed, ""},
		{"no fixed root", http.MethodGet, "http://www.example.com/", nil, nil, http.StatusOK, ""},
		{"forwarded host behind trusted proxy", http.MethodGet, "http://internal:8080/users/1", proxied, forwarded, http.StatusOK, ""},
		{
			"forwarded host checked against fixed root",
			http.MethodGet, "http://internal:8080/users/1",
			append([]internal.Option{internal.WithTrustedProxyHeaders()}, fixed...),
			map[string]string{"X-Forwarded-Host": "www.example.com"},
			http.StatusMovedPermanently, "https://example.com/users/1",
		},
		{
			"forwarded canonical host passes with fixed root",
			http.MethodGet, "http://internal:8080/",
			append([]internal.Option{internal.WithTrustedProxyHeaders()}, fixed...),
			forwarded,
			http.StatusOK, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.target, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := serveVia(req, tt.opts, ok, middlewares.CanonicalHost())

			require.Equal(t, tt.code, w.Code)
			require.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}
