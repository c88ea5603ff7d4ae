package urlgen_test

import (
	"bytes"
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forgeroute/pkg/logger"
	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

func newRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func TestURLs_To(t *testing.T) {
	t.Parallel()

	urls := urlgen.New(nil).Bind(newRequest("http://example.com/foo?bar=baz#boom"))

	require.Equal(t, "http://example.com/foo", urls.To("foo"))
	require.Equal(t, "http://example.com/foo", urls.To("/foo/"))
	require.Equal(t, "http://example.com", urls.To("/"))
	require.Equal(t, "http://example.com/foo?x=1", urls.To("foo?x=1"))
}

func TestURLs_ToPassthrough(t *testing.T) {
	t.Parallel()

	urls := urlgen.New(nil).Bind(newRequest("http://example.com/"))

	for _, target := range []string{
		"http://example.com",
		"https://example.com",
		"//example.com",
		"mailto:hello@example.com",
		"tel:1234567890",
		"sms:1234567890",
		"#foo",
		"ftp://example.com",
	} {
		require.Equal(t, target, urls.To(target))
		require.Equal(t, target, urls.To(target, "ignored"))
	}

	first := urls.To("foo")
	require.Equal(t, first, urls.To(first))
}

func TestURLs_ToWithExtra(t *testing.T) {
	t.Parallel()

	urls := urlgen.New(nil).Bind(newRequest("http://example.com/"))

	require.Equal(t, "http://example.com/foo/bar/baz", urls.To("foo", "bar", "baz"))
	require.Equal(t, "http://example.com/foo/%3F/%3D", urls.To("foo", "?", "="))
	require.Equal(t, "http://example.com/foo/user-1", urls.To("foo", userStub{id: 1}))
	require.NotPanics(t, func() { urls.To("foo", (*userStub)(nil)) })
	require.Equal(t, "http://example.com/foo/a%2Fb%20c~", urls.To("foo", "a/b c~"))
	require.Equal(t, "http://example.com/foo/7/1.5", urls.To("foo", 7, 1.5))
}

func TestURLs_Secure(t *testing.T) {
	t.Parallel()

	urls := urlgen.New(nil).Bind(newRequest("http://example.com/"))

	require.Equal(t, "https://example.com/foo", urls.ToSecure("foo", true))
	require.Equal(t, "http://example.com/foo", urls.ToSecure("foo", false))
	require.Equal(t, "https://example.com/foo", urls.Secure("foo"))
	require.Equal(t, "https://example.com/foo/bar", urls.Secure("foo", "bar"))
	require.Equal(t, "http://example.com", urls.Root().String())
}

func TestURLs_SecureDowngrade(t *testing.T) {
	t.Parallel()

	req := newRequest("https://example.com/")
	req.TLS = &tls.ConnectionState{}
	urls := urlgen.New(nil).Bind(req)

	require.Equal(t, "https://example.com/foo", urls.To("foo"))
	require.Equal(t, "http://example.com/foo", urls.ToSecure("foo", false))
}

func TestURLs_RootIsCachedPerRequest(t *testing.T) {
	t.Parallel()

	gen := urlgen.New(nil)

	req := newRequest("http://example.com/")
	urls := gen.Bind(req)
	require.Equal(t, "http://example.com/foo", urls.To("foo"))

	req.Host = "other.com"
	require.Equal(t, "http://example.com", urls.Root().String())
	require.Equal(t, "http://example.com/foo", urls.To("foo"))

	fresh := gen.Bind(newRequest("http://other.com/"))
	require.Equal(t, "http://other.com/foo", fresh.To("foo"))
}

func TestURLs_RootOptions(t *testing.T) {
	t.Parallel()

	t.Run("forced root", func(t *testing.T) {
		t.Parallel()

		urls := urlgen.New(nil, urlgen.WithRootURL("https://app.example.com:443/ignored")).
			Bind(newRequest("http://internal:8080/"))
		require.Equal(t, "https://app.example.com/foo", urls.To("foo"))
	})

	t.Run("forced scheme", func(t *testing.T) {
		t.Parallel()

		urls := urlgen.New(nil, urlgen.WithScheme("HTTPS")).Bind(newRequest("http://example.com/"))
		require.Equal(t, "https://example.com/foo", urls.To("foo"))
	})

	t.Run("non default port kept", func(t *testing.T) {
		t.Parallel()

		urls := urlgen.New(nil).Bind(newRequest("http://example.com:8080/"))
		require.Equal(t, "http://example.com:8080/foo", urls.To("foo"))
	})

	t.Run("proxy headers ignored by default", func(t *testing.T) {
		t.Parallel()

		req := newRequest("http://internal/")
		req.Header.Set("X-Forwarded-Proto", "https")
		req.Header.Set("X-Forwarded-Host", "example.com")

		require.Equal(t, "http://internal/foo", urlgen.New(nil).Bind(req).To("foo"))
	})

	t.Run("trusted proxy headers", func(t *testing.T) {
		t.Parallel()

		req := newRequest("http://internal/")
		req.Header.Set("X-Forwarded-Proto", "https, http")
		req.Header.Set("X-Forwarded-Host", "example.com:443")

		urls := urlgen.New(nil, urlgen.WithTrustedProxyHeaders(true)).Bind(req)
		require.Equal(t, "https://example.com/foo", urls.To("foo"))
	})

	t.Run("request host follows proxy trust", func(t *testing.T) {
		t.Parallel()

		req := newRequest("http://internal:8080/")
		req.Header.Set("X-Forwarded-Host", "example.com")

		require.Equal(t, "internal:8080", urlgen.New(nil).RequestHost(req))
		require.Equal(t, "example.com", urlgen.New(nil, urlgen.WithTrustedProxyHeaders(true)).RequestHost(req))
	})

	t.Run("invalid root url panics", func(t *testing.T) {
		t.Parallel()

		require.Panics(t, func() { urlgen.WithRootURL("example.com") })
	})

	t.Run("fixed root without request", func(t *testing.T) {
		t.Parallel()

		root, err := urlgen.ParseRoot("http://example.com")
		require.NoError(t, err)

		urls := urlgen.New(nil).ForRoot(root)
		require.Equal(t, "http://example.com/foo", urls.To("foo"))
		require.Equal(t, "http://example.com", urls.Current())
	})
}

func TestURLs_RouteURL(t *testing.T) {
	t.Parallel()

	urls := urlgen.New(routeTable(t)).Bind(newRequest("http://example.com/"))

	path, err := urls.Route("bar", urlgen.P("bar", 1, "baz", 2))
	require.NoError(t, err)
	require.Equal(t, "/foo/1?baz=2", path)

	abs, err := urls.RouteURL("baz", urlgen.P("bar", 1))
	require.NoError(t, err)
	require.Equal(t, "http://example.com/foo/1/baz", abs)

	abs, err = urls.SecureRouteURL("foo", urlgen.Params{})
	require.NoError(t, err)
	require.Equal(t, "https://example.com/foo", abs)

	_, err = urls.RouteURL("missing", urlgen.Params{})
	require.ErrorIs(t, err, urlgen.ErrRouteNotFound)
}

func TestURLs_FailureLogsCarryMatchedRoute(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithConfig(logger.Config{Output: &buf, Level: slog.LevelDebug})
	gen := urlgen.New(routeTable(t), urlgen.WithLogger(log))

	req := newRequest("http://example.com/")
	urls := gen.Bind(req)
	require.Equal(t, "http://example.com", urls.Root().String())

	req.Host = "other.com"
	named := urls.WithContext(logger.WithMatchedRoute(context.Background(), "users.index"))
	require.Equal(t, "http://example.com", named.Root().String())

	_, err := named.RouteURL("missing", urlgen.Params{})
	require.ErrorIs(t, err, urlgen.ErrRouteNotFound)
	require.Contains(t, buf.String(), `"route":"missing"`)
	require.Contains(t, buf.String(), `"matched_route":"users.index"`)

	buf.Reset()
	_, err = gen.Route("missing", urlgen.Params{})
	require.Error(t, err)
	require.NotContains(t, buf.String(), "matched_route")
}

func TestURLs_Assets(t *testing.T) {
	t.Parallel()

	req := newRequest("http://example.com/")

	urls := urlgen.New(nil).Bind(req)
	require.Equal(t, "http://example.com/css/app.css", urls.Asset("/css/app.css"))
	require.Equal(t, "https://example.com/css/app.css", urls.SecureAsset("css/app.css"))
	require.Equal(t, "https://cdn.test/x.js", urls.Asset("https://cdn.test/x.js"))

	cdn := urlgen.New(nil, urlgen.WithAssetRootURL("https://cdn.example.com")).Bind(req)
	require.Equal(t, "https://cdn.example.com/css/app.css", cdn.Asset("css/app.css"))
	require.Equal(t, "http://example.com/page", cdn.To("page"))
}

func TestURLs_CurrentAndFull(t *testing.T) {
	t.Parallel()

	urls := urlgen.New(nil).Bind(newRequest("http://example.com/foo/a%20b?bar=baz"))

	require.Equal(t, "http://example.com/foo/a%20b", urls.Current())
	require.Equal(t, "http://example.com/foo/a%20b?bar=baz", urls.Full())
}

func TestURLs_Previous(t *testing.T) {
	t.Parallel()

	t.Run("same host referer", func(t *testing.T) {
		t.Parallel()

		req := newRequest("http://example.com/b")
		req.Header.Set("Referer", "http://example.com/a?x=1")
		require.Equal(t, "http://example.com/a?x=1", urlgen.New(nil).Bind(req).Previous("/home"))
	})

	t.Run("foreign referer uses fallback", func(t *testing.T) {
		t.Parallel()

		req := newRequest("http://example.com/b")
		req.Header.Set("Referer", "http://evil.test/")
		require.Equal(t, "http://example.com/home", urlgen.New(nil).Bind(req).Previous("/home"))
	})

	t.Run("no referer and no fallback", func(t *testing.T) {
		t.Parallel()

		req := newRequest("http://example.com/b")
		require.Equal(t, "http://example.com", urlgen.New(nil).Bind(req).Previous(""))
	})
}

func TestIsValidURL(t *testing.T) {
	t.Parallel()

	valid := []string{"http://x", "HTTPS://x", "//x", "#a", "mailto:a@b", "tel:1", "svn+ssh://x", "git-2.x:y"}
	for _, s := range valid {
		require.True(t, urlgen.IsValidURL(s), s)
	}

	invalid := []string{"", "foo", "/foo", "foo/bar:baz", ":x", "1http://x", "a b:c"}
	for _, s := range invalid {
		require.False(t, urlgen.IsValidURL(s), s)
	}
}

func TestParseRoot(t *testing.T) {
	t.Parallel()

	root, err := urlgen.ParseRoot("HTTP://Example.com:80/path")
	require.NoError(t, err)
	require.Equal(t, urlgen.Root{Scheme: "http", Host: "example.com"}, root)
	require.Equal(t, "https://example.com", root.WithScheme("https").String())

	_, err = urlgen.ParseRoot("/relative")
	require.Error(t, err)

	require.Empty(t, urlgen.Root{}.String())
	require.True(t, urlgen.Root{}.IsZero())
}
