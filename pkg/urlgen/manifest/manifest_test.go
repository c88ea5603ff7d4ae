package manifest_test

import (
	"bytes"
	"embed"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
	"github.com/dmitrymomot/forgeroute/pkg/urlgen/manifest"
)

//go:embed testdata
var testdataFS embed.FS

func TestLoadFS(t *testing.T) {
	t.Parallel()

	m, err := manifest.LoadFS(testdataFS, "testdata/routes.yaml")
	require.NoError(t, err)

	require.Equal(t, urlgen.Root{Scheme: "https", Host: "example.com"}, m.Root)
	require.Equal(t, urlgen.Root{Scheme: "https", Host: "cdn.example.com"}, m.AssetRoot)

	names := make([]string, 0, len(m.Routes))
	for _, e := range m.Routes {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"foo", "bar", "baz", "users.show", "files", "archive"}, names)

	table, err := m.Table()
	require.NoError(t, err)
	require.True(t, table.Frozen())

	gen := urlgen.New(table, m.Options()...)

	tests := []struct {
		route  string
		params urlgen.Params
		want   string
	}{
		{"foo", urlgen.P("bar", 1), "/foo?bar=1"},
		{"bar", urlgen.Params{}, "/foo"},
		{"bar", urlgen.P("bar", 1, "baz", 2), "/foo/1?baz=2"},
		{"baz", urlgen.P("bar", 1, "baz", 2), "/foo/1/baz?baz=2"},
		{"users.show", urlgen.Positional(12), "/users/12"},
		{"files", urlgen.P("path", "a/b.txt"), "/files/a/b.txt"},
		{"archive", urlgen.Params{}, "/archive"},
		{"archive", urlgen.P("year", 2025), "/archive/2025"},
	}
	for _, tt := range tests {
		got, err := gen.Route(tt.route, tt.params)
		require.NoError(t, err, tt.route)
		require.Equal(t, tt.want, got, tt.route)
	}

	abs, err := gen.ForRoot(urlgen.Root{}).RouteURL("foo", urlgen.Params{})
	require.NoError(t, err)
	require.Equal(t, "https://example.com/foo", abs)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		m, err := manifest.Load(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, m.Routes)
		require.Empty(t, m.Options())
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "routes.yml")
		require.NoError(t, os.WriteFile(path, []byte("routes:\n  home: /\n"), 0o600))

		m, err := manifest.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, m.Routes, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := manifest.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not yaml":            "routes: [",
		"unknown field":       "route: {}",
		"routes not mapping":  "routes: [a, b]",
		"bad root":            "root: example.com",
		"bad template":        "routes:\n  a: /users/{id",
		"unknown type":        "routes:\n  a:\n    - {type: regex, value: x}",
		"missing type":        "routes:\n  a:\n    - {value: x}",
		"parameter no value":  "routes:\n  a:\n    - {type: parameter}",
		"pair too long":       "routes:\n  a: [[a, b, c]]",
		"duplicate name":      "routes:\n  a: /a\n  a: /b",
		"mapping as template": "routes:\n  a: {b: c}",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := manifest.Load(strings.NewReader(doc))
			require.ErrorIs(t, err, manifest.ErrInvalidManifest)
		})
	}
}

func TestLoad_ConstrainedCatchAll(t *testing.T) {
	t.Parallel()

	docs := map[string]string{
		"template": "routes:\n  files: \"/files/{path*:.+}\"",
		"record":   "routes:\n  files:\n    - /files/\n    - {type: parameter, value: path, catch_all: true, pattern: \".+\"}",
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := manifest.Load(strings.NewReader(doc))
			require.ErrorIs(t, err, manifest.ErrInvalidManifest)
			require.ErrorIs(t, err, urlgen.ErrInvalidPattern)

			var pe *urlgen.PatternError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, "catch-all parameter cannot have a constraint", pe.Reason)
		})
	}
}

func TestManifest_RegisterIntoFrozenTable(t *testing.T) {
	t.Parallel()

	m, err := manifest.Load(strings.NewReader("routes:\n  a: /a\n"))
	require.NoError(t, err)

	table := urlgen.NewTable()
	table.Freeze()

	err = m.Register(table)
	require.ErrorIs(t, err, manifest.ErrInvalidManifest)
	require.ErrorIs(t, err, urlgen.ErrTableFrozen)
}

func TestManifest_EncodeRoundTrip(t *testing.T) {
	t.Parallel()

	table := urlgen.NewTable().
		MustAdd("home", "/").
		MustAdd("posts.index", "/posts/{page?:[0-9]+}")

	m := manifest.FromTable(table)
	m.Root = urlgen.Root{Scheme: "https", Host: "example.com"}

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))

	decoded, err := manifest.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, m.Root, decoded.Root)
	require.Len(t, decoded.Routes, 2)
	require.Equal(t, "/posts/{page?:[0-9]+}", decoded.Routes[1].Definition.Pattern())
}
