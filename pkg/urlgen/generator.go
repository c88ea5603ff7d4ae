package urlgen

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/forgeroute/pkg/logger"
)

// Generator renders URLs for the routes of a table.
//
// A Generator is shared by the whole process and is safe for concurrent use.
// Absolute URLs need a root, which belongs to a single request: Bind returns
// a request-scoped URLs that resolves and caches it.
type Generator struct {
	table      *Table
	logger     *slog.Logger
	root       Root
	assetRoot  Root
	scheme     string
	trustProxy bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithRoot forces the root of absolute URLs instead of deriving it from
// each request.
func WithRoot(root Root) Option {
	return func(g *Generator) {
		g.root = root
	}
}

// WithRootURL is like WithRoot but parses the root from an absolute URL.
// It panics if raw is not an absolute URL.
//
// Example:
//
//	urlgen.New(table, urlgen.WithRootURL("https://example.com"))
func WithRootURL(raw string) Option {
	root, err := ParseRoot(raw)
	if err != nil {
		panic(err)
	}
	return WithRoot(root)
}

// WithAssetRoot serves Asset URLs from a separate origin, such as a CDN.
func WithAssetRoot(root Root) Option {
	return func(g *Generator) {
		g.assetRoot = root
	}
}

// WithAssetRootURL is like WithAssetRoot but parses an absolute URL.
// It panics if raw is not an absolute URL.
func WithAssetRootURL(raw string) Option {
	root, err := ParseRoot(raw)
	if err != nil {
		panic(err)
	}
	return WithAssetRoot(root)
}

// WithScheme forces the scheme of absolute URLs ("http" or "https").
func WithScheme(scheme string) Option {
	return func(g *Generator) {
		g.scheme = strings.ToLower(scheme)
	}
}

// WithTrustedProxyHeaders makes request roots honour X-Forwarded-Proto
// and X-Forwarded-Host. Enable it only behind a proxy that sets them.
func WithTrustedProxyHeaders(trust bool) Option {
	return func(g *Generator) {
		g.trustProxy = trust
	}
}

// WithLogger sets the logger used to report generation failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger.OrNope(l)
	}
}

// New creates a generator over table. A nil table is treated as empty.
func New(table *Table, opts ...Option) *Generator {
	if table == nil {
		table = NewTable()
	}
	g := &Generator{
		table:  table,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Table returns the route table the generator reads from.
func (g *Generator) Table() *Table {
	return g.table
}

// Route renders the relative URL of a named route: the substituted path
// followed by unused parameters as a query string.
//
//	g.Route("users.show", urlgen.P("id", 42, "tab", "posts"))
//	// "/users/42?tab=posts"
func (g *Generator) Route(name string, params Params) (string, error) {
	return g.route(context.Background(), name, params)
}

// route is Route with failures logged against ctx.
func (g *Generator) route(ctx context.Context, name string, params Params) (string, error) {
	def, err := g.table.Resolve(name)
	if err != nil {
		g.logFailure(ctx, name, err)
		return "", err
	}

	path, remaining, err := generatePath(name, def, params)
	if err != nil {
		g.logFailure(ctx, name, err)
		return "", err
	}

	out, err := AppendQuery(path, remaining)
	if err != nil {
		g.logFailure(ctx, name, err)
		return "", err
	}
	return out, nil
}

// MustRoute is like Route but panics on error.
func (g *Generator) MustRoute(name string, params Params) string {
	out, err := g.Route(name, params)
	if err != nil {
		panic(err)
	}
	return out
}

// Bind returns the URL view of a single request.
// The returned value must not outlive the request.
func (g *Generator) Bind(r *http.Request) *URLs {
	return &URLs{gen: g, req: r}
}

// RequestHost returns the host r was addressed to, honouring
// X-Forwarded-Host when proxy headers are trusted.
func (g *Generator) RequestHost(r *http.Request) string {
	return requestHost(r, g.trustProxy)
}

// ForRoot returns a URL view with a fixed root, for work that happens
// outside a request such as mail rendering or CLI output.
// A forced generator root takes precedence over root.
func (g *Generator) ForRoot(root Root) *URLs {
	return &URLs{gen: g, fixed: root}
}

func (g *Generator) logFailure(ctx context.Context, name string, err error) {
	g.logger.LogAttrs(ctx, slog.LevelDebug, "url generation failed",
		slog.String("route", name),
		slog.String("error", err.Error()),
	)
}
