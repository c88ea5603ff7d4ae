// Command forgeroute inspects route manifests and renders URLs from them.
//
//	forgeroute routes --manifest routes.yaml
//	forgeroute url users.show id=42 tab=posts --absolute
//	forgeroute check
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/forgeroute/pkg/logger"
	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
	"github.com/dmitrymomot/forgeroute/pkg/urlgen/manifest"
)

// Version information set at build time.
var version = "dev"

const (
	envManifest     = "FORGEROUTE_MANIFEST"
	envRoot         = "FORGEROUTE_ROOT"
	defaultManifest = "routes.yaml"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	manifest  string
	root      string
	logLevel  string
	logFormat string
	stderr    io.Writer
}

func main() {
	if err := newRootCmd(os.Getenv, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd(getenv func(string) string, stderr io.Writer) *cobra.Command {
	g := &globals{stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "forgeroute",
		Short: "Inspect named routes and render their URLs",
		Long: `forgeroute reads a YAML route manifest and works with its named routes.

The manifest maps route names to templates:

  root: https://example.com
  routes:
    home: /
    users.show: /users/{id:[0-9]+}
    posts.index: /posts/{page?}`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	manifestPath := getenv(envManifest)
	if manifestPath == "" {
		manifestPath = defaultManifest
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.manifest, "manifest", "m", manifestPath, "route manifest file (env "+envManifest+")")
	flags.StringVar(&g.root, "root", getenv(envRoot), "root URL for absolute URLs (env "+envRoot+")")
	flags.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&g.logFormat, "log-format", string(logger.FormatText), "log format: text or json")

	rootCmd.AddCommand(
		routesCmd(g),
		urlCmd(g),
		checkCmd(g),
	)

	return rootCmd
}

func (g *globals) logger() *slog.Logger {
	return logger.NewWithConfig(logger.Config{
		Output: g.stderr,
		Format: logger.Format(g.logFormat),
		Level:  logger.ParseLevel(g.logLevel),
	}).With("component", "forgeroute")
}

// load reads the manifest and applies the --root override.
func (g *globals) load() (*manifest.Manifest, error) {
	m, err := manifest.LoadFile(g.manifest)
	if err != nil {
		return nil, err
	}
	if g.root != "" {
		root, err := urlgen.ParseRoot(g.root)
		if err != nil {
			return nil, fmt.Errorf("--root: %w", err)
		}
		m.Root = root
	}
	return m, nil
}

// generator builds a URL generator over the manifest routes.
func (g *globals) generator(m *manifest.Manifest) (*urlgen.Generator, error) {
	table, err := m.Table()
	if err != nil {
		return nil, err
	}
	opts := append(m.Options(), urlgen.WithLogger(g.logger()))
	return urlgen.New(table, opts...), nil
}
