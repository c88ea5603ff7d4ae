package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

var errNoRoot = errors.New("absolute URLs need a root: set --root, " + envRoot + " or the manifest root")

func urlCmd(g *globals) *cobra.Command {
	var absolute, secure bool

	cmd := &cobra.Command{
		Use:   "url NAME [key=value | value]...",
		Short: "Render the URL of a named route",
		Long: `Render the URL of a named route.

Arguments of the form key=value fill the parameter with that name.
Bare values fill the remaining parameters in order. Values that match
no parameter are appended as the query string.`,
		Example: `  forgeroute url users.show 42
  forgeroute url posts.index page=2 sort=title
  forgeroute url users.show id=42 --absolute --root https://example.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := g.load()
			if err != nil {
				return err
			}
			gen, err := g.generator(m)
			if err != nil {
				return err
			}

			name, params := args[0], parseParams(args[1:])

			var out string
			switch {
			case absolute || secure:
				urls := gen.ForRoot(m.Root)
				if urls.Root().IsZero() {
					return errNoRoot
				}
				if secure {
					out, err = urls.SecureRouteURL(name, params)
				} else {
					out, err = urls.RouteURL(name, params)
				}
			default:
				out, err = gen.Route(name, params)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVarP(&absolute, "absolute", "a", false, "render an absolute URL")
	cmd.Flags().BoolVarP(&secure, "secure", "s", false, "render an absolute https URL")

	return cmd
}

// parseParams turns command arguments into a parameter bag.
// "key=value" is a named entry, anything else is positional.
func parseParams(args []string) urlgen.Params {
	var p urlgen.Params
	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, "="); ok && key != "" {
			p = p.With(key, value)
			continue
		}
		p = p.Append(arg)
	}
	return p
}
