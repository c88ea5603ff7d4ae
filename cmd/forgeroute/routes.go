package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func routesCmd(g *globals) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the named routes of a manifest",
		Long: `List every named route with its template and parameters, sorted by name.

With --yaml the routes are written back as a normalized manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := g.load()
			if err != nil {
				return err
			}

			if asYAML {
				return m.Encode(cmd.OutOrStdout())
			}

			table, err := m.Table()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTEMPLATE\tPARAMETERS")
			for _, r := range table.Routes() {
				params := strings.Join(r.Definition.Parameters(), ",")
				if params == "" {
					params = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Definition.Pattern(), params)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the routes as a YAML manifest")

	return cmd
}
