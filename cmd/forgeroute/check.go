package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

func checkCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate a route manifest",
		Long: `Validate a route manifest.

Every route is mounted on a chi router the way an app would serve it.
Routes sharing a template are reported since only one of them can match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := g.load()
			if err != nil {
				return err
			}
			table, err := m.Table()
			if err != nil {
				return err
			}

			log := g.logger()
			router := chi.NewRouter()
			owners := make(map[string]string, table.Len())
			problems := 0

			for _, r := range table.Routes() {
				for _, pattern := range r.Definition.ChiPatterns() {
					if pattern == "" {
						pattern = "/"
					}
					if owner, taken := owners[pattern]; taken {
						log.Warn("routes share a pattern", "route", r.Name, "other", owner, "pattern", pattern)
						problems++
						continue
					}
					owners[pattern] = r.Name

					if err := mount(router, pattern); err != nil {
						log.Error("route cannot be served", "route", r.Name, "pattern", pattern, "error", err)
						problems++
					}
				}
			}

			if problems > 0 {
				return fmt.Errorf("%s: %d problem(s) in %d route(s)", g.manifest, problems, table.Len())
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d route(s) OK\n", g.manifest, table.Len())
			return err
		},
	}
}

// mount registers pattern on router, turning chi's registration panics into errors.
func mount(router chi.Router, pattern string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	router.Method(http.MethodGet, pattern, http.NotFoundHandler())
	return nil
}
