package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"romhash/internal/platform"
)

type platformView struct {
	Slug    string   `json:"slug"`
	Code    int      `json:"code"`
	Aliases []string `json:"aliases,omitempty"`
}

func platformViews() []platformView {
	slugs := platform.Slugs()
	views := make([]platformView, 0, len(slugs))
	for _, slug := range slugs {
		code, _ := platform.Lookup(slug)
		var aliases []string
		for _, alias := range platform.Aliases(code) {
			if alias != slug {
				aliases = append(aliases, alias)
			}
		}
		views = append(views, platformView{Slug: slug, Code: int(code), Aliases: aliases})
	}
	return views
}

func newPlatformsCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "platforms",
		Short:       "List supported platform slugs and their RAHasher codes",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			views := platformViews()
			if jsonOutput {
				return writeJSON(cmd, views)
			}
			rows := make([][]string, 0, len(views))
			for _, view := range views {
				aliases := strings.Join(view.Aliases, ", ")
				if aliases == "" {
					aliases = "-"
				}
				rows = append(rows, []string{view.Slug, strconv.Itoa(view.Code), aliases})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Slug", "Code", "Aliases"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the platform table as JSON")
	return cmd
}
