package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"romhash/internal/catalog"
	"romhash/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show dependency and catalog health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("System", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range preflight.RunAll(cfg) {
				fmt.Fprintln(out, renderPreflightLine(result, colorize))
			}
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Catalog", colorize) {
				fmt.Fprintln(out, line)
			}
			store, err := ctx.openCatalog()
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Catalog", statusError, err.Error(), colorize))
				return nil
			}
			defer store.Close()

			counts, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(counts))
			for _, status := range catalog.AllHashStatuses() {
				rows = append(rows, []string{string(status), strconv.Itoa(counts[status])})
			}
			fmt.Fprintln(out, renderTable([]string{"Status", "ROMs"}, rows, []columnAlignment{alignLeft, alignRight}))
			if counts[catalog.HashStatusFailed] > 0 {
				fmt.Fprintln(out, renderStatusLine("Failures", statusWarn, "run 'romhash list' to inspect failed ROMs", colorize))
			}
			return nil
		},
	}
}
