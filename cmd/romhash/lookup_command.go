package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"romhash/internal/catalog"
	"romhash/internal/platform"
	"romhash/internal/services"
	"romhash/internal/services/rahasher"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "lookup <hash>",
		Short: "Find catalog ROMs matching a RetroAchievements hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash := strings.ToLower(strings.TrimSpace(args[0]))
			if !rahasher.IsValidHash(hash) {
				return services.Wrap(services.ErrValidation, "lookup", "parse hash", fmt.Sprintf("%q is not a 32 character hex hash", args[0]), nil)
			}
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			roms, err := store.FindByHash(cmd.Context(), hash)
			if err != nil {
				return err
			}
			return renderROMs(cmd, roms, jsonOutput, fmt.Sprintf("No ROMs match %s", hash))
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit matches as JSON")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list [platform]",
		Short: "List catalog ROMs, optionally for one platform",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var slug string
			if len(args) == 1 {
				slug = platform.Normalize(args[0])
			}
			store, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			defer store.Close()

			roms, err := store.List(cmd.Context(), slug)
			if err != nil {
				return err
			}
			return renderROMs(cmd, roms, jsonOutput, "Catalog is empty")
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit ROMs as JSON")
	return cmd
}

func renderROMs(cmd *cobra.Command, roms []*catalog.ROM, jsonOutput bool, emptyMessage string) error {
	if jsonOutput {
		views := make([]romView, 0, len(roms))
		for _, rom := range roms {
			views = append(views, newROMView(rom))
		}
		return writeJSON(cmd, views)
	}
	out := cmd.OutOrStdout()
	if len(roms) == 0 {
		fmt.Fprintln(out, emptyMessage)
		return nil
	}
	fmt.Fprintln(out, renderROMTable(roms))
	return nil
}
