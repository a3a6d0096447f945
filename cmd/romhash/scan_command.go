package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"romhash/internal/platform"
	"romhash/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan <platform> <dir>",
		Short: "Hash every ROM in a platform directory and record the results",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := platform.Normalize(args[0])
			root, err := filepath.Abs(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("resolve scan root: %w", err)
			}
			return runScan(cmd, ctx, jsonOutput, func(scanner *scan.Scanner) (scan.Stats, error) {
				return scanner.Scan(cmd.Context(), slug, root)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit scan totals as JSON")
	return cmd
}

func newScanLibraryCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan-library <root>",
		Short: "Scan a library whose subdirectories are named after platform slugs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve library root: %w", err)
			}
			return runScan(cmd, ctx, jsonOutput, func(scanner *scan.Scanner) (scan.Stats, error) {
				return scanner.ScanLibrary(cmd.Context(), root)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit scan totals as JSON")
	return cmd
}

func runScan(cmd *cobra.Command, ctx *commandContext, jsonOutput bool, run func(*scan.Scanner) (scan.Stats, error)) error {
	if err := ctx.requireReady(); err != nil {
		return err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := ctx.openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	hasher, err := ctx.newHasher()
	if err != nil {
		return err
	}
	scanner, err := scan.New(cfg, store, hasher, ctx.loggerValue())
	if err != nil {
		return err
	}

	stats, err := run(scanner)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd, stats)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderScanStats(stats))
	return nil
}
