package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"romhash/internal/platform"
	"romhash/internal/services"
	"romhash/internal/services/rahasher"
)

type hashResult struct {
	Platform string `json:"platform"`
	Path     string `json:"path"`
	Hash     string `json:"hash,omitempty"`
	Error    string `json:"error,omitempty"`
	Kind     string `json:"kind,omitempty"`
	ROMID    int64  `json:"rom_id,omitempty"`
}

func newHashCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var record bool

	cmd := &cobra.Command{
		Use:   "hash <platform> <file>",
		Short: "Compute the RetroAchievements hash of a ROM file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := platform.Normalize(args[0])
			path, err := filepath.Abs(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("resolve rom path: %w", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				return services.Wrap(services.ErrNotFound, "hash", "stat rom", path, err)
			}
			if info.IsDir() {
				return services.Wrap(services.ErrValidation, "hash", "stat rom", path+" is a directory", nil)
			}

			hasher, err := ctx.newHasher()
			if err != nil {
				return err
			}
			hash, hashErr := hasher.CalculateHash(cmd.Context(), slug, path)

			result := hashResult{Platform: slug, Path: path, Hash: hash}
			if hashErr != nil {
				result.Error = hashErr.Error()
				if kind, ok := rahasher.KindOf(hashErr); ok {
					result.Kind = string(kind)
				}
			}

			if record {
				id, err := recordResult(cmd, ctx, slug, path, info.Size(), hash, hashErr)
				if err != nil {
					return err
				}
				result.ROMID = id
			}

			if jsonOutput {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
				return hashErr
			}
			if hashErr != nil {
				return hashErr
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	cmd.Flags().BoolVar(&record, "record", false, "Store the result in the catalog")
	return cmd
}

func recordResult(cmd *cobra.Command, ctx *commandContext, slug, path string, size int64, hash string, hashErr error) (int64, error) {
	store, err := ctx.openCatalog()
	if err != nil {
		return 0, err
	}
	defer store.Close()

	rom, err := store.UpsertROM(cmd.Context(), slug, path, size)
	if err != nil {
		return 0, err
	}
	if hashErr == nil {
		return rom.ID, store.RecordHash(cmd.Context(), rom.ID, hash)
	}
	return rom.ID, store.RecordFailure(cmd.Context(), rom.ID, services.FailureStatus(hashErr), hashErr.Error())
}
