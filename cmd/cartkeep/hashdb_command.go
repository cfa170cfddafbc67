package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cartkeep/internal/config"
	"cartkeep/internal/hashdb"
)

func newHashDBCommand(ctx *commandContext) *cobra.Command {
	hashdbCmd := &cobra.Command{
		Use:   "hashdb",
		Short: "Manage the rom hash database",
	}

	hashdbCmd.AddCommand(newHashDBImportCommand(ctx))
	hashdbCmd.AddCommand(newHashDBStatsCommand(ctx))

	return hashdbCmd
}

func newHashDBImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON crc-to-catalog mapping into the hash database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			db, err := hashdb.Open(cfg.Paths.HashDBPath)
			if err != nil {
				return fmt.Errorf("open hash database: %w", err)
			}
			defer db.Close()

			imported, err := db.Import(cmd.Context(), source)
			if err != nil {
				return err
			}
			total, err := db.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d mapping(s), %d total\n", imported, total)
			return nil
		},
	}
}

func newHashDBStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show hash database statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := hashdb.Open(cfg.Paths.HashDBPath)
			if err != nil {
				return fmt.Errorf("open hash database: %w", err)
			}
			defer db.Close()

			total, err := db.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Path: %s\nMappings: %d\n", cfg.Paths.HashDBPath, total)
			return nil
		},
	}
}
