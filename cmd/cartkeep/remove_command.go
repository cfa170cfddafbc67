package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"cartkeep/internal/config"
	"cartkeep/internal/library"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>...",
		Short: "Delete titles and their assets from the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store, logger *slog.Logger) error {
				for _, id := range args {
					if _, ok := store.Get(id); !ok {
						return fmt.Errorf("unknown title id %q", id)
					}
					if err := store.Delete(id); err != nil {
						return fmt.Errorf("remove title %q: %w", id, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
				}
				return nil
			})
		},
	}
}
