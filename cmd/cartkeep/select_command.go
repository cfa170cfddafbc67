package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"cartkeep/internal/config"
	"cartkeep/internal/library"
)

func newSelectCommand(ctx *commandContext, selected bool) *cobra.Command {
	use, short := "select <id>...", "Mark titles for device sync"
	if !selected {
		use, short = "deselect <id>...", "Unmark titles so the next sync removes them"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store, logger *slog.Logger) error {
				for _, id := range args {
					title, ok := store.Get(id)
					if !ok {
						return fmt.Errorf("unknown title id %q", id)
					}
					if title.Selected == selected {
						continue
					}
					title.Selected = selected
					if err := store.Save(title); err != nil {
						return fmt.Errorf("save title %q: %w", id, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d title(s)\n", len(args))
				return nil
			})
		},
	}
}
