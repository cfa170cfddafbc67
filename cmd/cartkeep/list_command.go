package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"cartkeep/internal/config"
	"cartkeep/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var selectedOnly bool
	var platformFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store, logger *slog.Logger) error {
				var rows [][]string
				for _, title := range store.All() {
					if selectedOnly && !title.Selected {
						continue
					}
					if platformFilter != "" && title.PlatformID != platformFilter {
						continue
					}
					rows = append(rows, []string{
						title.ID,
						title.DisplayTitle,
						title.PlatformID,
						yesNo(title.Selected),
						yesNo(title.Matched()),
					})
				}

				out := cmd.OutOrStdout()
				if len(rows) == 0 {
					fmt.Fprintln(out, "Library is empty")
					return nil
				}

				if isTerminal(out) {
					headers := []string{"ID", "Title", "Platform", "Selected", "Matched"}
					fmt.Fprintln(out, renderTable(headers, rows, nil))
					return nil
				}
				for _, row := range rows {
					fmt.Fprintln(out, strings.Join(row, "\t"))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&selectedOnly, "selected", false, "Only show titles selected for sync")
	cmd.Flags().StringVar(&platformFilter, "platform", "", "Only show titles for the given platform id")
	return cmd
}
