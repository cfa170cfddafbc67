package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"cartkeep/internal/assets"
	"cartkeep/internal/catalog"
	"cartkeep/internal/config"
	"cartkeep/internal/enrich"
	"cartkeep/internal/hashdb"
	"cartkeep/internal/library"
)

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "enrich [id]...",
		Short: "Fetch catalog metadata and artwork for library titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store, logger *slog.Logger) error {
				titles, err := enrichTargets(store, args, all)
				if err != nil {
					return err
				}
				if len(titles) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to enrich")
					return nil
				}

				client, err := catalog.New(catalog.Config{
					BaseURL: cfg.Catalog.BaseURL,
					APIKey:  cfg.Catalog.APIKey,
				})
				if err != nil {
					return err
				}
				hashes, err := hashdb.Open(cfg.Paths.HashDBPath)
				if err != nil {
					return fmt.Errorf("open hash database: %w", err)
				}
				defer hashes.Close()

				cache, err := assets.NewCache(cfg.Paths.AssetCacheDir, nil, logger)
				if err != nil {
					return err
				}
				resizer := &assets.CopyResizer{Cache: cache}

				engine := enrich.New(store, client, hashes, resizer, cfg.Catalog.PageSize, logger)
				if err := engine.Enrich(cmd.Context(), titles, printerSink(cmd.OutOrStdout())); err != nil {
					return err
				}

				matched := 0
				for _, title := range titles {
					if title.Matched() {
						matched++
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Enriched %d of %d title(s)\n", matched, len(titles))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Re-enrich titles that already have catalog matches")
	return cmd
}

// enrichTargets resolves the title set to enrich: explicit ids, everything,
// or only titles without a catalog match.
func enrichTargets(store *library.Store, ids []string, all bool) ([]*library.Title, error) {
	if len(ids) > 0 {
		titles := make([]*library.Title, 0, len(ids))
		for _, id := range ids {
			title, ok := store.Get(id)
			if !ok {
				return nil, fmt.Errorf("unknown title id %q", id)
			}
			titles = append(titles, title)
		}
		return titles, nil
	}

	var titles []*library.Title
	for _, title := range store.All() {
		if all || !title.Matched() {
			titles = append(titles, title)
		}
	}
	return titles, nil
}
