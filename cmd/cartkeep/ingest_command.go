package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"cartkeep/internal/config"
	"cartkeep/internal/ingest"
	"cartkeep/internal/library"
	"cartkeep/internal/platform"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <path>...",
		Short: "Add rom files or directories to the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			romPaths, err := collectRomPaths(args)
			if err != nil {
				return err
			}
			if len(romPaths) == 0 {
				return fmt.Errorf("no rom files found under the given paths")
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store, logger *slog.Logger) error {
				pipeline := ingest.New(store, nil, logger)
				added, err := pipeline.Ingest(romPaths, printerSink(cmd.OutOrStdout()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d title(s) from %d file(s)\n", len(added), len(romPaths))
				return nil
			})
		},
	}
}

// collectRomPaths expands directory arguments into the rom files they
// contain, filtered to extensions some platform accepts. File arguments
// pass through untouched so the pipeline can report unsupported ones.
func collectRomPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve path %q: %w", arg, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("inspect path %q: %w", abs, err)
		}
		if !info.IsDir() {
			out = append(out, abs)
			continue
		}
		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := platform.ResolveExtension(filepath.Ext(path)); ok {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan directory %q: %w", abs, err)
		}
	}
	sort.Strings(out)
	return out, nil
}
