package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cartkeep/internal/config"
	"cartkeep/internal/device"
	"cartkeep/internal/library"
	"cartkeep/internal/syncer"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var cartridgeName string
	var skipChecks bool

	cmd := &cobra.Command{
		Use:   "sync <target>",
		Short: "Sync selected titles onto a mounted cartridge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store, logger *slog.Logger) error {
				selected := store.Selected()
				if len(selected) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No titles selected; nothing to sync")
					return nil
				}

				if !skipChecks {
					results := device.RunAll(target, payloadSize(store, selected))
					printCheckResults(cmd, results)
					if !device.Passed(results) {
						return fmt.Errorf("device preflight failed")
					}
				}

				name := cartridgeName
				if name == "" {
					name = cfg.Device.CartridgeName
				}

				engine := syncer.New(store, syncer.Options{
					CoreDir: filepath.Join(cfg.Paths.AssetCacheDir, "cores"),
					BiosDir: cfg.Paths.BiosDir,
				}, logger)
				if err := engine.SyncToDevice(target, name, printerSink(cmd.OutOrStdout())); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Synced %d title(s) to %s\n", len(selected), target)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&cartridgeName, "name", "", "Cartridge name written to the device manifest")
	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Skip device preflight checks")
	return cmd
}

// payloadSize totals the rom bytes of the selection, a lower bound for the
// space the sync needs on the device.
func payloadSize(store *library.Store, titles []*library.Title) uint64 {
	var total uint64
	for _, title := range titles {
		romDir := store.Paths(title.ID).RomDir()
		entries, err := os.ReadDir(romDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil || info.IsDir() {
				continue
			}
			total += uint64(info.Size())
		}
	}
	return total
}

func printCheckResults(cmd *cobra.Command, results []device.Result) {
	out := cmd.OutOrStdout()
	for _, res := range results {
		status := "FAIL"
		if res.Passed {
			status = "ok"
		}
		fmt.Fprintf(out, "%-16s %-4s %s\n", res.Name, status, res.Detail)
	}
}
