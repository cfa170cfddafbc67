package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cartkeep/internal/config"
	"cartkeep/internal/device"
)

func newDeviceCommand(ctx *commandContext) *cobra.Command {
	deviceCmd := &cobra.Command{
		Use:   "device",
		Short: "Cartridge device utilities",
	}

	deviceCmd.AddCommand(newDeviceCheckCommand(ctx))
	deviceCmd.AddCommand(newDeviceWatchCommand(ctx))

	return deviceCmd
}

func newDeviceCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <target>",
		Short: "Run sync preflight checks against a mounted cartridge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			results := device.RunAll(target, 0)
			printCheckResults(cmd, results)
			if !device.Passed(results) {
				return fmt.Errorf("device preflight failed")
			}
			return nil
		},
	}
}

func newDeviceWatchCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch for cartridge insertion events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			monitor := device.NewMonitor(cfg.Device.WatchDevice, logger, func(_ context.Context, devname string) {
				fmt.Fprintf(out, "Cartridge detected: %s\n", devname)
			})
			if err := monitor.Start(ctx); err != nil {
				return err
			}
			defer monitor.Stop()

			if !monitor.Running() {
				return fmt.Errorf("device monitor unavailable (netlink socket inaccessible)")
			}
			fmt.Fprintln(out, "Watching for cartridge insertions; press Ctrl-C to stop")
			<-ctx.Done()
			return nil
		},
	}
}
