package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ravshan77/shikoyatlar-web/internal/notify"
)

func newWatchCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Announce new complaints to Slack or Discord",
		Long:  "Polls the complaints list and posts every newly arrived complaint to the configured notify platform. With a digest schedule set, also posts periodic complaint-count summaries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	return cmd
}

func runWatch(cmd *cobra.Command, configPath string) error {
	cfg, client, _, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	adapter, err := notify.FromConfig(cfg.Notify)
	if err != nil {
		return err
	}
	if adapter == nil {
		return fmt.Errorf("no notify platform configured: set notify.platform to slack or discord")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := adapter.Connect(ctx); err != nil {
		return err
	}
	defer adapter.Close()

	watcher := &notify.Watcher{
		Adapter:    adapter,
		Fetch:      client.Complaints,
		Interval:   cfg.Refresh.Interval(),
		DigestExpr: cfg.Notify.DigestSchedule,
		Out:        cmd.OutOrStdout(),
	}
	return watcher.Run(ctx)
}
