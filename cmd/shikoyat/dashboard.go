package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ravshan77/shikoyatlar-web/internal/api"
	"github.com/ravshan77/shikoyatlar-web/internal/config"
	"github.com/ravshan77/shikoyatlar-web/internal/dashboard"
	"github.com/ravshan77/shikoyatlar-web/internal/models"
	"github.com/ravshan77/shikoyatlar-web/internal/pipeline"
	"github.com/ravshan77/shikoyatlar-web/internal/query"
	"github.com/ravshan77/shikoyatlar-web/internal/session"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Start the local web dashboard",
		Long:  "Launches the complaints dashboard in a local web server: login, browse, filter, file and edit from the browser.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config)")
	return cmd
}

func runDashboard(cmd *cobra.Command, configPath string, port int) error {
	cfg, client, sess, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if port <= 0 {
		port = cfg.Dashboard.Port
	}

	tf, err := tokenFile()
	if err != nil {
		return err
	}

	store := session.NewStore()
	if sess != nil {
		store.SetSession(*sess)
	}

	app := &dashboard.App{
		Store:           store,
		Queries:         query.NewOrchestrator(),
		API:             client,
		Pipe:            pipeline.New(client, client),
		RefreshInterval: cfg.Refresh.Interval(),
		OnLogin: func(s models.Session) {
			if cfg.API.AuthMode == config.AuthBearer {
				client.SetCredentials(api.BearerToken{Token: s.Token})
			}
			if err := tf.Save(s); err != nil {
				log.Printf("save session: %v", err)
			}
		},
		OnLogout: func() {
			if cfg.API.AuthMode == config.AuthBearer {
				client.SetCredentials(api.BearerToken{})
			}
			if err := tf.Clear(); err != nil {
				log.Printf("clear session: %v", err)
			}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	// Keep the current list page warm while auto-refresh is on, so the
	// browser's periodic reload renders from cache instead of waiting on
	// the remote API.
	poller := &query.Poller{
		Interval: cfg.Refresh.Interval(),
		Enabled: func() bool {
			return app.Store.Authenticated() && app.Store.AutoRefresh()
		},
		Task: app.RefreshList,
	}
	go poller.Run(ctx)

	return dashboard.Start(ctx, dashboard.StartOpts{
		App:  app,
		Port: port,
		Out:  cmd.OutOrStdout(),
	})
}
