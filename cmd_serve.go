package main

import (
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rent-server/confs"
	"rent-server/repositories"
	"rent-server/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and websocket alert feed (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings := confs.NewSettings(cfg.SettingsFile)
	provider, err := repositories.NewProvider(cfg.DB, settings, repositories.BackendPolicy{Hosts: cfg.UserBackendHosts}, cfg.Log.Level == "debug")
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Close(); err != nil {
			logrus.WithError(err).Warn("closing databases")
		}
	}()

	if provider.Global().Mock {
		logrus.Warn("serving mock data; set DB_URL or run `rent-server config set` to use a database")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, provider, provider.Global, settings)
	return srv.Start(ctx)
}
