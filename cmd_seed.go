package main

import (
	"errors"

	"github.com/spf13/cobra"

	"rent-server/cache"
	"rent-server/confs"
	"rent-server/repositories"
)

var seedUser string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Copy the demo data set into a user's database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if seedUser == "" {
			return errors.New("--user is required")
		}
		settings := confs.NewSettings(cfg.SettingsFile)
		provider, err := repositories.NewProvider(cfg.DB, settings, repositories.BackendPolicy{Hosts: cfg.UserBackendHosts}, false)
		if err != nil {
			return err
		}
		defer provider.Close()

		store, err := provider.For(cmd.Context(), seedUser)
		if err != nil {
			return err
		}
		if store.Mock {
			return errors.New("no database configured; the mock store already carries the demo data")
		}
		return repositories.SeedStore(cmd.Context(), store, seedUser, cache.MockData())
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedUser, "user", "", "user id that will own the rows")
}
