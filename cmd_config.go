package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rent-server/confs"
	"rent-server/repositories"
)

var (
	configUser string
	configKey  string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the saved database backend",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the backend in effect for --user (or the global one)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := confs.NewSettings(cfg.SettingsFile).Load(configUser)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case !b.Empty():
			fmt.Fprintf(out, "%s: %s\n", confs.KeyBackendURL, b.URL)
			fmt.Fprintf(out, "%s set: %v\n", confs.KeyBackendKey, b.Key != "")
		case cfg.DB.Configured():
			fmt.Fprintln(out, "using database from environment")
		default:
			fmt.Fprintln(out, "no backend configured, mock data mode")
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <url>",
	Short: "Save a backend URL (postgres://... or sqlite://path)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b := confs.Backend{URL: args[0], Key: configKey}
		if configUser != "" {
			if err := (repositories.BackendPolicy{Hosts: cfg.UserBackendHosts}).Check(b); err != nil {
				return err
			}
		}
		if _, _, err := repositories.OptionsFor(b, confs.Database{}); err != nil {
			return err
		}
		if err := confs.NewSettings(cfg.SettingsFile).Set(configUser, b); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "saved; a running server picks it up on restart")
		return nil
	},
}

var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved backend for --user (or the global one)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := confs.NewSettings(cfg.SettingsFile).Clear(configUser); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "cleared")
		return nil
	},
}

func init() {
	configCmd.PersistentFlags().StringVar(&configUser, "user", "", "user id; empty for the global entry")
	configSetCmd.Flags().StringVar(&configKey, "key", "", "access key (database password)")
	configCmd.AddCommand(configShowCmd, configSetCmd, configClearCmd)
}
