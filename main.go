package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rent-server/confs"
)

var cfg *confs.Config

var rootCmd = &cobra.Command{
	Use:   "rent-server",
	Short: "Property management backend: tenants, properties, finance and delinquency alerts",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = confs.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		confs.SetupLogging(cfg.Log)
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
