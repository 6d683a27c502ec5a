package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "rent-dash",
	Short: "Terminal dashboard for rent-server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := tea.NewProgram(initialModel(newAPIClient(serverURL)), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "server", envOr("RENT_SERVER", "http://localhost:3536"), "rent-server base URL")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
