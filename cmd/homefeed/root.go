package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "homefeed",
	Short: "Jellyfin home screen builder",
	Long: `homefeed - home screen builder for Jellyfin

Aggregates libraries, continue watching, next up, the latest items per
library and offline downloads into one home screen, and resolves the
artwork each tile should show.

Run 'homefeed serve' to start the HTTP API.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("homefeed {{.Version}}\n")
}
