package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/homefeed/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without contacting the media server.",
	Args:  cobra.NoArgs,
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
}

func runConfigTest(cmd *cobra.Command, _ []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(w, configErr)
			return errors.New("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(w, cfg)
	fmt.Fprintln(w, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Server:     %s (log: %s, refresh: %s)\n", cfg.Addr(), cfg.Server.LogLevel, cfg.Server.RefreshInterval)

	auth := "token"
	if cfg.Jellyfin.Token == "" {
		auth = "user " + cfg.Jellyfin.Username
	}
	fmt.Fprintf(w, "  Jellyfin:   %s (%s)\n", cfg.Jellyfin.URL, auth)

	if cfg.Offline.Enabled {
		fmt.Fprintf(w, "  Offline:    %s\n", cfg.Offline.Database)
	} else {
		fmt.Fprintln(w, "  Offline:    disabled")
	}
	fmt.Fprintf(w, "  Home:       resume %d, next up %d, latest %d (libraries: %t)\n",
		cfg.Home.ResumeLimit, cfg.Home.NextUpLimit, cfg.Home.LatestLimit, cfg.Home.IncludeLibraries)
}
