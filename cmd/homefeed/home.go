package main

import (
	"github.com/spf13/cobra"

	"github.com/vmunix/homefeed/internal/render"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Build and print the home screen",
	Long: `Loads every home screen section from the media server and offline
storage once, then prints each row with the image URL of every tile.

Examples:
  homefeed home           # Print rows and tiles
  homefeed home --json    # Print the rendered screen as JSON`,
	Args: cobra.NoArgs,
	RunE: runHome,
}

func init() {
	rootCmd.AddCommand(homeCmd)
}

func runHome(cmd *cobra.Command, _ []string) error {
	a, err := stderrApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	p := a.provider()
	defer func() { _ = p.Close() }()

	screen := render.Render(p.Load(cmd.Context(), a.loadOptions()), a.client.BaseURL(), a.resolver())
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), screen)
	}
	printScreen(cmd.OutOrStdout(), screen)
	return nil
}
