package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/homefeed/internal/match"
	"github.com/vmunix/homefeed/internal/render"
)

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find a tile on the home screen by title",
	Long: `Builds the home screen and ranks its tiles against the query by fuzzy
title match. Accents, case and punctuation are ignored.

Examples:
  homefeed find amelie
  homefeed find "breaking bad" --limit 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().IntP("limit", "n", 10, "Maximum results (0 for all)")
}

func runFind(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	a, err := stderrApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	p := a.provider()
	defer func() { _ = p.Close() }()

	screen := render.Render(p.Load(cmd.Context(), a.loadOptions()), a.client.BaseURL(), a.resolver())
	hits := match.Find(query, screen, limit)
	if jsonOutput {
		if hits == nil {
			hits = []match.Hit{}
		}
		return printJSON(cmd.OutOrStdout(), hits)
	}
	printHits(cmd.OutOrStdout(), query, hits)
	return nil
}
