package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/homefeed/internal/offline"
)

var offlineCmd = &cobra.Command{
	Use:   "offline",
	Short: "Manage downloaded items",
}

var offlineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List downloaded items",
	Args:  cobra.NoArgs,
	RunE:  runOfflineList,
}

var offlineAddCmd = &cobra.Command{
	Use:   "add <item-id> <path>",
	Short: "Record a downloaded file for a media server item",
	Long: `Fetches the item's metadata from the media server and records the
local file as its offline copy. The download itself is not performed.`,
	Args: cobra.ExactArgs(2),
	RunE: runOfflineAdd,
}

var offlineRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Forget a downloaded item",
	Args:  cobra.ExactArgs(1),
	RunE:  runOfflineRemove,
}

func init() {
	rootCmd.AddCommand(offlineCmd)
	offlineCmd.AddCommand(offlineListCmd, offlineAddCmd, offlineRemoveCmd)
}

type offlineEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	SeriesName   string    `json:"series_name,omitempty"`
	Path         string    `json:"path"`
	SizeBytes    int64     `json:"size_bytes"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

func runOfflineList(cmd *cobra.Command, _ []string) error {
	a, err := stderrApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireOffline(); err != nil {
		return err
	}

	items, err := a.store.List(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		out := make([]offlineEntry, 0, len(items))
		for _, it := range items {
			out = append(out, offlineEntry{
				ID:           it.ID,
				Name:         it.Name,
				Kind:         string(it.Kind),
				SeriesName:   it.SeriesName,
				Path:         it.Path,
				SizeBytes:    it.Size,
				DownloadedAt: it.DownloadedAt,
			})
		}
		return printJSON(cmd.OutOrStdout(), out)
	}
	printOffline(cmd.OutOrStdout(), items, time.Now())
	return nil
}

func runOfflineAdd(cmd *cobra.Command, args []string) error {
	id, path := args[0], args[1]
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	a, err := stderrApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireOffline(); err != nil {
		return err
	}

	it, err := a.client.Item(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("fetch item %s: %w", id, err)
	}

	rec := &offline.Item{MediaItem: it.MediaItem(), Path: path, Size: fi.Size()}
	if err := a.store.Save(cmd.Context(), rec); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", rec.Name, rec.ID)
	return nil
}

func runOfflineRemove(cmd *cobra.Command, args []string) error {
	a, err := stderrApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireOffline(); err != nil {
		return err
	}

	if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("remove %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}
