package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vmunix/homefeed/internal/match"
	"github.com/vmunix/homefeed/internal/offline"
	"github.com/vmunix/homefeed/internal/render"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func printScreen(w io.Writer, s render.Screen) {
	switch s.Status {
	case render.StatusLoading:
		fmt.Fprintln(w, "Loading...")
		return
	case render.StatusError:
		fmt.Fprintf(w, "Error: %s\n", s.Error)
		return
	}
	if len(s.Rows) == 0 {
		fmt.Fprintln(w, "Nothing to show")
		return
	}

	for i, row := range s.Rows {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s, %d)\n", row.Title, row.Orientation, len(row.Tiles))
		for _, t := range row.Tiles {
			title := t.Title
			if t.Subtitle != "" {
				title = t.Subtitle + " - " + t.Title
			}
			progress := ""
			if t.Progress != nil {
				progress = fmt.Sprintf(" [%.0f%%]", *t.Progress)
			}
			fmt.Fprintf(w, "  %-40s %s%s\n", truncate(title, 40), t.ImageURL, progress)
		}
	}
}

func printHits(w io.Writer, query string, hits []match.Hit) {
	if len(hits) == 0 {
		fmt.Fprintf(w, "No matches for %q\n", query)
		return
	}
	fmt.Fprintf(w, "  %5s │ %-40s │ %s\n", "SCORE", "TITLE", "ROW")
	fmt.Fprintln(w, "────────┼──────────────────────────────────────────┼──────────────────")
	for _, h := range hits {
		fmt.Fprintf(w, "  %5.2f │ %-40s │ %s\n", h.Score, truncate(h.Tile.Title, 40), h.RowID)
	}
}

func printOffline(w io.Writer, items []*offline.Item, now time.Time) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No offline items")
		return
	}

	var total uint64
	fmt.Fprintf(w, "  %-32s │ %-40s │ %-9s │ %s\n", "ID", "TITLE", "SIZE", "DOWNLOADED")
	fmt.Fprintln(w, "────────────────────────────────────┼──────────────────────────────────────────┼───────────┼────────────")
	for _, it := range items {
		size := uint64(it.Size)
		total += size
		title := it.Name
		if it.SeriesName != "" {
			title = it.SeriesName + " - " + it.Name
		}
		fmt.Fprintf(w, "  %-32s │ %-40s │ %-9s │ %s\n",
			truncate(it.ID, 32), truncate(title, 40), humanize.Bytes(size), humanize.RelTime(it.DownloadedAt, now, "ago", "from now"))
	}
	fmt.Fprintf(w, "\n%s items, %s\n", humanize.Comma(int64(len(items))), humanize.Bytes(total))
}
