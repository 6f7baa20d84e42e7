// Package render turns a home feed state into rows of tiles with resolved
// image URLs, ready for a front end or the terminal.
package render

import (
	"fmt"

	"github.com/vmunix/homefeed/internal/feed"
	"github.com/vmunix/homefeed/pkg/imageref"
)

// Screen statuses.
const (
	StatusLoading = "loading"
	StatusReady   = "ready"
	StatusError   = "error"
)

// Screen is a rendered home screen.
type Screen struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Rows   []Row  `json:"rows,omitempty"`
}

// Row is one horizontally scrolling row.
type Row struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Orientation string `json:"orientation"`
	Tiles       []Tile `json:"tiles"`
}

// Tile is one item in a row.
type Tile struct {
	ItemID      string   `json:"item_id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	ImageURL    string   `json:"image_url"`
	AspectRatio float64  `json:"aspect_ratio"`
	Progress    *float64 `json:"progress,omitempty"`
}

// Render builds the screen for st. A nil resolver resolves without caching.
func Render(st feed.State, baseURL string, r *imageref.Resolver) Screen {
	switch st := st.(type) {
	case feed.Loading:
		return Screen{Status: StatusLoading}
	case feed.Failed:
		msg := "unknown error"
		if st.Err != nil {
			msg = st.Err.Error()
		}
		return Screen{Status: StatusError, Error: msg}
	case feed.Ready:
		rows := make([]Row, 0, len(st.Sections))
		for _, s := range st.Sections {
			rows = append(rows, renderSection(s, baseURL, r))
		}
		return Screen{Status: StatusReady, Rows: rows}
	default:
		panic(fmt.Sprintf("render: unhandled state %T", st))
	}
}

func renderSection(s feed.Section, baseURL string, r *imageref.Resolver) Row {
	var (
		o             imageref.Orientation
		seriesSubtext bool
	)
	switch s.(type) {
	case feed.LibraryList:
		o = imageref.Wide
	case feed.CuratedSection:
		o = imageref.Wide
		seriesSubtext = true
	case feed.ViewSection:
		o = imageref.Tall
	default:
		panic(fmt.Sprintf("render: unhandled section %T", s))
	}

	items := s.Items()
	row := Row{
		ID:          s.ID(),
		Title:       s.Name(),
		Orientation: o.String(),
		Tiles:       make([]Tile, 0, len(items)),
	}
	for _, it := range items {
		t := Tile{
			ItemID:      it.ID,
			Title:       it.Name,
			ImageURL:    r.URL(baseURL, it, o),
			AspectRatio: imageref.AspectRatio(o),
			Progress:    it.PlayedPercentage,
		}
		if seriesSubtext {
			t.Subtitle = it.SeriesName
		}
		row.Tiles = append(row.Tiles, t)
	}
	return row
}
