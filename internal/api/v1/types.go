package v1

import (
	"github.com/vmunix/homefeed/internal/match"
	"github.com/vmunix/homefeed/pkg/imageref"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type imageResponse struct {
	ItemID      string             `json:"item_id"`
	Orientation string             `json:"orientation"`
	Reference   imageref.Reference `json:"reference"`
	URL         string             `json:"url"`
	AspectRatio float64            `json:"aspect_ratio"`
}

type searchResponse struct {
	Query string      `json:"query"`
	Hits  []match.Hit `json:"hits"`
}

type statusResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Feed         string `json:"feed"`
	MediaServer  string `json:"media_server"`
	OfflineItems *int   `json:"offline_items,omitempty"`
}
