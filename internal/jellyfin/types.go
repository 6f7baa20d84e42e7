package jellyfin

import (
	"github.com/vmunix/homefeed/pkg/imageref"
)

// authRequest is the body of AuthenticateByName.
type authRequest struct {
	Username string `json:"Username"`
	Pw       string `json:"Pw"`
}

// AuthResponse is returned by AuthenticateByName.
type AuthResponse struct {
	User        User   `json:"User"`
	AccessToken string `json:"AccessToken"`
	ServerID    string `json:"ServerId"`
}

// User is a Jellyfin user.
type User struct {
	ID       string `json:"Id"`
	Name     string `json:"Name"`
	ServerID string `json:"ServerId"`
}

// ItemsResponse is a paginated list of items.
type ItemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
	StartIndex       int    `json:"StartIndex"`
}

// Item is a BaseItemDto as returned by the server.
type Item struct {
	ID                string            `json:"Id"`
	Name              string            `json:"Name"`
	Type              string            `json:"Type"`
	CollectionType    string            `json:"CollectionType,omitempty"`
	ImageTags         map[string]string `json:"ImageTags,omitempty"`
	BackdropImageTags []string          `json:"BackdropImageTags,omitempty"`
	ParentID          string            `json:"ParentId,omitempty"`
	SeriesID          string            `json:"SeriesId,omitempty"`
	SeriesName        string            `json:"SeriesName,omitempty"`
	ParentIndexNumber int               `json:"ParentIndexNumber,omitempty"`
	IndexNumber       int               `json:"IndexNumber,omitempty"`
	ProductionYear    int               `json:"ProductionYear,omitempty"`
	RunTimeTicks      int64             `json:"RunTimeTicks,omitempty"`
	UserData          *UserData         `json:"UserData,omitempty"`
}

// UserData holds per-user playback state.
type UserData struct {
	PlaybackPositionTicks int64    `json:"PlaybackPositionTicks"`
	PlayedPercentage      *float64 `json:"PlayedPercentage,omitempty"`
	PlayCount             int      `json:"PlayCount"`
	IsFavorite            bool     `json:"IsFavorite"`
	Played                bool     `json:"Played"`
}

// MediaItem converts the DTO into the resolver's item model.
// Items read from the server always carry live metadata.
func (it Item) MediaItem() imageref.MediaItem {
	m := imageref.MediaItem{
		ID:                it.ID,
		Name:              it.Name,
		Kind:              imageref.ParseKind(it.Type),
		BackdropImageTags: it.BackdropImageTags,
		SeriesID:          it.SeriesID,
		SeriesName:        it.SeriesName,
		Source:            imageref.SourceLive,
	}
	if len(it.ImageTags) > 0 {
		m.ImageTags = make(map[imageref.ImageCategory]string, len(it.ImageTags))
		for k, v := range it.ImageTags {
			m.ImageTags[imageref.ImageCategory(k)] = v
		}
	}
	if it.UserData != nil && it.UserData.PlayedPercentage != nil {
		p := *it.UserData.PlayedPercentage
		m.PlayedPercentage = &p
	}
	return m
}

// MediaItems converts a slice of DTOs.
func MediaItems(items []Item) []imageref.MediaItem {
	out := make([]imageref.MediaItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.MediaItem())
	}
	return out
}
