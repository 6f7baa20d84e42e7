// Package imageref decides which artwork a home-screen tile should request
// from the media server.
//
// Resolution is a pure function of the item metadata and the tile
// orientation. It never fails: absent fields mean "category unavailable".
package imageref

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind is the media server's item type.
type Kind string

const (
	KindMovie            Kind = "Movie"
	KindEpisode          Kind = "Episode"
	KindSeason           Kind = "Season"
	KindSeries           Kind = "Series"
	KindBoxSet           Kind = "BoxSet"
	KindCollectionFolder Kind = "CollectionFolder"
	KindUserView         Kind = "UserView"
	KindFolder           Kind = "Folder"
	KindMusicAlbum       Kind = "MusicAlbum"
	KindAudio            Kind = "Audio"
	KindPlaylist         Kind = "Playlist"
	KindVideo            Kind = "Video"
	KindTvChannel        Kind = "TvChannel"
	KindProgram          Kind = "Program"
	KindUnknown          Kind = "Unknown"
)

var kinds = []Kind{
	KindMovie, KindEpisode, KindSeason, KindSeries, KindBoxSet,
	KindCollectionFolder, KindUserView, KindFolder, KindMusicAlbum,
	KindAudio, KindPlaylist, KindVideo, KindTvChannel, KindProgram,
}

// ParseKind maps a server type string to a Kind, case-insensitively.
// Unrecognized values map to KindUnknown.
func ParseKind(s string) Kind {
	for _, k := range kinds {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return KindUnknown
}

// ImageCategory is the image type segment of an image URL.
type ImageCategory string

const (
	Primary  ImageCategory = "Primary"
	Backdrop ImageCategory = "Backdrop"
	Thumb    ImageCategory = "Thumb"
	Logo     ImageCategory = "Logo"
	Banner   ImageCategory = "Banner"
)

// ParseImageCategory maps a string to an ImageCategory, case-insensitively.
func ParseImageCategory(s string) (ImageCategory, error) {
	for _, c := range []ImageCategory{Primary, Backdrop, Thumb, Logo, Banner} {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown image category %q", s)
}

// Orientation is the tile shape the image is requested for.
type Orientation int

const (
	// Wide tiles are used for library and curated rows.
	Wide Orientation = iota
	// Tall tiles are used for per-library rows.
	Tall
)

func (o Orientation) String() string {
	if o == Tall {
		return "tall"
	}
	return "wide"
}

// ParseOrientation accepts "wide"/"horizontal" and "tall"/"vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wide", "horizontal", "":
		return Wide, nil
	case "tall", "vertical":
		return Tall, nil
	default:
		return Wide, fmt.Errorf("unknown orientation %q", s)
	}
}

// AspectRatio returns the width/height ratio of a tile.
func AspectRatio(o Orientation) float64 {
	if o == Tall {
		return 0.66
	}
	return 1.77
}

// MetadataSource says where an item's metadata came from.
type MetadataSource int

const (
	// SourceUnknown infers cached metadata from an empty ImageTags map.
	SourceUnknown MetadataSource = iota
	// SourceLive items were read from the server. An empty ImageTags map
	// still means the item has no artwork of its own.
	SourceLive
	// SourceCached items come from offline storage, which keeps no image tags.
	SourceCached
)

// MediaItem is the subset of item metadata the resolver reads.
type MediaItem struct {
	ID                string
	Name              string
	Kind              Kind
	ImageTags         map[ImageCategory]string
	BackdropImageTags []string
	SeriesID          string
	SeriesName        string
	PlayedPercentage  *float64
	Source            MetadataSource
}

// HasMetadata reports whether the item's image tags can be trusted.
func (m MediaItem) HasMetadata() bool {
	if m.Source == SourceCached {
		return false
	}
	return len(m.ImageTags) > 0
}

// seriesOrSelf returns the parent series id, or the item id without one.
func (m MediaItem) seriesOrSelf() string {
	if m.SeriesID != "" {
		return m.SeriesID
	}
	return m.ID
}

// Reference identifies one image on the media server.
type Reference struct {
	TargetID string        `json:"target_id"`
	Category ImageCategory `json:"category"`
}

// URL builds {baseURL}/items/{id}/Images/{category}.
func (r Reference) URL(baseURL string) string {
	return fmt.Sprintf("%s/items/%s/Images/%s",
		strings.TrimRight(baseURL, "/"), url.PathEscape(r.TargetID), r.Category)
}

// Resolve picks the target entity and image category for item.
func Resolve(item MediaItem, o Orientation) Reference {
	if o == Tall {
		return resolveTall(item)
	}
	return resolveWide(item)
}

func resolveWide(item MediaItem) Reference {
	ref := Reference{TargetID: item.ID, Category: Primary}

	if !item.HasMetadata() {
		// Offline metadata has no tags; only the series backdrop is reliable.
		if item.Kind == KindEpisode {
			ref.TargetID = item.seriesOrSelf()
			ref.Category = Backdrop
		}
		return ref
	}

	if item.Kind == KindMovie {
		if len(item.BackdropImageTags) > 0 {
			ref.Category = Backdrop
		}
		return ref
	}
	if _, ok := item.ImageTags[Primary]; !ok {
		ref.Category = Backdrop
	}
	return ref
}

func resolveTall(item MediaItem) Reference {
	ref := Reference{TargetID: item.ID, Category: Primary}
	if item.Kind == KindEpisode || (item.Kind == KindSeason && !item.HasMetadata()) {
		ref.TargetID = item.seriesOrSelf()
	}
	return ref
}
