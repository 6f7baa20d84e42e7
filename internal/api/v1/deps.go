package v1

import (
	"context"
	"errors"

	"github.com/vmunix/homefeed/internal/feed"
	"github.com/vmunix/homefeed/pkg/imageref"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// FeedProvider is the home feed state owner.
type FeedProvider interface {
	State() feed.State
	Load(ctx context.Context, opts feed.LoadOptions) feed.State
}

// ItemLookup resolves a single item by id.
type ItemLookup interface {
	LookupItem(ctx context.Context, id string) (imageref.MediaItem, error)
}

// OfflineCounter reports how many items are stored offline.
type OfflineCounter interface {
	Count(ctx context.Context) (int, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Feed    FeedProvider
	BaseURL string

	// Optional dependencies (nil if not configured)
	Items    ItemLookup
	Offline  OfflineCounter
	Resolver *imageref.Resolver
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Feed == nil {
		return errors.New("feed provider is required")
	}
	if d.BaseURL == "" {
		return errors.New("media server base URL is required")
	}
	return nil
}
