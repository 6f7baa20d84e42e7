package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmunix/homefeed/internal/jellyfin"
	"github.com/vmunix/homefeed/internal/offline"
	"github.com/vmunix/homefeed/pkg/imageref"
)

// ErrItemNotFound is returned when neither offline storage nor the server
// knows an item.
var ErrItemNotFound = errors.New("item not found")

// Lookup finds a single item, preferring offline storage. Either field may
// be nil.
type Lookup struct {
	Client  *jellyfin.Client
	Offline *offline.Store
}

// LookupItem returns the item with id.
func (l Lookup) LookupItem(ctx context.Context, id string) (imageref.MediaItem, error) {
	if l.Offline != nil {
		it, err := l.Offline.Get(ctx, id)
		if err == nil {
			return it.MediaItem, nil
		}
		if !errors.Is(err, offline.ErrNotFound) {
			return imageref.MediaItem{}, err
		}
	}
	if l.Client == nil {
		return imageref.MediaItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	it, err := l.Client.Item(ctx, id)
	if errors.Is(err, jellyfin.ErrNotFound) {
		return imageref.MediaItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if err != nil {
		return imageref.MediaItem{}, err
	}
	return it.MediaItem(), nil
}
