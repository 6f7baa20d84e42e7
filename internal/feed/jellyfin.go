package feed

import (
	"context"

	"github.com/vmunix/homefeed/internal/jellyfin"
	"github.com/vmunix/homefeed/pkg/imageref"
)

// jellyfinSource adapts a jellyfin.Client to Source.
type jellyfinSource struct {
	client *jellyfin.Client
}

// JellyfinSource returns a Source backed by client.
func JellyfinSource(client *jellyfin.Client) Source {
	return jellyfinSource{client: client}
}

func (s jellyfinSource) UserViews(ctx context.Context) ([]imageref.MediaItem, error) {
	items, err := s.client.UserViews(ctx)
	if err != nil {
		return nil, err
	}
	return jellyfin.MediaItems(items), nil
}

func (s jellyfinSource) ResumeItems(ctx context.Context, limit int) ([]imageref.MediaItem, error) {
	items, err := s.client.ResumeItems(ctx, limit)
	if err != nil {
		return nil, err
	}
	return jellyfin.MediaItems(items), nil
}

func (s jellyfinSource) NextUp(ctx context.Context, limit int) ([]imageref.MediaItem, error) {
	items, err := s.client.NextUp(ctx, limit)
	if err != nil {
		return nil, err
	}
	return jellyfin.MediaItems(items), nil
}

func (s jellyfinSource) LatestItems(ctx context.Context, parentID string, limit int) ([]imageref.MediaItem, error) {
	items, err := s.client.LatestItems(ctx, parentID, limit)
	if err != nil {
		return nil, err
	}
	return jellyfin.MediaItems(items), nil
}
