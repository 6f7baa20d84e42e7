package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/homefeed/internal/config"
	"github.com/vmunix/homefeed/internal/feed"
	"github.com/vmunix/homefeed/internal/feed/mocks"
	"github.com/vmunix/homefeed/internal/render"
	"github.com/vmunix/homefeed/pkg/imageref"
)

func TestFeedResolver_ResetsBeforeReady(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)

	tagless := imageref.MediaItem{ID: "e1", Kind: imageref.KindEpisode, SeriesID: "s1", Source: imageref.SourceLive}
	tagged := tagless
	tagged.ImageTags = map[imageref.ImageCategory]string{imageref.Primary: "p"}

	src.EXPECT().UserViews(gomock.Any()).Return(nil, nil).Times(2)
	src.EXPECT().NextUp(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	gomock.InOrder(
		src.EXPECT().ResumeItems(gomock.Any(), gomock.Any()).Return([]imageref.MediaItem{tagless}, nil),
		src.EXPECT().ResumeItems(gomock.Any(), gomock.Any()).Return([]imageref.MediaItem{tagged}, nil),
	)

	a := &app{cfg: &config.Config{Home: config.HomeConfig{MemoizeImages: true}}}
	p := feed.NewProvider(src, nil, nil)
	r := a.feedResolver(p)

	screen := render.Render(p.Load(context.Background(), feed.LoadOptions{}), "http://jf", r)
	require.Len(t, screen.Rows, 1)
	assert.Equal(t, "http://jf/items/s1/Images/Backdrop", screen.Rows[0].Tiles[0].ImageURL)
	assert.Equal(t, 1, r.Len())

	st := p.Load(context.Background(), feed.LoadOptions{})
	assert.Zero(t, r.Len(), "memo cleared before the new state is returned")

	screen = render.Render(st, "http://jf", r)
	assert.Equal(t, "http://jf/items/e1/Images/Primary", screen.Rows[0].Tiles[0].ImageURL)
}
