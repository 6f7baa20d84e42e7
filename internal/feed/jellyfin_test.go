package feed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/homefeed/internal/feed"
	"github.com/vmunix/homefeed/internal/jellyfin"
	"github.com/vmunix/homefeed/pkg/imageref"
)

func TestJellyfinSource_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	respond := func(v any) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(v)
		}
	}
	mux.HandleFunc("GET /Users/u1/Views", respond(jellyfin.ItemsResponse{Items: []jellyfin.Item{
		{ID: "lib-shows", Name: "Shows", Type: "CollectionFolder", ImageTags: map[string]string{"Primary": "p"}},
	}}))
	mux.HandleFunc("GET /Users/u1/Items/Resume", respond(jellyfin.ItemsResponse{Items: []jellyfin.Item{
		{ID: "e1", Type: "Episode", SeriesID: "s1", ImageTags: map[string]string{"Primary": "p"}},
	}}))
	mux.HandleFunc("GET /Shows/NextUp", respond(jellyfin.ItemsResponse{}))
	mux.HandleFunc("GET /Users/u1/Items/Latest", respond([]jellyfin.Item{
		{ID: "s1", Type: "Series", ImageTags: map[string]string{"Primary": "p"}},
	}))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := jellyfin.New(srv.URL, jellyfin.WithToken("t"), jellyfin.WithUserID("u1"))
	p := feed.NewProvider(feed.JellyfinSource(client), nil, testLogger())
	st := p.Load(context.Background(), feed.LoadOptions{IncludeLibraries: true})

	require.IsType(t, feed.Ready{}, st, "state: %#v", st)
	assert.Equal(t, []string{feed.LibrariesID, feed.ContinueWatchingID, "lib-shows"}, sectionIDs(st))

	resume := st.(feed.Ready).Sections[1].Items()
	require.Len(t, resume, 1)
	assert.Equal(t, imageref.SourceLive, resume[0].Source)
}
