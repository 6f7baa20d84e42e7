package jellyfin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/homefeed/pkg/imageref"
)

const (
	testToken  = "tok-123"
	testUserID = "u1"
	movieID    = "4a1f6c0e8b2d4e7f9a3b5c6d7e8f9012"
)

// mockJellyfin creates a test server that routes by path.
func mockJellyfin(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeJSON is a test helper that writes a JSON response and panics on error.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic("test: failed to encode JSON: " + err.Error())
	}
}

// requireToken rejects requests without the test token.
func requireToken(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Authorization"), `Token="`+testToken+`"`) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler(w, r)
	}
}

func newTestClient(url string) *Client {
	return New(url, WithToken(testToken), WithUserID(testUserID), WithDeviceID("dev-1"))
}

func TestNew_Defaults(t *testing.T) {
	c := New("http://jf.local:8096/")
	assert.Equal(t, "http://jf.local:8096", c.BaseURL())
	assert.NotEmpty(t, c.deviceID)
	assert.Empty(t, c.UserID())
}

func TestWithLogger_Nil(t *testing.T) {
	var c *Client
	require.NotPanics(t, func() { c = New("http://jf.local:8096", WithLogger(nil)) })
	require.NotNil(t, c.log)
}

func TestAuthenticate(t *testing.T) {
	srv := mockJellyfin(t, map[string]http.HandlerFunc{
		"/Users/AuthenticateByName": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Contains(t, r.Header.Get("Authorization"), `DeviceId="dev-1"`)
			var body authRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body.Username != "alice" || body.Pw != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(w, AuthResponse{AccessToken: testToken, User: User{ID: testUserID, Name: "alice"}})
		},
	})

	c := New(srv.URL, WithDeviceID("dev-1"))
	_, err := c.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	auth, err := c.Authenticate(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, testToken, auth.AccessToken)
	assert.Equal(t, testUserID, c.UserID())
}

func TestUserViews_Cached(t *testing.T) {
	var calls atomic.Int32
	srv := mockJellyfin(t, map[string]http.HandlerFunc{
		"/Users/u1/Views": requireToken(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, ItemsResponse{Items: []Item{
				{ID: "lib-movies", Name: "Movies", Type: "CollectionFolder", CollectionType: "movies", ImageTags: map[string]string{"Primary": "p"}},
				{ID: "lib-shows", Name: "Shows", Type: "CollectionFolder", CollectionType: "tvshows"},
			}})
		}),
	})

	c := newTestClient(srv.URL)
	views, err := c.UserViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Movies", views[0].Name)

	_, err = c.UserViews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "second call should hit cache")
}

func TestUserViews_CacheDisabled(t *testing.T) {
	var calls atomic.Int32
	srv := mockJellyfin(t, map[string]http.HandlerFunc{
		"/Users/u1/Views": requireToken(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			writeJSON(w, ItemsResponse{})
		}),
	})

	c := New(srv.URL, WithToken(testToken), WithUserID(testUserID), WithCacheTTL(0))
	for i := 0; i < 3; i++ {
		_, err := c.UserViews(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestResumeItems(t *testing.T) {
	pct := 42.5
	srv := mockJellyfin(t, map[string]http.HandlerFunc{
		"/Users/u1/Items/Resume": requireToken(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "12", r.URL.Query().Get("Limit"))
			assert.Equal(t, "Video", r.URL.Query().Get("MediaTypes"))
			writeJSON(w, ItemsResponse{Items: []Item{
				{ID: "e1", Name: "Pilot", Type: "Episode", SeriesID: "s1", SeriesName: "Show", UserData: &UserData{PlayedPercentage: &pct}},
			}})
		}),
	})

	items, err := newTestClient(srv.URL).ResumeItems(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, items, 1)
	m := items[0].MediaItem()
	assert.Equal(t, imageref.KindEpisode, m.Kind)
	assert.Equal(t, imageref.SourceLive, m.Source)
	require.NotNil(t, m.PlayedPercentage)
	assert.InDelta(t, 42.5, *m.PlayedPercentage, 0.001)
}

func TestNextUp(t *testing.T) {
	srv := mockJellyfin(t, map[string]http.HandlerFunc{
		"/Shows/NextUp": requireToken(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, testUserID, r.URL.Query().Get("UserId"))
			assert.Empty(t, r.URL.Query().Get("Limit"))
			writeJSON(w, ItemsResponse{Items: []Item{{ID: "e2", Type: "Episode", SeriesID: "s1"}}})
		}),
	})

	items, err := newTestClient(srv.URL).NextUp(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestLatestItems(t *testing.T) {
	srv := mockJellyfin(t, map[string]http.HandlerFunc{
		"/Users/u1/Items/Latest": requireToken(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "lib-movies", r.URL.Query().Get("ParentId"))
			writeJSON(w, []Item{{ID: "m1", Type: "Movie"}, {ID: "m2", Type: "Movie"}})
		}),
	})

	items, err := newTestClient(srv.URL).LatestItems(context.Background(), "lib-movies", 16)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestItem(t *testing.T) {
	srv := mockJellyfin(t, map[string]http.HandlerFunc{
		"/Users/u1/Items/" + movieID: requireToken(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, Item{ID: movieID, Name: "Heat", Type: "Movie", BackdropImageTags: []string{"b"}, ImageTags: map[string]string{"Primary": "p"}})
		}),
	})
	c := newTestClient(srv.URL)

	item, err := c.Item(context.Background(), movieID)
	require.NoError(t, err)
	ref := imageref.Resolve(item.MediaItem(), imageref.Wide)
	assert.Equal(t, imageref.Reference{TargetID: movieID, Category: imageref.Backdrop}, ref)

	_, err = c.Item(context.Background(), "ffffffffffffffffffffffffffffffff")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Item(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestErrors(t *testing.T) {
	srv := mockJellyfin(t, map[string]http.HandlerFunc{
		"/Users/u1/Items/Resume": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		},
		"/Shows/NextUp": requireToken(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}),
	})

	_, err := New(srv.URL).ResumeItems(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	c := newTestClient(srv.URL)
	_, err = c.ResumeItems(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, err = c.NextUp(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")

	_, err = New(srv.URL, WithToken("bad"), WithUserID(testUserID)).NextUp(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPing_Timeout(t *testing.T) {
	srv := mockJellyfin(t, map[string]http.HandlerFunc{
		"/System/Info/Public": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			writeJSON(w, map[string]string{"ServerName": "jf"})
		},
	})

	c := New(srv.URL, WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	assert.Error(t, c.Ping(context.Background()))

	ok := New(srv.URL)
	assert.NoError(t, ok.Ping(context.Background()))
}

func TestItem_MediaItemCopiesTags(t *testing.T) {
	it := Item{ID: "x", Type: "Series", ImageTags: map[string]string{"Primary": "p", "Logo": "l"}}
	m := it.MediaItem()
	assert.Equal(t, "p", m.ImageTags[imageref.Primary])
	assert.Equal(t, "l", m.ImageTags[imageref.Logo])

	empty := Item{ID: "y", Type: "Episode"}.MediaItem()
	assert.Nil(t, empty.ImageTags)
	assert.Nil(t, empty.PlayedPercentage)

	assert.Len(t, MediaItems([]Item{it, {ID: "z"}}), 2)
}

func TestItem_TaglessLiveItemsFallBackToSeries(t *testing.T) {
	tests := []struct {
		name string
		body string
		o    imageref.Orientation
		want imageref.Reference
	}{
		{"episode wide", `{"Id":"A3","Type":"Episode","SeriesId":"S1"}`, imageref.Wide, imageref.Reference{TargetID: "S1", Category: imageref.Backdrop}},
		{"episode tall", `{"Id":"A3","Type":"Episode","SeriesId":"S1"}`, imageref.Tall, imageref.Reference{TargetID: "S1", Category: imageref.Primary}},
		{"season tall", `{"Id":"A4","Type":"Season","SeriesId":"S1","ImageTags":{}}`, imageref.Tall, imageref.Reference{TargetID: "S1", Category: imageref.Primary}},
		{"tagged season tall", `{"Id":"A5","Type":"Season","SeriesId":"S1","ImageTags":{"Primary":"p"}}`, imageref.Tall, imageref.Reference{TargetID: "A5", Category: imageref.Primary}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it Item
			require.NoError(t, json.Unmarshal([]byte(tt.body), &it))
			assert.Equal(t, tt.want, imageref.Resolve(it.MediaItem(), tt.o))
		})
	}
}
