package offline

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/homefeed/internal/migrations"
	"github.com/vmunix/homefeed/pkg/imageref"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "open db")
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Apply(db), "apply schema")
	return db
}

func ptr[T any](v T) *T {
	return &v
}

func episode(id string, at time.Time) *Item {
	return &Item{
		MediaItem: imageref.MediaItem{
			ID:         id,
			Name:       "Episode " + id,
			Kind:       imageref.KindEpisode,
			SeriesID:   "S1",
			SeriesName: "Show",
			ImageTags:  map[imageref.ImageCategory]string{imageref.Primary: "dropped"},
		},
		Path:         "/downloads/" + id + ".mkv",
		Size:         1 << 30,
		DownloadedAt: at,
	}
}

func TestStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))

	it := episode("E1", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	it.PlayedPercentage = ptr(12.5)
	require.NoError(t, store.Save(ctx, it))
	assert.Equal(t, imageref.SourceCached, it.Source)

	got, err := store.Get(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, "Episode E1", got.Name)
	assert.Equal(t, imageref.KindEpisode, got.Kind)
	assert.Equal(t, "S1", got.SeriesID)
	assert.Equal(t, int64(1<<30), got.Size)
	assert.True(t, got.DownloadedAt.Equal(it.DownloadedAt))
	require.NotNil(t, got.PlayedPercentage)
	assert.InDelta(t, 12.5, *got.PlayedPercentage, 0.0001)

	// Tags are not stored, and the item is marked cached.
	assert.Nil(t, got.ImageTags)
	assert.Equal(t, imageref.SourceCached, got.Source)
	assert.Equal(t, imageref.Reference{TargetID: "S1", Category: imageref.Backdrop}, imageref.Resolve(got.MediaItem, imageref.Wide))
}

func TestStore_SaveUpserts(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))

	it := episode("E1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, it))
	it.Name = "Renamed"
	require.NoError(t, store.Save(ctx, it))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := store.Get(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestStore_SaveDefaultsTimestamp(t *testing.T) {
	store := NewStore(setupTestDB(t))
	it := episode("E1", time.Time{})
	require.NoError(t, store.Save(context.Background(), it))
	assert.False(t, it.DownloadedAt.IsZero())
}

func TestStore_NegativeSize(t *testing.T) {
	store := NewStore(setupTestDB(t))
	it := episode("E1", time.Now())
	it.Size = -1
	err := store.Save(context.Background(), it)
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestStore_ListOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, episode("old", base)))
	require.NoError(t, store.Save(ctx, episode("new", base.Add(time.Hour))))

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "old", items[1].ID)

	media, err := store.MediaItems(ctx)
	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, "new", media[0].ID)
	assert.Nil(t, media[0].PlayedPercentage)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	require.NoError(t, store.Save(ctx, episode("E1", time.Now())))

	require.NoError(t, store.Delete(ctx, "E1"))
	_, err := store.Get(ctx, "E1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "E1"), ErrNotFound)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "offline.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	n, err := NewStore(db).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
