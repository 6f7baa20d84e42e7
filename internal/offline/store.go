// Package offline stores metadata for items downloaded for offline playback.
//
// Image tags are never persisted, so every item read back is marked as
// cached metadata and the image resolver falls back accordingly.
package offline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/homefeed/internal/migrations"
	"github.com/vmunix/homefeed/pkg/imageref"
)

var (
	// ErrNotFound indicates the item is not in the store.
	ErrNotFound = errors.New("not found")

	// ErrConstraint indicates a check constraint violation.
	ErrConstraint = errors.New("constraint violation")
)

// Item is a downloaded media item.
type Item struct {
	imageref.MediaItem
	Path         string
	Size         int64
	DownloadedAt time.Time
}

// Store provides access to offline items.
type Store struct {
	db *sql.DB
}

// NewStore creates a store on an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (creating if needed) the SQLite database at path and applies
// migrations.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := migrations.Apply(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// mapSQLiteError converts SQLite errors to package errors.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if strings.Contains(err.Error(), "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}

// Save inserts or replaces an item. A zero DownloadedAt is set to now.
func (s *Store) Save(ctx context.Context, it *Item) error {
	if it.DownloadedAt.IsZero() {
		it.DownloadedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO offline_items (id, name, kind, series_id, series_name, played_percentage, path, size_bytes, downloaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			series_id = excluded.series_id,
			series_name = excluded.series_name,
			played_percentage = excluded.played_percentage,
			path = excluded.path,
			size_bytes = excluded.size_bytes,
			downloaded_at = excluded.downloaded_at`,
		it.ID, it.Name, string(it.Kind), it.SeriesID, it.SeriesName, it.PlayedPercentage,
		it.Path, it.Size, it.DownloadedAt,
	)
	if err != nil {
		return fmt.Errorf("save offline item %s: %w", it.ID, mapSQLiteError(err))
	}
	it.Source = imageref.SourceCached
	return nil
}

const selectColumns = `SELECT id, name, kind, series_id, series_name, played_percentage, path, size_bytes, downloaded_at FROM offline_items`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*Item, error) {
	var (
		it   Item
		kind string
		pct  sql.NullFloat64
	)
	if err := row.Scan(&it.ID, &it.Name, &kind, &it.SeriesID, &it.SeriesName, &pct, &it.Path, &it.Size, &it.DownloadedAt); err != nil {
		return nil, err
	}
	it.Kind = imageref.ParseKind(kind)
	it.Source = imageref.SourceCached
	if pct.Valid {
		p := pct.Float64
		it.PlayedPercentage = &p
	}
	return &it, nil
}

// Get retrieves an item by id.
// Returns ErrNotFound if the item does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Item, error) {
	it, err := scanItem(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get offline item %s: %w", id, mapSQLiteError(err))
	}
	return it, nil
}

// List returns all items, most recently downloaded first.
func (s *Store) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY downloaded_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list offline items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan offline item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// MediaItems returns the stored items in List order as resolver items.
func (s *Store) MediaItems(ctx context.Context) ([]imageref.MediaItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]imageref.MediaItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.MediaItem)
	}
	return out, nil
}

// Delete removes an item.
// Returns ErrNotFound if the item does not exist.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM offline_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete offline item %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete offline item %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete offline item %s: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of stored items.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM offline_items").Scan(&n); err != nil {
		return 0, fmt.Errorf("count offline items: %w", err)
	}
	return n, nil
}
