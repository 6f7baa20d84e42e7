// Package match finds tiles on a rendered screen by fuzzy title.
package match

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vmunix/homefeed/internal/render"
)

// MinScore is the lowest similarity returned by Find.
const MinScore = 0.70

// Hit is a tile matching a query.
type Hit struct {
	RowID string      `json:"row_id"`
	Tile  render.Tile `json:"tile"`
	Score float64     `json:"score"`
}

var folder = cases.Fold()

// Normalize folds case, strips accents and collapses whitespace and
// punctuation so "Amélie" matches "amelie".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)
	s = folder.String(s)

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Score returns the similarity of query and title in [0, 1]. A title that
// contains the whole query scores at least 0.9.
func Score(query, title string) float64 {
	q, t := Normalize(query), Normalize(title)
	if q == "" || t == "" {
		return 0
	}
	score := float64(edlib.JaroWinklerSimilarity(q, t))
	if strings.Contains(t, q) && score < 0.9 {
		score = 0.9
	}
	return score
}

// Find ranks every tile on screen against query, best first. Tiles that
// appear in several rows are reported once, for their first row. limit <= 0
// means no limit.
func Find(query string, screen render.Screen, limit int) []Hit {
	seen := make(map[string]bool)
	var hits []Hit
	for _, row := range screen.Rows {
		for _, tile := range row.Tiles {
			if seen[tile.ItemID] {
				continue
			}
			score := Score(query, tile.Title)
			if sub := Score(query, tile.Subtitle); sub > score {
				score = sub
			}
			if score < MinScore {
				continue
			}
			seen[tile.ItemID] = true
			hits = append(hits, Hit{RowID: row.ID, Tile: tile, Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
