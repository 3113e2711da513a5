package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/satoriell/mediatrack/internal/models"
)

func newTestDB(t *testing.T) *models.Database {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// addAnime stores one anime with a deterministic added date so ordering
// assertions are stable
func addAnime(t *testing.T, db *models.Database, ownerID uint, title string, rating *int, status models.Status, added time.Time, tags ...string) *models.Anime {
	t.Helper()
	item := &models.Anime{
		MediaItem: models.MediaItem{
			OwnerID:   ownerID,
			Title:     title,
			Status:    status,
			Rating:    rating,
			AddedDate: added,
		},
	}
	if err := CreateItem[models.Anime](db, item, tags); err != nil {
		t.Fatalf("Failed to create %q: %v", title, err)
	}
	return item
}

func day(n int) time.Time {
	return time.Date(2024, 1, n, 12, 0, 0, 0, time.UTC)
}
