package catalog

import (
	"testing"

	"github.com/satoriell/mediatrack/internal/models"
)

func TestBuildOverview(t *testing.T) {
	db := newTestDB(t)
	addAnime(t, db, 1, "One", intPtr(9), models.StatusWatching, day(1))
	addAnime(t, db, 1, "Two", nil, models.StatusCompleted, day(2))
	manga := &models.Manga{
		MediaItem: models.MediaItem{OwnerID: 1, Title: "Manga One", Status: models.StatusWatching, AddedDate: day(3)},
	}
	if err := CreateItem[models.Manga](db, manga, nil); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	// Other owners stay invisible
	addAnime(t, db, 2, "Foreign", nil, models.StatusWatching, day(4))

	overview, err := BuildOverview(db, 1)
	if err != nil {
		t.Fatalf("BuildOverview failed: %v", err)
	}

	if overview.Total != 3 {
		t.Errorf("Expected total 3, got %d", overview.Total)
	}
	if overview.Counts[models.KindAnime] != 2 || overview.Counts[models.KindManga] != 1 {
		t.Errorf("Counts mismatch: %v", overview.Counts)
	}
	if overview.Counts[models.KindWebtoon] != 0 || overview.Counts[models.KindNovel] != 0 {
		t.Errorf("Empty kinds must count zero: %v", overview.Counts)
	}
	if overview.StatusTotals[models.StatusWatching] != 2 || overview.StatusTotals[models.StatusCompleted] != 1 {
		t.Errorf("Status totals mismatch: %v", overview.StatusTotals)
	}
	if len(overview.RecentAnime) != 2 || overview.RecentAnime[0].Title != "Two" {
		t.Errorf("Recent anime mismatch: %v", overview.RecentAnime)
	}
	if len(overview.TopAnime) != 1 || overview.TopAnime[0].Title != "One" {
		t.Errorf("Top anime must hold only the rated item: %v", overview.TopAnime)
	}
	if len(overview.TopManga) != 0 {
		t.Errorf("Unrated manga must not appear in top rated: %v", overview.TopManga)
	}
}

func TestTopRatedExcludesUnrated(t *testing.T) {
	db := newTestDB(t)
	addAnime(t, db, 1, "Rated", intPtr(7), models.StatusWatching, day(1))
	addAnime(t, db, 1, "Unrated", nil, models.StatusWatching, day(2))

	items, err := TopRated[models.Anime, *models.Anime](db, 1, 5)
	if err != nil {
		t.Fatalf("TopRated failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Rated" {
		t.Errorf("TopRated mismatch: %v", items)
	}
}
