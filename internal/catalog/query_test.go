package catalog

import (
	"testing"

	"github.com/satoriell/mediatrack/internal/models"
)

func TestListRatingSortNullsLast(t *testing.T) {
	db := newTestDB(t)
	addAnime(t, db, 1, "Unrated One", nil, models.StatusWatching, day(1))
	addAnime(t, db, 1, "Eight", intPtr(8), models.StatusWatching, day(2))
	addAnime(t, db, 1, "Unrated Two", nil, models.StatusWatching, day(3))
	addAnime(t, db, 1, "Five", intPtr(5), models.StatusWatching, day(4))

	page, err := List[models.Anime, *models.Anime](db, 1, Options{Sort: SortRatingDesc})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"Eight", "Five", "Unrated Two", "Unrated One"}
	if len(page.Items) != len(want) {
		t.Fatalf("Expected %d items, got %d", len(want), len(page.Items))
	}
	for i, title := range want {
		if page.Items[i].Title != title {
			t.Errorf("Position %d: expected %q, got %q", i, title, page.Items[i].Title)
		}
	}
}

func TestListStatusFilter(t *testing.T) {
	db := newTestDB(t)
	addAnime(t, db, 1, "Watching It", nil, models.StatusWatching, day(1))
	addAnime(t, db, 1, "Done", nil, models.StatusCompleted, day(2))

	page, err := List[models.Anime, *models.Anime](db, 1, Options{
		Filters: Filters{Status: models.StatusCompleted},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].Title != "Done" {
		t.Errorf("Status filter mismatch: total=%d items=%v", page.TotalItems, page.Items)
	}
}

func TestListSearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	addAnime(t, db, 1, "Fullmetal Alchemist", nil, models.StatusWatching, day(1))
	addAnime(t, db, 1, "Steins;Gate", nil, models.StatusWatching, day(2))

	page, err := List[models.Anime, *models.Anime](db, 1, Options{
		Filters: Filters{Search: "FULLMETAL"},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].Title != "Fullmetal Alchemist" {
		t.Errorf("Search filter mismatch: total=%d", page.TotalItems)
	}
}

func TestListTagFilterBySlug(t *testing.T) {
	db := newTestDB(t)
	addAnime(t, db, 1, "Tagged", nil, models.StatusWatching, day(1), "Sci-Fi")
	addAnime(t, db, 1, "Untagged", nil, models.StatusWatching, day(2))

	page, err := List[models.Anime, *models.Anime](db, 1, Options{
		Filters: Filters{Tag: "sci-fi"},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].Title != "Tagged" {
		t.Fatalf("Tag filter mismatch: total=%d", page.TotalItems)
	}
	if len(page.Items[0].Tags) != 1 || page.Items[0].Tags[0].Slug != "sci-fi" {
		t.Errorf("Tags not preloaded: %v", page.Items[0].Tags)
	}
}

func TestListPaginationClamp(t *testing.T) {
	db := newTestDB(t)
	for i := 1; i <= PageSize+5; i++ {
		addAnime(t, db, 1, "Show", nil, models.StatusWatching, day(i%28+1))
	}

	// Past the end clamps to the last page
	page, err := List[models.Anime, *models.Anime](db, 1, Options{Page: 99})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Number != 2 || page.TotalPages != 2 {
		t.Errorf("Expected page 2 of 2, got %d of %d", page.Number, page.TotalPages)
	}
	if len(page.Items) != 5 {
		t.Errorf("Expected 5 items on the last page, got %d", len(page.Items))
	}

	// Below the start clamps to the first page
	page, err = List[models.Anime, *models.Anime](db, 1, Options{Page: 0})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Number != 1 || len(page.Items) != PageSize {
		t.Errorf("Expected full first page, got page %d with %d items", page.Number, len(page.Items))
	}
}

func TestListEmptyCatalog(t *testing.T) {
	db := newTestDB(t)
	page, err := List[models.Anime, *models.Anime](db, 1, Options{Page: 3})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Number != 1 || page.TotalPages != 1 || page.TotalItems != 0 {
		t.Errorf("Empty catalog page mismatch: %+v", page)
	}
}

func TestListScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	addAnime(t, db, 1, "Mine", nil, models.StatusWatching, day(1))
	addAnime(t, db, 2, "Theirs", nil, models.StatusWatching, day(2))

	page, err := List[models.Anime, *models.Anime](db, 1, Options{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].Title != "Mine" {
		t.Errorf("Owner scoping mismatch: total=%d", page.TotalItems)
	}
}

func TestListAnnotatesFavoritesAndProgress(t *testing.T) {
	db := newTestDB(t)
	fav := addAnime(t, db, 1, "Favorited", nil, models.StatusWatching, day(1))
	fav.EpisodesWatched = 6
	fav.TotalEpisodes = intPtr(12)
	if err := SaveItem[models.Anime](db, fav, nil); err != nil {
		t.Fatalf("SaveItem failed: %v", err)
	}
	addAnime(t, db, 1, "Plain", nil, models.StatusWatching, day(2))

	if _, err := db.ToggleFavorite(1, models.KindAnime, fav.ID); err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}

	page, err := List[models.Anime, *models.Anime](db, 1, Options{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !page.Favorites[fav.ID] {
		t.Error("Expected favorited item to be flagged")
	}
	for i := range page.Items {
		if page.Items[i].ID == fav.ID {
			if page.Items[i].Progress == nil || *page.Items[i].Progress != 50.0 {
				t.Errorf("Expected 50%% progress, got %v", page.Items[i].Progress)
			}
		} else if page.Items[i].Progress != nil {
			t.Errorf("Expected nil progress without totals, got %v", *page.Items[i].Progress)
		}
	}
}

func TestGetItem(t *testing.T) {
	db := newTestDB(t)
	created := addAnime(t, db, 1, "Monster", intPtr(9), models.StatusCompleted, day(1), "thriller")

	item, err := Get[models.Anime, *models.Anime](db, 1, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if item.Title != "Monster" {
		t.Errorf("Title mismatch: %s", item.Title)
	}
	if len(item.Tags) != 1 || item.Tags[0].Name != "thriller" {
		t.Errorf("Tags not loaded: %v", item.Tags)
	}

	// Another owner's id behaves like a missing one
	if _, err := Get[models.Anime, *models.Anime](db, 2, created.ID); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound for foreign owner, got %v", err)
	}
	if _, err := Get[models.Anime, *models.Anime](db, 1, 9999); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestSaveItemReplacesTags(t *testing.T) {
	db := newTestDB(t)
	item := addAnime(t, db, 1, "Trigun", nil, models.StatusWatching, day(1), "action", "space")

	if err := SaveItem[models.Anime](db, item, []string{"western"}); err != nil {
		t.Fatalf("SaveItem failed: %v", err)
	}

	reloaded, err := Get[models.Anime, *models.Anime](db, 1, item.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(reloaded.Tags) != 1 || reloaded.Tags[0].Name != "western" {
		t.Errorf("Expected tags replaced with western, got %v", reloaded.Tags)
	}

	if err := SaveItem[models.Anime](db, reloaded, nil); err != nil {
		t.Fatalf("SaveItem failed: %v", err)
	}
	cleared, err := Get[models.Anime, *models.Anime](db, 1, item.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(cleared.Tags) != 0 {
		t.Errorf("Expected tags cleared, got %v", cleared.Tags)
	}
}

func TestCreateDuplicateExternalID(t *testing.T) {
	db := newTestDB(t)
	first := &models.Webtoon{
		MediaItem:  models.MediaItem{OwnerID: 1, Title: "Tower of God", Status: models.StatusWatching},
		MangaDexID: strPtr("6dbb45d2-8f55-4a04-b0e9-8fb36c3d6c0a"),
	}
	if err := CreateItem[models.Webtoon](db, first, nil); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	dup := &models.Webtoon{
		MediaItem:  models.MediaItem{OwnerID: 1, Title: "Tower of God Again", Status: models.StatusWatching},
		MangaDexID: strPtr("6dbb45d2-8f55-4a04-b0e9-8fb36c3d6c0a"),
	}
	if err := CreateItem[models.Webtoon](db, dup, nil); err != ErrDuplicate {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
}

func TestUserTagVocabulary(t *testing.T) {
	db := newTestDB(t)
	addAnime(t, db, 1, "A", nil, models.StatusWatching, day(1), "mecha", "drama")
	addAnime(t, db, 1, "B", nil, models.StatusWatching, day(2), "drama")
	addAnime(t, db, 2, "C", nil, models.StatusWatching, day(3), "isekai")

	tags, err := db.UserTags(1, models.KindAnime)
	if err != nil {
		t.Fatalf("UserTags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Expected 2 distinct tags, got %d", len(tags))
	}
	if tags[0].Name != "drama" || tags[1].Name != "mecha" {
		t.Errorf("Expected alphabetical [drama mecha], got %v", tags)
	}
}
