package catalog

import (
	"fmt"

	"github.com/satoriell/mediatrack/internal/models"
)

const dashboardLimit = 5

// Recent returns an owner's newest items of a kind
func Recent[T any, P Entry[T]](db *models.Database, ownerID uint, limit int) ([]T, error) {
	var items []T
	err := db.Conn().
		Where("owner_id = ?", ownerID).
		Order("added_date DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent items: %w", err)
	}
	for i := range items {
		p := P(&items[i])
		p.Base().Progress = p.ProgressPercent()
	}
	return items, nil
}

// TopRated returns an owner's highest rated items of a kind, unrated
// items excluded
func TopRated[T any, P Entry[T]](db *models.Database, ownerID uint, limit int) ([]T, error) {
	var items []T
	err := db.Conn().
		Where("owner_id = ? AND rating IS NOT NULL", ownerID).
		Order("rating DESC, added_date DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top rated items: %w", err)
	}
	for i := range items {
		p := P(&items[i])
		p.Base().Progress = p.ProgressPercent()
	}
	return items, nil
}

// Overview is the dashboard payload: per-kind counts, status totals and the
// latest and highest rated additions of every kind
type Overview struct {
	Counts       map[models.Kind]int64   `json:"counts"`
	Total        int64                   `json:"total"`
	StatusTotals map[models.Status]int64 `json:"status_totals"`

	RecentAnime    []models.Anime   `json:"recent_anime"`
	RecentWebtoons []models.Webtoon `json:"recent_webtoons"`
	RecentManga    []models.Manga   `json:"recent_manga"`
	RecentNovels   []models.Novel   `json:"recent_novels"`

	TopAnime    []models.Anime   `json:"top_anime"`
	TopWebtoons []models.Webtoon `json:"top_webtoons"`
	TopManga    []models.Manga   `json:"top_manga"`
	TopNovels   []models.Novel   `json:"top_novels"`
}

// BuildOverview assembles the dashboard for one owner
func BuildOverview(db *models.Database, ownerID uint) (*Overview, error) {
	overview := &Overview{
		Counts: make(map[models.Kind]int64, len(models.AllKinds)),
	}

	for _, kind := range models.AllKinds {
		count, err := db.CountItems(ownerID, kind)
		if err != nil {
			return nil, err
		}
		overview.Counts[kind] = count
		overview.Total += count
	}

	statusTotals, err := db.StatusCounts(ownerID)
	if err != nil {
		return nil, err
	}
	overview.StatusTotals = statusTotals

	if overview.RecentAnime, err = Recent[models.Anime, *models.Anime](db, ownerID, dashboardLimit); err != nil {
		return nil, err
	}
	if overview.RecentWebtoons, err = Recent[models.Webtoon, *models.Webtoon](db, ownerID, dashboardLimit); err != nil {
		return nil, err
	}
	if overview.RecentManga, err = Recent[models.Manga, *models.Manga](db, ownerID, dashboardLimit); err != nil {
		return nil, err
	}
	if overview.RecentNovels, err = Recent[models.Novel, *models.Novel](db, ownerID, dashboardLimit); err != nil {
		return nil, err
	}

	if overview.TopAnime, err = TopRated[models.Anime, *models.Anime](db, ownerID, dashboardLimit); err != nil {
		return nil, err
	}
	if overview.TopWebtoons, err = TopRated[models.Webtoon, *models.Webtoon](db, ownerID, dashboardLimit); err != nil {
		return nil, err
	}
	if overview.TopManga, err = TopRated[models.Manga, *models.Manga](db, ownerID, dashboardLimit); err != nil {
		return nil, err
	}
	if overview.TopNovels, err = TopRated[models.Novel, *models.Novel](db, ownerID, dashboardLimit); err != nil {
		return nil, err
	}

	return overview, nil
}
