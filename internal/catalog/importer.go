package catalog

import (
	"context"

	"github.com/satoriell/mediatrack/internal/metadata"
	"github.com/satoriell/mediatrack/internal/models"
	"github.com/satoriell/mediatrack/internal/services/jikan"
	"github.com/satoriell/mediatrack/internal/services/mangadex"
	"github.com/sirupsen/logrus"
)

// Importer creates catalog items from external provider records, deduplicated
// by external id across the whole catalog
type Importer struct {
	db       *models.Database
	mangadex *mangadex.Client
	jikan    *jikan.Client
	logger   *logrus.Logger
}

// NewImporter creates an importer over both providers
func NewImporter(db *models.Database, mangadexClient *mangadex.Client, jikanClient *jikan.Client, logger *logrus.Logger) *Importer {
	return &Importer{
		db:       db,
		mangadex: mangadexClient,
		jikan:    jikanClient,
		logger:   logger,
	}
}

// ImportResult reports what an import resolved to. AlreadyExists marks a
// duplicate: ID and Title then describe the item already tracked.
type ImportResult struct {
	Kind          models.Kind `json:"kind"`
	ID            uint        `json:"id"`
	Title         string      `json:"title"`
	AlreadyExists bool        `json:"already_exists"`
}

// PreviewMangaDex fetches and normalizes a MangaDex record without storing it
func (im *Importer) PreviewMangaDex(ctx context.Context, mangadexID string) (*metadata.ItemFields, error) {
	return im.mangadex.GetDetails(ctx, mangadexID)
}

// PreviewAnime fetches and normalizes a Jikan anime record without storing it
func (im *Importer) PreviewAnime(ctx context.Context, malID int64) (*metadata.ItemFields, error) {
	return im.jikan.GetAnimeDetails(ctx, malID)
}

// PreviewNovel fetches and normalizes a Jikan light novel record without
// storing it
func (im *Importer) PreviewNovel(ctx context.Context, malID int64) (*metadata.ItemFields, error) {
	return im.jikan.GetNovelDetails(ctx, malID)
}

// ImportMangaDex fetches a MangaDex record and stores it as a manga or a
// webtoon depending on its tags. An id already tracked in either kind is
// reported instead of duplicated.
func (im *Importer) ImportMangaDex(ctx context.Context, ownerID uint, mangadexID string) (*ImportResult, error) {
	fields, err := im.mangadex.GetDetails(ctx, mangadexID)
	if err != nil {
		return nil, err
	}

	existing, err := im.db.FindByMangaDexID(ownerID, fields.MangaDexID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		im.logger.WithFields(logrus.Fields{
			"mangadex_id": fields.MangaDexID,
			"kind":        existing.Kind,
			"item_id":     existing.ID,
		}).Info("MangaDex id already tracked")
		return &ImportResult{Kind: existing.Kind, ID: existing.ID, Title: existing.Title, AlreadyExists: true}, nil
	}

	if fields.Kind == models.KindWebtoon {
		item := webtoonFromFields(ownerID, fields)
		if err := CreateItem[models.Webtoon](im.db, item, fields.TagList); err != nil {
			return nil, err
		}
		return &ImportResult{Kind: models.KindWebtoon, ID: item.ID, Title: item.Title}, nil
	}

	item := mangaFromFields(ownerID, fields)
	if err := CreateItem[models.Manga](im.db, item, fields.TagList); err != nil {
		return nil, err
	}
	return &ImportResult{Kind: models.KindManga, ID: item.ID, Title: item.Title}, nil
}

// ImportAnime fetches a Jikan anime record and stores it
func (im *Importer) ImportAnime(ctx context.Context, ownerID uint, malID int64) (*ImportResult, error) {
	fields, err := im.jikan.GetAnimeDetails(ctx, malID)
	if err != nil {
		return nil, err
	}

	existing, err := im.db.FindByMALID(ownerID, models.KindAnime, fields.MALID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		im.logger.WithFields(logrus.Fields{"mal_id": fields.MALID, "item_id": existing.ID}).Info("MAL id already tracked")
		return &ImportResult{Kind: models.KindAnime, ID: existing.ID, Title: existing.Title, AlreadyExists: true}, nil
	}

	item := animeFromFields(ownerID, fields)
	if err := CreateItem[models.Anime](im.db, item, nil); err != nil {
		return nil, err
	}
	return &ImportResult{Kind: models.KindAnime, ID: item.ID, Title: item.Title}, nil
}

// ImportNovel fetches a Jikan light novel record and stores it
func (im *Importer) ImportNovel(ctx context.Context, ownerID uint, malID int64) (*ImportResult, error) {
	fields, err := im.jikan.GetNovelDetails(ctx, malID)
	if err != nil {
		return nil, err
	}

	existing, err := im.db.FindByMALID(ownerID, models.KindNovel, fields.MALID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		im.logger.WithFields(logrus.Fields{"mal_id": fields.MALID, "item_id": existing.ID}).Info("MAL id already tracked")
		return &ImportResult{Kind: models.KindNovel, ID: existing.ID, Title: existing.Title, AlreadyExists: true}, nil
	}

	item := novelFromFields(ownerID, fields)
	if err := CreateItem[models.Novel](im.db, item, nil); err != nil {
		return nil, err
	}
	return &ImportResult{Kind: models.KindNovel, ID: item.ID, Title: item.Title}, nil
}

func baseFromFields(ownerID uint, f *metadata.ItemFields) models.MediaItem {
	return models.MediaItem{
		OwnerID:       ownerID,
		Title:         f.Title,
		Status:        f.Status,
		Rating:        f.Rating,
		Notes:         f.Notes,
		CoverImageURL: f.CoverImageURL,
	}
}

func animeFromFields(ownerID uint, f *metadata.ItemFields) *models.Anime {
	malID := f.MALID
	return &models.Anime{
		MediaItem:     baseFromFields(ownerID, f),
		MALID:         &malID,
		Studio:        f.Studio,
		TotalEpisodes: f.TotalEpisodes,
	}
}

func novelFromFields(ownerID uint, f *metadata.ItemFields) *models.Novel {
	malID := f.MALID
	return &models.Novel{
		MediaItem:     baseFromFields(ownerID, f),
		MALID:         &malID,
		Author:        f.Author,
		TotalChapters: f.TotalChapters,
		TotalVolumes:  f.TotalVolumes,
	}
}

func mangaFromFields(ownerID uint, f *metadata.ItemFields) *models.Manga {
	id := f.MangaDexID
	return &models.Manga{
		MediaItem:  baseFromFields(ownerID, f),
		MangaDexID: &id,
		Author:     f.Author,
		Artist:     f.Artist,
	}
}

func webtoonFromFields(ownerID uint, f *metadata.ItemFields) *models.Webtoon {
	id := f.MangaDexID
	return &models.Webtoon{
		MediaItem:  baseFromFields(ownerID, f),
		MangaDexID: &id,
		Author:     f.Author,
		Artist:     f.Artist,
		Platform:   f.Platform,
	}
}
