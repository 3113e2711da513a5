package jikan

import (
	"math"
	"strconv"
	"strings"

	"github.com/satoriell/mediatrack/internal/metadata"
	"github.com/satoriell/mediatrack/internal/models"
)

// MapStatus converts a Jikan airing/publishing status into a tracking status.
// Substring rules, first match wins; anything unrecognized defaults to the
// plan-to-watch state.
func MapStatus(jikanStatus string) models.Status {
	lower := strings.ToLower(jikanStatus)
	switch {
	case strings.Contains(lower, "airing"), strings.Contains(lower, "publishing"):
		return models.StatusWatching
	case strings.Contains(lower, "finished"):
		return models.StatusCompleted
	case strings.Contains(lower, "on hiatus"):
		return models.StatusOnHold
	case strings.Contains(lower, "discontinued"):
		return models.StatusDropped
	default:
		return models.StatusPlanToWatch
	}
}

// MapScore converts a 0-10 fractional MAL score to an integer rating.
// Out-of-range scores are dropped, never clamped.
func MapScore(score *float64) *int {
	if score == nil {
		return nil
	}
	if *score < 0 || *score > 10 {
		return nil
	}
	rating := int(math.Round(*score))
	return &rating
}

// MapAnime normalizes one detailed anime record. Returns nil when the record
// is missing or carries no MAL id.
func MapAnime(m *media) *metadata.ItemFields {
	if m == nil || m.MALID == 0 {
		return nil
	}
	return &metadata.ItemFields{
		MALID:         m.MALID,
		Kind:          models.KindAnime,
		Title:         displayTitle(m),
		CoverImageURL: m.Images.JPG.LargeImageURL,
		Notes:         m.Synopsis,
		Status:        MapStatus(m.Status),
		Rating:        MapScore(m.Score),
		Studio:        joinNames(m.Studios),
		TotalEpisodes: m.Episodes,
	}
}

// MapNovel normalizes one detailed light novel record
func MapNovel(m *media) *metadata.ItemFields {
	if m == nil || m.MALID == 0 {
		return nil
	}
	return &metadata.ItemFields{
		MALID:         m.MALID,
		Kind:          models.KindNovel,
		Title:         displayTitle(m),
		CoverImageURL: m.Images.JPG.LargeImageURL,
		Notes:         m.Synopsis,
		Status:        MapStatus(m.Status),
		Rating:        MapScore(m.Score),
		Author:        joinNames(m.Authors),
		TotalChapters: m.Chapters,
		TotalVolumes:  m.Volumes,
	}
}

func mapAnimeResult(m *media) *AnimeResult {
	if m.MALID == 0 {
		return nil
	}
	return &AnimeResult{
		MALID:           m.MALID,
		Title:           displayTitle(m),
		ImageURL:        m.Images.JPG.LargeImageURL,
		Type:            m.Type,
		Episodes:        m.Episodes,
		Score:           m.Score,
		Status:          m.Status,
		SynopsisSnippet: snippet(m.Synopsis),
	}
}

func mapNovelResult(m *media) *NovelResult {
	if m.MALID == 0 {
		return nil
	}
	return &NovelResult{
		MALID:           m.MALID,
		Title:           displayTitle(m),
		ImageURL:        m.Images.JPG.LargeImageURL,
		Type:            m.Type,
		Chapters:        m.Chapters,
		Volumes:         m.Volumes,
		Score:           m.Score,
		Status:          m.Status,
		Author:          joinNames(m.Authors),
		SynopsisSnippet: snippet(m.Synopsis),
	}
}

func displayTitle(m *media) string {
	if m.Title != "" {
		return m.Title
	}
	if m.TitleEnglish != "" {
		return m.TitleEnglish
	}
	return "ID: " + strconv.FormatInt(m.MALID, 10)
}

func joinNames(refs []namedRef) string {
	var names []string
	for _, ref := range refs {
		if ref.Name != "" {
			names = append(names, ref.Name)
		}
	}
	return strings.Join(names, ", ")
}

func snippet(synopsis string) string {
	runes := []rune(synopsis)
	if len(runes) > 150 {
		return string(runes[:150]) + "..."
	}
	return synopsis
}
