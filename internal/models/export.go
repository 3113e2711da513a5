package models

import (
	"strconv"
	"strings"
	"time"
)

// ExportHeaders is the fixed per-kind CSV column projection
var ExportHeaders = map[Kind][]string{
	KindAnime: {
		"ID", "Title", "Status", "Rating", "Studio",
		"Episodes Watched", "Total Episodes",
		"Start Date", "End Date", "Added Date",
		"Tags", "MAL ID", "Notes", "Cover URL",
	},
	KindWebtoon: {
		"ID", "Title", "Status", "Rating", "Author", "Artist",
		"Chapters Read", "Total Chapters", "Platform",
		"Start Date", "End Date", "Added Date",
		"Tags", "MangaDex ID", "Notes", "Cover URL",
	},
	KindManga: {
		"ID", "Title", "Status", "Rating", "Author", "Artist",
		"Chapters Read", "Volumes Read", "Total Chapters", "Total Volumes",
		"Start Date", "End Date", "Added Date",
		"Tags", "MangaDex ID", "Notes", "Cover URL",
	},
	KindNovel: {
		"ID", "Title", "Status", "Rating", "Author",
		"Chapters Read", "Volumes Read", "Total Chapters", "Total Volumes",
		"Start Date", "End Date", "Added Date",
		"Tags", "MAL ID", "Notes", "Cover URL",
	},
}

// ExportRow renders an Anime as CSV values matching ExportHeaders[KindAnime]
func (a *Anime) ExportRow(loc *time.Location) []string {
	return []string{
		strconv.FormatUint(uint64(a.ID), 10),
		a.Title,
		a.Status.Label(),
		csvIntPtr(a.Rating),
		a.Studio,
		strconv.Itoa(a.EpisodesWatched),
		csvIntPtr(a.TotalEpisodes),
		csvDate(a.StartDate),
		csvDate(a.EndDate),
		csvDateTime(a.AddedDate, loc),
		csvTags(a.Tags),
		csvInt64Ptr(a.MALID),
		a.Notes,
		a.CoverImageURL,
	}
}

// ExportRow renders a Webtoon as CSV values matching ExportHeaders[KindWebtoon]
func (w *Webtoon) ExportRow(loc *time.Location) []string {
	return []string{
		strconv.FormatUint(uint64(w.ID), 10),
		w.Title,
		w.Status.Label(),
		csvIntPtr(w.Rating),
		w.Author,
		w.Artist,
		strconv.Itoa(w.ChaptersRead),
		csvIntPtr(w.TotalChapters),
		w.Platform,
		csvDate(w.StartDate),
		csvDate(w.EndDate),
		csvDateTime(w.AddedDate, loc),
		csvTags(w.Tags),
		csvStrPtr(w.MangaDexID),
		w.Notes,
		w.CoverImageURL,
	}
}

// ExportRow renders a Manga as CSV values matching ExportHeaders[KindManga]
func (m *Manga) ExportRow(loc *time.Location) []string {
	return []string{
		strconv.FormatUint(uint64(m.ID), 10),
		m.Title,
		m.Status.Label(),
		csvIntPtr(m.Rating),
		m.Author,
		m.Artist,
		strconv.Itoa(m.ChaptersRead),
		strconv.Itoa(m.VolumesRead),
		csvIntPtr(m.TotalChapters),
		csvIntPtr(m.TotalVolumes),
		csvDate(m.StartDate),
		csvDate(m.EndDate),
		csvDateTime(m.AddedDate, loc),
		csvTags(m.Tags),
		csvStrPtr(m.MangaDexID),
		m.Notes,
		m.CoverImageURL,
	}
}

// ExportRow renders a Novel as CSV values matching ExportHeaders[KindNovel]
func (n *Novel) ExportRow(loc *time.Location) []string {
	return []string{
		strconv.FormatUint(uint64(n.ID), 10),
		n.Title,
		n.Status.Label(),
		csvIntPtr(n.Rating),
		n.Author,
		strconv.Itoa(n.ChaptersRead),
		strconv.Itoa(n.VolumesRead),
		csvIntPtr(n.TotalChapters),
		csvIntPtr(n.TotalVolumes),
		csvDate(n.StartDate),
		csvDate(n.EndDate),
		csvDateTime(n.AddedDate, loc),
		csvTags(n.Tags),
		csvInt64Ptr(n.MALID),
		n.Notes,
		n.CoverImageURL,
	}
}

// Absent values render as empty strings, never as a "null" literal.

func csvIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func csvInt64Ptr(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func csvStrPtr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func csvDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}

func csvDateTime(v time.Time, loc *time.Location) string {
	if v.IsZero() {
		return ""
	}
	return v.In(loc).Format("2006-01-02 15:04:05")
}

func csvTags(tags []Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}
