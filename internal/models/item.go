package models

import "time"

// MediaItem holds the fields shared by all four tracked item kinds.
// It is embedded into each concrete model so every kind maps to its own table.
type MediaItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OwnerID uint `gorm:"index;not null" json:"owner_id"`

	Title  string `gorm:"size:255;not null" json:"title"`
	Status Status `gorm:"size:20;not null;default:'Plan to Watch'" json:"status"`

	// Rating is nil when the item has not been rated; 0-10 otherwise
	Rating *int `json:"rating"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	Notes         string `json:"notes"`
	CoverImageURL string `gorm:"size:500" json:"cover_image_url"`

	// AddedDate is set at creation and never updated afterwards
	AddedDate time.Time `gorm:"autoCreateTime;<-:create" json:"added_date"`

	// Progress is derived via ProgressPercent before responses are written
	Progress *float64 `gorm:"-" json:"progress_percent"`

	// Favorited is resolved from the Favorite table before responses are
	// written, never stored on the item itself
	Favorited bool `gorm:"-" json:"favorited"`
}

// Base returns the embedded shared fields
func (m *MediaItem) Base() *MediaItem { return m }

// Anime is a tracked TV/film animation entry (Jikan-sourced)
type Anime struct {
	MediaItem

	MALID *int64 `gorm:"column:mal_id;uniqueIndex" json:"mal_id"`

	Studio          string `gorm:"size:100" json:"studio"`
	EpisodesWatched int    `gorm:"default:0" json:"episodes_watched"`
	TotalEpisodes   *int   `json:"total_episodes"`

	Tags []Tag `gorm:"many2many:anime_tags;" json:"tags"`
}

func (Anime) TableName() string { return "animes" }

// Kind returns the registry discriminant for Anime
func (*Anime) Kind() Kind { return KindAnime }

// ProgressPercent derives completion from watched vs total episodes
func (a *Anime) ProgressPercent() *float64 {
	return progressPercent(a.EpisodesWatched, a.TotalEpisodes, 0, nil)
}

// Webtoon is a tracked episodic-strip entry (MangaDex-sourced)
type Webtoon struct {
	MediaItem

	MangaDexID *string `gorm:"column:mangadex_id;size:36;uniqueIndex" json:"mangadex_id"`

	Author        string `gorm:"size:100" json:"author"`
	Artist        string `gorm:"size:100" json:"artist"`
	ChaptersRead  int    `gorm:"default:0" json:"chapters_read"`
	TotalChapters *int   `json:"total_chapters"`
	Platform      string `gorm:"size:100" json:"platform"`

	Tags []Tag `gorm:"many2many:webtoon_tags;" json:"tags"`
}

func (Webtoon) TableName() string { return "webtoons" }

func (*Webtoon) Kind() Kind { return KindWebtoon }

func (w *Webtoon) ProgressPercent() *float64 {
	return progressPercent(w.ChaptersRead, w.TotalChapters, 0, nil)
}

// Manga is a tracked manga entry (MangaDex-sourced)
type Manga struct {
	MediaItem

	MangaDexID *string `gorm:"column:mangadex_id;size:36;uniqueIndex" json:"mangadex_id"`

	Author        string `gorm:"size:100" json:"author"`
	Artist        string `gorm:"size:100" json:"artist"`
	ChaptersRead  int    `gorm:"default:0" json:"chapters_read"`
	VolumesRead   int    `gorm:"default:0" json:"volumes_read"`
	TotalChapters *int   `json:"total_chapters"`
	TotalVolumes  *int   `json:"total_volumes"`

	Tags []Tag `gorm:"many2many:manga_tags;" json:"tags"`
}

func (Manga) TableName() string { return "mangas" }

func (*Manga) Kind() Kind { return KindManga }

func (m *Manga) ProgressPercent() *float64 {
	return progressPercent(m.ChaptersRead, m.TotalChapters, m.VolumesRead, m.TotalVolumes)
}

// Novel is a tracked light novel entry (Jikan-sourced)
type Novel struct {
	MediaItem

	MALID *int64 `gorm:"column:mal_id;uniqueIndex" json:"mal_id"`

	Author        string `gorm:"size:100" json:"author"`
	ChaptersRead  int    `gorm:"default:0" json:"chapters_read"`
	VolumesRead   int    `gorm:"default:0" json:"volumes_read"`
	TotalChapters *int   `json:"total_chapters"`
	TotalVolumes  *int   `json:"total_volumes"`

	Tags []Tag `gorm:"many2many:novel_tags;" json:"tags"`
}

func (Novel) TableName() string { return "novels" }

func (*Novel) Kind() Kind { return KindNovel }

func (n *Novel) ProgressPercent() *float64 {
	return progressPercent(n.ChaptersRead, n.TotalChapters, n.VolumesRead, n.TotalVolumes)
}

// progressPercent computes the completion ratio. Chapter/episode progress
// takes priority; volume progress is the fallback when no chapter-like total
// is known. Returns nil when neither total is a positive number.
func progressPercent(current int, total *int, volCurrent int, volTotal *int) *float64 {
	if total != nil && *total > 0 {
		return ratio(current, *total)
	}
	if volTotal != nil && *volTotal > 0 {
		return ratio(volCurrent, *volTotal)
	}
	return nil
}

func ratio(current, total int) *float64 {
	if current < 0 {
		current = 0
	}
	p := float64(current) / float64(total) * 100
	if p > 100 {
		p = 100
	}
	return &p
}
