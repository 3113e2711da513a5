package jikan

import (
	"testing"

	"github.com/satoriell/mediatrack/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestMapStatus(t *testing.T) {
	cases := []struct {
		jikan string
		want  models.Status
	}{
		{"Currently Airing", models.StatusWatching},
		{"Publishing", models.StatusWatching},
		{"Finished Airing", models.StatusCompleted},
		{"Finished", models.StatusCompleted},
		{"On Hiatus", models.StatusOnHold},
		{"Discontinued", models.StatusDropped},
		{"Not yet aired", models.StatusPlanToWatch},
		{"", models.StatusPlanToWatch},
	}
	for _, tc := range cases {
		if got := MapStatus(tc.jikan); got != tc.want {
			t.Errorf("MapStatus(%q): expected %s, got %s", tc.jikan, tc.want, got)
		}
	}
}

func TestMapScore(t *testing.T) {
	if got := MapScore(nil); got != nil {
		t.Errorf("Expected nil for missing score, got %v", *got)
	}

	if got := MapScore(floatPtr(7.4)); got == nil || *got != 7 {
		t.Errorf("Expected 7, got %v", got)
	}
	if got := MapScore(floatPtr(8.6)); got == nil || *got != 9 {
		t.Errorf("Expected 9, got %v", got)
	}

	// Out-of-range scores are dropped, not clamped
	if got := MapScore(floatPtr(10.6)); got != nil {
		t.Errorf("Expected nil for 10.6, got %v", *got)
	}
	if got := MapScore(floatPtr(-1)); got != nil {
		t.Errorf("Expected nil for -1, got %v", *got)
	}

	// Boundaries are inclusive
	if got := MapScore(floatPtr(10)); got == nil || *got != 10 {
		t.Errorf("Expected 10, got %v", got)
	}
	if got := MapScore(floatPtr(0)); got == nil || *got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
}

func TestMapAnime(t *testing.T) {
	m := &media{
		MALID:    1,
		Title:    "Cowboy Bebop",
		Type:     "TV",
		Episodes: intPtr(26),
		Score:    floatPtr(8.75),
		Status:   "Finished Airing",
		Synopsis: "In the year 2071, bounty hunters chase criminals across the solar system.",
		Studios:  []namedRef{{Name: "Sunrise"}},
	}
	m.Images.JPG.LargeImageURL = "https://cdn.myanimelist.net/images/anime/4/19644l.jpg"

	fields := MapAnime(m)
	if fields == nil {
		t.Fatal("Expected mapped fields, got nil")
	}
	if fields.MALID != 1 {
		t.Errorf("MAL id mismatch: %d", fields.MALID)
	}
	if fields.Kind != models.KindAnime {
		t.Errorf("Expected anime kind, got %s", fields.Kind)
	}
	if fields.Status != models.StatusCompleted {
		t.Errorf("Expected Completed, got %s", fields.Status)
	}
	if fields.Rating == nil || *fields.Rating != 9 {
		t.Errorf("Expected rating 9, got %v", fields.Rating)
	}
	if fields.Studio != "Sunrise" {
		t.Errorf("Studio mismatch: %s", fields.Studio)
	}
	if fields.TotalEpisodes == nil || *fields.TotalEpisodes != 26 {
		t.Errorf("Episode count mismatch: %v", fields.TotalEpisodes)
	}
	if fields.CoverImageURL != "https://cdn.myanimelist.net/images/anime/4/19644l.jpg" {
		t.Errorf("Cover mismatch: %s", fields.CoverImageURL)
	}
}

func TestMapNovel(t *testing.T) {
	m := &media{
		MALID:    21479,
		Title:    "Sword Art Online",
		Type:     "Light Novel",
		Chapters: intPtr(96),
		Volumes:  intPtr(28),
		Status:   "Publishing",
		Authors:  []namedRef{{Name: "Kawahara, Reki"}, {Name: "abec"}},
	}

	fields := MapNovel(m)
	if fields == nil {
		t.Fatal("Expected mapped fields, got nil")
	}
	if fields.Kind != models.KindNovel {
		t.Errorf("Expected novel kind, got %s", fields.Kind)
	}
	if fields.Status != models.StatusWatching {
		t.Errorf("Expected Watching for publishing, got %s", fields.Status)
	}
	if fields.Author != "Kawahara, Reki, abec" {
		t.Errorf("Author mismatch: %s", fields.Author)
	}
	if fields.TotalChapters == nil || *fields.TotalChapters != 96 {
		t.Errorf("Chapter count mismatch: %v", fields.TotalChapters)
	}
	if fields.TotalVolumes == nil || *fields.TotalVolumes != 28 {
		t.Errorf("Volume count mismatch: %v", fields.TotalVolumes)
	}
	if fields.Rating != nil {
		t.Errorf("Expected no rating without score, got %v", *fields.Rating)
	}
}

func TestMapMissingRecord(t *testing.T) {
	if MapAnime(nil) != nil {
		t.Error("Expected nil for nil record")
	}
	if MapAnime(&media{}) != nil {
		t.Error("Expected nil for record without mal_id")
	}
	if MapNovel(&media{}) != nil {
		t.Error("Expected nil for record without mal_id")
	}
}

func TestDisplayTitleFallbacks(t *testing.T) {
	m := &media{MALID: 42, TitleEnglish: "English Title"}
	if got := displayTitle(m); got != "English Title" {
		t.Errorf("Expected english fallback, got %q", got)
	}
	m = &media{MALID: 42}
	if got := displayTitle(m); got != "ID: 42" {
		t.Errorf("Expected id fallback, got %q", got)
	}
}
