package mangadex

import (
	"net/url"
	"sort"
	"strings"

	"github.com/satoriell/mediatrack/internal/metadata"
	"github.com/satoriell/mediatrack/internal/models"
)

// LocalizedText picks a value from a language-keyed map: Turkish first, then
// English, then any non-empty value in deterministic key order.
func LocalizedText(values map[string]string) string {
	if v := values["tr"]; v != "" {
		return v
	}
	if v := values["en"]; v != "" {
		return v
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if values[k] != "" {
			return values[k]
		}
	}
	return ""
}

// ClassifyKind decides whether a manga record is really a webtoon, based on
// its lowercased English tag names
func ClassifyKind(tagNames []string) models.Kind {
	for _, name := range tagNames {
		switch name {
		case "webtoon", "long strip", "manhwa":
			return models.KindWebtoon
		}
	}
	return models.KindManga
}

// MapDetails normalizes one detailed manga record. Returns nil when the
// record carries no id.
func MapDetails(m *manga, coverBaseURL string) *metadata.ItemFields {
	if m == nil || m.ID == "" {
		return nil
	}

	tagNames := englishTagNames(m.Attributes.Tags)

	return &metadata.ItemFields{
		MangaDexID:    m.ID,
		Kind:          ClassifyKind(tagNames),
		Title:         displayTitle(m),
		CoverImageURL: coverURL(coverBaseURL, m.ID, coverFileName(m.Relationships)),
		Notes:         LocalizedText(m.Attributes.Description),
		Status:        models.StatusPlanToWatch,
		Author:        joinRelationshipNames(m.Relationships, "author"),
		Artist:        joinRelationshipNames(m.Relationships, "artist"),
		TagList:       tagNames,
		Tags:          strings.Join(tagNames, ", "),
	}
}

func mapSearchResult(m *manga, coverBaseURL string) *SearchResult {
	if m.ID == "" {
		return nil
	}
	return &SearchResult{
		ID:                 m.ID,
		Title:              displayTitle(m),
		DescriptionSnippet: snippet(LocalizedText(m.Attributes.Description)),
		Year:               m.Attributes.Year,
		Status:             m.Attributes.Status,
		CoverURL:           coverURL(coverBaseURL, m.ID, coverFileName(m.Relationships)),
		Authors:            joinRelationshipNames(m.Relationships, "author"),
		Artists:            joinRelationshipNames(m.Relationships, "artist"),
	}
}

// displayTitle falls back to the id so search rows are never blank
func displayTitle(m *manga) string {
	if title := LocalizedText(m.Attributes.Title); title != "" {
		return title
	}
	return "ID: " + m.ID
}

func coverFileName(relationships []relationship) string {
	for _, rel := range relationships {
		if rel.Type == "cover_art" {
			return rel.Attributes.FileName
		}
	}
	return ""
}

func coverURL(base, mangaID, fileName string) string {
	if fileName == "" {
		return ""
	}
	return base + "/covers/" + url.PathEscape(mangaID) + "/" + url.PathEscape(fileName) + ".512.jpg"
}

func joinRelationshipNames(relationships []relationship, relType string) string {
	var names []string
	for _, rel := range relationships {
		if rel.Type == relType && rel.Attributes.Name != "" {
			names = append(names, rel.Attributes.Name)
		}
	}
	return strings.Join(names, ", ")
}

// englishTagNames collects the lowercased English tag names, deduplicated
// and sorted
func englishTagNames(tags []tagEntry) []string {
	seen := make(map[string]bool, len(tags))
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		name := strings.ToLower(tag.Attributes.Name["en"])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func snippet(description string) string {
	runes := []rune(description)
	if len(runes) > 200 {
		return string(runes[:200]) + "..."
	}
	return description
}
