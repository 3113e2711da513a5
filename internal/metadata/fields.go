// Package metadata defines the unified field set the normalization mappers
// produce from heterogeneous provider payloads. It is the provider-neutral
// contract consumed by entity creation.
package metadata

import "github.com/satoriell/mediatrack/internal/models"

// ItemFields is one normalized provider record, directly usable as initial
// values for the corresponding item kind. Exactly one of MangaDexID/MALID is
// populated depending on the source provider.
type ItemFields struct {
	MangaDexID string      `json:"mangadex_id,omitempty"`
	MALID      int64       `json:"mal_id,omitempty"`
	Kind       models.Kind `json:"kind"`

	Title         string        `json:"title"`
	CoverImageURL string        `json:"cover_image_url"`
	Notes         string        `json:"notes"`
	Status        models.Status `json:"status"`
	Rating        *int          `json:"rating"`

	// Multi-value provider relationships, flattened to comma-joined names.
	// Absent relationships are empty strings, never null.
	Author string `json:"author"`
	Artist string `json:"artist"`
	Studio string `json:"studio"`

	Platform string `json:"platform"`

	TotalEpisodes *int `json:"total_episodes,omitempty"`
	TotalChapters *int `json:"total_chapters,omitempty"`
	TotalVolumes  *int `json:"total_volumes,omitempty"`

	// Classifier-derived tag names (manga-like provider only): sorted,
	// lowercased English names plus their comma-joined form.
	TagList []string `json:"tag_list,omitempty"`
	Tags    string   `json:"tags,omitempty"`
}
