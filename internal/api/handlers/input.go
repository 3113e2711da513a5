package handlers

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/satoriell/mediatrack/internal/models"
)

const dateLayout = "2006-01-02"

// itemInput is the create/update payload shared by all item kinds. Fields
// that do not apply to the target kind are ignored.
type itemInput struct {
	Title         string   `json:"title" validate:"required,max=255"`
	Status        string   `json:"status"`
	Rating        *int     `json:"rating" validate:"omitempty,gte=0,lte=10"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Notes         string   `json:"notes"`
	CoverImageURL string   `json:"cover_image_url" validate:"omitempty,url,max=500"`
	Tags          []string `json:"tags"`

	MALID      *int64  `json:"mal_id" validate:"omitempty,gt=0"`
	MangaDexID *string `json:"mangadex_id" validate:"omitempty,uuid"`

	Studio   string `json:"studio" validate:"omitempty,max=100"`
	Author   string `json:"author" validate:"omitempty,max=100"`
	Artist   string `json:"artist" validate:"omitempty,max=100"`
	Platform string `json:"platform" validate:"omitempty,max=100"`

	EpisodesWatched int  `json:"episodes_watched" validate:"gte=0"`
	TotalEpisodes   *int `json:"total_episodes" validate:"omitempty,gte=0"`
	ChaptersRead    int  `json:"chapters_read" validate:"gte=0"`
	VolumesRead     int  `json:"volumes_read" validate:"gte=0"`
	TotalChapters   *int `json:"total_chapters" validate:"omitempty,gte=0"`
	TotalVolumes    *int `json:"total_volumes" validate:"omitempty,gte=0"`

	startDate *time.Time
	endDate   *time.Time
}

// validate runs tag and cross-field validation. A non-empty result maps
// offending field names to messages.
func (in *itemInput) validate(v *validator.Validate) map[string]string {
	fields := make(map[string]string)

	// A whitespace-only title must fail the required check
	in.Title = strings.TrimSpace(in.Title)

	if err := v.Struct(in); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				fields[jsonFieldName(fe.Field())] = validationMessage(fe)
			}
		} else {
			fields["_"] = err.Error()
		}
	}

	if in.Status == "" {
		in.Status = string(models.StatusPlanToWatch)
	}
	if !models.Status(in.Status).Valid() {
		fields["status"] = "unknown status"
	}

	in.startDate = parseDateField(in.StartDate, "start_date", fields)
	in.endDate = parseDateField(in.EndDate, "end_date", fields)
	if in.startDate != nil && in.endDate != nil && in.endDate.Before(*in.startDate) {
		fields["end_date"] = "end date must not be before start date"
	}

	if in.TotalEpisodes != nil && in.EpisodesWatched > *in.TotalEpisodes {
		fields["episodes_watched"] = "watched count exceeds total episodes"
	}
	if in.TotalChapters != nil && in.ChaptersRead > *in.TotalChapters {
		fields["chapters_read"] = "read count exceeds total chapters"
	}
	if in.TotalVolumes != nil && in.VolumesRead > *in.TotalVolumes {
		fields["volumes_read"] = "read count exceeds total volumes"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// applyBase copies the shared fields onto an item. validate must have run.
func (in *itemInput) applyBase(base *models.MediaItem) {
	base.Title = in.Title
	base.Status = models.Status(in.Status)
	base.Rating = in.Rating
	base.StartDate = in.startDate
	base.EndDate = in.endDate
	base.Notes = in.Notes
	base.CoverImageURL = in.CoverImageURL
}

func parseDateField(value, name string, fields map[string]string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		fields[name] = "expected YYYY-MM-DD"
		return nil
	}
	return &parsed
}

func jsonFieldName(structField string) string {
	switch structField {
	case "CoverImageURL":
		return "cover_image_url"
	case "MALID":
		return "mal_id"
	case "MangaDexID":
		return "mangadex_id"
	case "EpisodesWatched":
		return "episodes_watched"
	case "TotalEpisodes":
		return "total_episodes"
	case "ChaptersRead":
		return "chapters_read"
	case "VolumesRead":
		return "volumes_read"
	case "TotalChapters":
		return "total_chapters"
	case "TotalVolumes":
		return "total_volumes"
	case "StartDate":
		return "start_date"
	case "EndDate":
		return "end_date"
	default:
		return strings.ToLower(structField)
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "value too long"
	case "gte":
		return "must not be negative"
	case "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be positive"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	default:
		return "invalid value"
	}
}
