package models

import "fmt"

// Status represents the tracking state of a catalog item
type Status string

const (
	StatusWatching    Status = "Watching"
	StatusCompleted   Status = "Completed"
	StatusOnHold      Status = "On Hold"
	StatusDropped     Status = "Dropped"
	StatusPlanToWatch Status = "Plan to Watch"
)

// AllStatuses lists the allowed statuses in display order
var AllStatuses = []Status{
	StatusWatching,
	StatusCompleted,
	StatusOnHold,
	StatusDropped,
	StatusPlanToWatch,
}

// Valid reports whether s is one of the allowed statuses
func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the human-facing label for the status
func (s Status) Label() string {
	switch s {
	case StatusWatching:
		return "Watching/Reading"
	case StatusCompleted:
		return "Completed"
	case StatusOnHold:
		return "On Hold"
	case StatusDropped:
		return "Dropped"
	case StatusPlanToWatch:
		return "Plan to Watch/Read"
	default:
		return string(s)
	}
}

// Kind identifies one of the four tracked item categories
type Kind string

const (
	KindAnime   Kind = "anime"
	KindWebtoon Kind = "webtoon"
	KindManga   Kind = "manga"
	KindNovel   Kind = "novel"
)

// AllKinds lists the tracked item kinds
var AllKinds = []Kind{KindAnime, KindWebtoon, KindManga, KindNovel}

// ParseKind converts a path/query value into a Kind
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindAnime, KindWebtoon, KindManga, KindNovel:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}
