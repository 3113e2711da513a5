// Package catalog implements the list/detail/export/import operations shared
// by all four item kinds. The operations are generic over the concrete model
// types so each kind keeps its own table and columns without duplicating the
// query logic.
package catalog

import (
	"errors"
	"time"

	"github.com/satoriell/mediatrack/internal/models"
)

// Entry is the constraint every tracked model satisfies through its pointer
// type. The *T element lets the generic functions convert &items[i] into the
// method set of the concrete model.
type Entry[T any] interface {
	*T
	Base() *models.MediaItem
	Kind() models.Kind
	ProgressPercent() *float64
	ExportRow(loc *time.Location) []string
}

var (
	// ErrNotFound means the item does not exist or belongs to another owner
	ErrNotFound = errors.New("catalog: item not found")

	// ErrDuplicate means a unique external id is already tracked
	ErrDuplicate = errors.New("catalog: duplicate external id")
)
