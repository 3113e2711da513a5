package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/satoriell/mediatrack/internal/models"
	"gorm.io/gorm"
)

// utf8BOM keeps exported files readable in Excel
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Export streams an owner's items of a kind as semicolon-delimited CSV.
// The same filters as the list view apply but the output is never paginated.
// Timestamps are rendered in loc.
func Export[T any, P Entry[T]](db *models.Database, ownerID uint, f Filters, loc *time.Location, w io.Writer) error {
	var probe T
	kind := P(&probe).Kind()
	info, ok := models.InfoFor(kind)
	if !ok {
		return fmt.Errorf("unknown item kind %q", kind)
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(models.ExportHeaders[kind]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	base := func() *gorm.DB {
		q := db.Conn().Model(new(T)).Where(info.Table+".owner_id = ?", ownerID)
		return applyFilters(q, info, f)
	}

	var items []T
	err := base().
		Order(info.Table + ".added_date DESC, " + info.Table + ".title").
		Preload("Tags").
		Find(&items).Error
	if err != nil {
		return fmt.Errorf("failed to load items for export: %w", err)
	}

	for i := range items {
		if err := writer.Write(P(&items[i]).ExportRow(loc)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportFilename derives the download name from the kind, the active filters
// and the export moment
func ExportFilename(kind models.Kind, f Filters, now time.Time) string {
	var suffix strings.Builder
	if f.Status != "" {
		suffix.WriteString("_status-" + strings.ReplaceAll(string(f.Status), " ", "_"))
	}
	if f.Tag != "" {
		suffix.WriteString("_tag-" + f.Tag)
	}
	if f.Search != "" {
		search := f.Search
		if len(search) > 15 {
			search = search[:15]
		}
		search = strings.ReplaceAll(search, " ", "_")
		search = strings.ReplaceAll(search, ".", "")
		suffix.WriteString("_search-" + search)
	}
	return fmt.Sprintf("%s_export_%s%s.csv", kind, now.Format("20060102_1504"), suffix.String())
}
