package catalog

import (
	"fmt"
	"strings"

	"github.com/satoriell/mediatrack/internal/models"
	"gorm.io/gorm"
)

// PageSize is the fixed page length for item lists
const PageSize = 15

// Sort names an item list ordering
type Sort string

const (
	SortTitleAsc   Sort = "title_asc"
	SortTitleDesc  Sort = "title_desc"
	SortRatingAsc  Sort = "rating_asc"
	SortRatingDesc Sort = "rating_desc"
	SortDateAsc    Sort = "date_asc"
	SortDateDesc   Sort = "date_desc"
)

// Filters narrows an item list. Zero values mean no filtering.
type Filters struct {
	Status models.Status // exact status
	Tag    string        // tag slug
	Search string        // case-insensitive title substring
}

// Options selects, orders and pages an item list
type Options struct {
	Filters Filters
	Sort    Sort
	Page    int
}

// Page is one page of items plus the metadata the caller renders around it
type Page[T any] struct {
	Items      []T           `json:"items"`
	Number     int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	TotalItems int64         `json:"total_items"`
	Favorites  map[uint]bool `json:"favorites"`
}

// List returns one page of an owner's items of a kind, filtered and ordered.
// Out-of-range page numbers clamp to the nearest valid page instead of
// failing. Favorite membership for the page is resolved in one query.
func List[T any, P Entry[T]](db *models.Database, ownerID uint, opts Options) (*Page[T], error) {
	var probe T
	kind := P(&probe).Kind()
	info, ok := models.InfoFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	// Chained gorm queries cannot be reused across Count and Find, so the
	// filtered base is rebuilt for each statement
	base := func() *gorm.DB {
		q := db.Conn().Model(new(T)).Where(info.Table+".owner_id = ?", ownerID)
		return applyFilters(q, info, opts.Filters)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var items []T
	err := base().
		Order(orderClause(opts.Sort, info.Table)).
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Preload("Tags").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	ids := make([]uint, len(items))
	for i := range items {
		p := P(&items[i])
		p.Base().Progress = p.ProgressPercent()
		ids[i] = p.Base().ID
	}

	favorites, err := db.FavoritedIDs(ownerID, kind, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		p := P(&items[i])
		p.Base().Favorited = favorites[p.Base().ID]
	}

	return &Page[T]{
		Items:      items,
		Number:     page,
		TotalPages: totalPages,
		TotalItems: total,
		Favorites:  favorites,
	}, nil
}

func applyFilters(q *gorm.DB, info models.KindInfo, f Filters) *gorm.DB {
	if f.Status != "" {
		q = q.Where(info.Table+".status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("LOWER("+info.Table+".title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Tag != "" {
		q = q.Joins(fmt.Sprintf("JOIN %s jt ON jt.%s = %s.id", info.TagJoinTable, info.TagJoinColumn, info.Table)).
			Joins("JOIN tags ON tags.id = jt.tag_id").
			Where("tags.slug = ?", f.Tag)
	}
	return q
}

// orderClause builds the ORDER BY for a sort. Rating sorts push unrated
// items last and break ties by newest first.
func orderClause(sort Sort, table string) string {
	switch sort {
	case SortTitleAsc:
		return table + ".title COLLATE NOCASE ASC"
	case SortTitleDesc:
		return table + ".title COLLATE NOCASE DESC"
	case SortRatingAsc:
		return fmt.Sprintf("%s.rating IS NULL, %s.rating ASC, %s.added_date DESC", table, table, table)
	case SortRatingDesc:
		return fmt.Sprintf("%s.rating IS NULL, %s.rating DESC, %s.added_date DESC", table, table, table)
	case SortDateAsc:
		return table + ".added_date ASC"
	default:
		return table + ".added_date DESC"
	}
}
