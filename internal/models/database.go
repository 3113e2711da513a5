package models

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the gorm store
type Database struct {
	db *gorm.DB
}

// NewDatabase opens the SQLite store and migrates the schema
func NewDatabase(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Tag{}, &Anime{}, &Webtoon{}, &Manga{}, &Novel{}, &Favorite{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Conn exposes the underlying gorm handle for the generic query engine
func (d *Database) Conn() *gorm.DB {
	return d.db
}

// Favorite operations

// ToggleFavorite flips the favorite state for (owner, kind, object).
// Returns the new state: true when the item is now favorited.
func (d *Database) ToggleFavorite(ownerID uint, kind Kind, objectID uint) (bool, error) {
	res := d.db.Where("owner_id = ? AND kind = ? AND object_id = ?", ownerID, kind, objectID).Delete(&Favorite{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	fav := Favorite{OwnerID: ownerID, Kind: kind, ObjectID: objectID}
	if err := d.db.Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost an add/add race on the unique triple: the row exists,
			// so the toggle resolves to a removal.
			if err := d.db.Where("owner_id = ? AND kind = ? AND object_id = ?", ownerID, kind, objectID).Delete(&Favorite{}).Error; err != nil {
				return false, fmt.Errorf("failed to remove favorite after race: %w", err)
			}
			return false, nil
		}
		return false, fmt.Errorf("failed to create favorite: %w", err)
	}
	return true, nil
}

// FavoritedIDs resolves favorite membership for a page of items in one query
func (d *Database) FavoritedIDs(ownerID uint, kind Kind, objectIDs []uint) (map[uint]bool, error) {
	favorited := make(map[uint]bool, len(objectIDs))
	if len(objectIDs) == 0 {
		return favorited, nil
	}

	var found []uint
	err := d.db.Model(&Favorite{}).
		Where("owner_id = ? AND kind = ? AND object_id IN ?", ownerID, kind, objectIDs).
		Pluck("object_id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite ids: %w", err)
	}
	for _, id := range found {
		favorited[id] = true
	}
	return favorited, nil
}

// IsFavorited checks a single item's favorite state
func (d *Database) IsFavorited(ownerID uint, kind Kind, objectID uint) (bool, error) {
	var count int64
	err := d.db.Model(&Favorite{}).
		Where("owner_id = ? AND kind = ? AND object_id = ?", ownerID, kind, objectID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// ListFavorites returns all favorites of an owner, newest first
func (d *Database) ListFavorites(ownerID uint) ([]Favorite, error) {
	var favorites []Favorite
	err := d.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// Tag operations

// EnsureTags resolves tag names to Tag rows, creating missing ones.
// Attaching a tag by name is idempotent; duplicates and empties are skipped.
func (d *Database) EnsureTags(names []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		normalized := NormalizeTagName(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		var tag Tag
		if err := d.db.Where("name = ?", normalized).FirstOrCreate(&tag, Tag{Name: normalized}).Error; err != nil {
			return nil, fmt.Errorf("failed to ensure tag %q: %w", normalized, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// UserTags returns the distinct tags actually used by the owner's items of
// one kind, for the filter vocabulary. Not the global tag table.
func (d *Database) UserTags(ownerID uint, kind Kind) ([]Tag, error) {
	info, ok := InfoFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	var tags []Tag
	err := d.db.Model(&Tag{}).
		Joins(fmt.Sprintf("JOIN %s jt ON jt.tag_id = tags.id", info.TagJoinTable)).
		Joins(fmt.Sprintf("JOIN %s items ON items.id = jt.%s", info.Table, info.TagJoinColumn)).
		Where("items.owner_id = ?", ownerID).
		Distinct().
		Order("tags.name").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user tags: %w", err)
	}
	return tags, nil
}

// External identity lookups

// ExternalMatch identifies an already-tracked item found by external id
type ExternalMatch struct {
	Kind  Kind
	ID    uint
	Title string
}

// FindByMALID looks up one owner's item of a kind by its MAL id.
// Returns nil when the id is not tracked.
func (d *Database) FindByMALID(ownerID uint, kind Kind, malID int64) (*ExternalMatch, error) {
	info, ok := InfoFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	var row struct {
		ID    uint
		Title string
	}
	err := d.db.Table(info.Table).
		Select("id, title").
		Where("owner_id = ? AND mal_id = ?", ownerID, malID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up mal id: %w", err)
	}
	return &ExternalMatch{Kind: kind, ID: row.ID, Title: row.Title}, nil
}

// FindByMangaDexID looks up an owner's item by MangaDex id. Both kinds the
// provider serves (manga and webtoon) are checked because classification only
// happens after the detail fetch.
func (d *Database) FindByMangaDexID(ownerID uint, mangadexID string) (*ExternalMatch, error) {
	for _, kind := range []Kind{KindManga, KindWebtoon} {
		info, _ := InfoFor(kind)

		var row struct {
			ID    uint
			Title string
		}
		err := d.db.Table(info.Table).
			Select("id, title").
			Where("owner_id = ? AND mangadex_id = ?", ownerID, mangadexID).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up mangadex id: %w", err)
		}
		return &ExternalMatch{Kind: kind, ID: row.ID, Title: row.Title}, nil
	}
	return nil, nil
}

// FindItem resolves an owner's item of any kind to its title. Returns nil
// when the item no longer exists.
func (d *Database) FindItem(ownerID uint, kind Kind, id uint) (*ExternalMatch, error) {
	info, ok := InfoFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	var row struct {
		ID    uint
		Title string
	}
	err := d.db.Table(info.Table).
		Select("id, title").
		Where("owner_id = ? AND id = ?", ownerID, id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}
	return &ExternalMatch{Kind: kind, ID: row.ID, Title: row.Title}, nil
}

// ItemTitles resolves the titles of an owner's items of one kind in a single
// query. Ids without a surviving row are absent from the result.
func (d *Database) ItemTitles(ownerID uint, kind Kind, ids []uint) (map[uint]string, error) {
	titles := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}
	info, ok := InfoFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	var rows []struct {
		ID    uint
		Title string
	}
	err := d.db.Table(info.Table).
		Select("id, title").
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve item titles: %w", err)
	}
	for _, row := range rows {
		titles[row.ID] = row.Title
	}
	return titles, nil
}

// ExistingMALIDs resolves in one query which of the given MAL ids are
// already tracked by the owner in the given kind
func (d *Database) ExistingMALIDs(ownerID uint, kind Kind, malIDs []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool, len(malIDs))
	if len(malIDs) == 0 {
		return existing, nil
	}
	info, ok := InfoFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	var found []int64
	err := d.db.Table(info.Table).
		Where("owner_id = ? AND mal_id IN ?", ownerID, malIDs).
		Pluck("mal_id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve existing mal ids: %w", err)
	}
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

// ExistingMangaDexIDs resolves which MangaDex ids are already tracked by the
// owner, in exactly two queries (manga + webtoon)
func (d *Database) ExistingMangaDexIDs(ownerID uint, mangadexIDs []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(mangadexIDs))
	if len(mangadexIDs) == 0 {
		return existing, nil
	}

	for _, kind := range []Kind{KindManga, KindWebtoon} {
		info, _ := InfoFor(kind)

		var found []string
		err := d.db.Table(info.Table).
			Where("owner_id = ? AND mangadex_id IN ?", ownerID, mangadexIDs).
			Pluck("mangadex_id", &found).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve existing mangadex ids: %w", err)
		}
		for _, id := range found {
			existing[id] = true
		}
	}
	return existing, nil
}

// Deletion

// DeleteItem removes an owner's item and cascades to its tag links and to
// every Favorite pointing at it, in one transaction
func (d *Database) DeleteItem(ownerID uint, kind Kind, id uint) error {
	info, ok := InfoFor(kind)
	if !ok {
		return fmt.Errorf("unknown item kind %q", kind)
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ? AND owner_id = ?", info.Table), id, ownerID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", info.TagJoinTable, info.TagJoinColumn), id).Error; err != nil {
			return fmt.Errorf("failed to delete tag links: %w", err)
		}
		if err := tx.Where("kind = ? AND object_id = ?", kind, id).Delete(&Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		return nil
	})
}

// Aggregation

// CountItems counts an owner's items of one kind
func (d *Database) CountItems(ownerID uint, kind Kind) (int64, error) {
	info, ok := InfoFor(kind)
	if !ok {
		return 0, fmt.Errorf("unknown item kind %q", kind)
	}
	var count int64
	err := d.db.Table(info.Table).Where("owner_id = ?", ownerID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// StatusCounts totals an owner's items per status across all four kinds
func (d *Database) StatusCounts(ownerID uint) (map[Status]int64, error) {
	totals := make(map[Status]int64, len(AllStatuses))
	for _, status := range AllStatuses {
		totals[status] = 0
	}

	for _, kind := range AllKinds {
		info, _ := InfoFor(kind)

		var rows []struct {
			Status Status
			Count  int64
		}
		err := d.db.Table(info.Table).
			Select("status, COUNT(*) AS count").
			Where("owner_id = ?", ownerID).
			Group("status").
			Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count statuses: %w", err)
		}
		for _, row := range rows {
			totals[row.Status] += row.Count
		}
	}
	return totals, nil
}
