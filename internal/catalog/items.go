package catalog

import (
	"errors"
	"fmt"

	"github.com/satoriell/mediatrack/internal/models"
	"gorm.io/gorm"
)

// Get loads one of an owner's items with its tags, derived progress and
// favorite state. Items of other owners are indistinguishable from missing
// ones.
func Get[T any, P Entry[T]](db *models.Database, ownerID, id uint) (*T, error) {
	var item T
	err := db.Conn().Preload("Tags").Where("owner_id = ?", ownerID).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}

	p := P(&item)
	p.Base().Progress = p.ProgressPercent()

	favorited, err := db.IsFavorited(ownerID, p.Kind(), p.Base().ID)
	if err != nil {
		return nil, err
	}
	p.Base().Favorited = favorited
	return &item, nil
}

// CreateItem stores a new item and attaches its tags by name. Tag names are
// resolved through the shared vocabulary, creating missing tags.
func CreateItem[T any, P Entry[T]](db *models.Database, item P, tagNames []string) error {
	tags, err := db.EnsureTags(tagNames)
	if err != nil {
		return err
	}

	if err := db.Conn().Omit("Tags").Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create item: %w", err)
	}

	if len(tags) > 0 {
		if err := db.Conn().Model(item).Association("Tags").Replace(&tags); err != nil {
			return fmt.Errorf("failed to attach tags: %w", err)
		}
	}

	item.Base().Progress = item.ProgressPercent()
	return nil
}

// SaveItem persists changes to an existing item and replaces its tag set.
// An empty tagNames clears all tags.
func SaveItem[T any, P Entry[T]](db *models.Database, item P, tagNames []string) error {
	tags, err := db.EnsureTags(tagNames)
	if err != nil {
		return err
	}

	if err := db.Conn().Omit("Tags").Save(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to save item: %w", err)
	}

	if err := db.Conn().Model(item).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("failed to replace tags: %w", err)
	}

	item.Base().Progress = item.ProgressPercent()
	return nil
}

// Delete removes an owner's item with its tag links and favorites
func Delete(db *models.Database, ownerID uint, kind models.Kind, id uint) error {
	err := db.DeleteItem(ownerID, kind, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
