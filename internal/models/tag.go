package models

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Tag is a shared vocabulary label. Tags are global: the same tag can be
// attached to items of any kind belonging to any owner.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
}

// NormalizeTagName case-normalizes a tag name for identity comparison
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BeforeSave normalizes the name and derives the URL-safe slug
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.Name = NormalizeTagName(t.Name)
	if t.Name == "" {
		return fmt.Errorf("tag name must not be empty")
	}
	t.Slug = slug.Make(t.Name)
	return nil
}
