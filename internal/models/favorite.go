package models

import "time"

// Favorite is a tagged reference to any of the four tracked item kinds.
// The (owner, kind, object) triple is unique so toggling re-adds/removes
// instead of accumulating rows.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;uniqueIndex:idx_favorites_owner_kind_object" json:"owner_id"`
	Kind      Kind      `gorm:"size:10;not null;uniqueIndex:idx_favorites_owner_kind_object" json:"kind"`
	ObjectID  uint      `gorm:"not null;uniqueIndex:idx_favorites_owner_kind_object" json:"object_id"`
	CreatedAt time.Time `json:"created_at"`
}
