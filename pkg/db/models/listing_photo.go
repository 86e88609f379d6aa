package models

import (
	"time"

	"github.com/google/uuid"
)

// ListingPhoto holds a URL to an externally stored image. Position 0
// is the cover photo.
type ListingPhoto struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index" json:"listing_id"`
	URL       string    `gorm:"not null" json:"url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (ListingPhoto) TableName() string { return "listing_photos" }
