package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one buyer/listing line. The unique pair means adding an
// already carted listing merges quantities instead of duplicating rows.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_buyer_listing" json:"buyer_id"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_buyer_listing" json:"listing_id"`
	Listing   *Listing  `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string { return "cart_items" }
