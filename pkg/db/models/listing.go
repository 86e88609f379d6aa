package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warmpaws/warmpaws-backend/pkg/enums"
)

// Listing is a pet offered for sale. Quantity covers litters; status
// flips to sold when the last unit settles.
type Listing struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller      *User               `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Name        string              `gorm:"not null" json:"name"`
	PetType     enums.PetType       `gorm:"type:varchar(16);not null" json:"pet_type"`
	Breed       string              `json:"breed,omitempty"`
	AgeMonths   int                 `json:"age_months"`
	Description string              `json:"description,omitempty"`
	Price       decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity    int                 `gorm:"not null;default:1" json:"quantity"`
	Status      enums.ListingStatus `gorm:"type:varchar(16);not null;default:'available';index" json:"status"`
	Photos      []ListingPhoto      `gorm:"foreignKey:ListingID" json:"photos,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (Listing) TableName() string { return "listings" }
