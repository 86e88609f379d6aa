package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warmpaws/warmpaws-backend/pkg/enums"
)

// Order snapshots the economics of one listing purchase at checkout
// time. Money lives in numeric(10,2); cents conversion happens only at
// the payment boundary.
type Order struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"buyer_id"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index" json:"listing_id"`
	Listing   *Listing  `gorm:"foreignKey:ListingID" json:"listing,omitempty"`

	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Subtotal     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	BuyerFee     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"buyer_fee"`
	SellerFee    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"seller_fee"`
	Total        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	SellerPayout decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"seller_payout"`

	Status          enums.OrderStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	ShippingAddress string            `gorm:"not null" json:"shipping_address"`
	ContactPhone    string            `json:"contact_phone,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	PaymentIntentID string            `gorm:"index" json:"payment_intent_id,omitempty"`
	PaidAt          *time.Time        `json:"paid_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }
