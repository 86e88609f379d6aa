package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warmpaws/warmpaws-backend/pkg/db"
	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
)

var ErrItemNotFound = errors.New("cart item not found")

type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.client.Gorm().WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Photos", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("buyer_id = ?", buyerID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *Repo) FindItem(ctx context.Context, buyerID, listingID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.client.Gorm().WithContext(ctx).
		First(&item, "buyer_id = ? AND listing_id = ?", buyerID, listingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo) Create(ctx context.Context, item *models.CartItem) error {
	return r.client.Gorm().WithContext(ctx).Create(item).Error
}

func (r *Repo) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	res := r.client.Gorm().WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repo) Remove(ctx context.Context, buyerID, listingID uuid.UUID) error {
	res := r.client.Gorm().WithContext(ctx).
		Where("buyer_id = ? AND listing_id = ?", buyerID, listingID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Clear runs on the caller's transaction so checkout can empty the
// cart atomically with order creation.
func (r *Repo) Clear(tx *gorm.DB, buyerID uuid.UUID) error {
	return tx.Where("buyer_id = ?", buyerID).Delete(&models.CartItem{}).Error
}

// ClearAll empties the cart outside any transaction.
func (r *Repo) ClearAll(ctx context.Context, buyerID uuid.UUID) error {
	return r.Clear(r.client.Gorm().WithContext(ctx), buyerID)
}
