package listings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warmpaws/warmpaws-backend/pkg/db"
	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
)

var ErrNotFound = errors.New("listing not found")

type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{client: client}
}

func (r *Repo) Create(ctx context.Context, listing *models.Listing) error {
	return r.client.Gorm().WithContext(ctx).Create(listing).Error
}

func (r *Repo) Update(ctx context.Context, listing *models.Listing) error {
	return r.client.Gorm().WithContext(ctx).Save(listing).Error
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := r.client.Gorm().WithContext(ctx).
		Preload("Photos", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Preload("Seller").
		First(&listing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *Repo) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Listing, error) {
	var out []models.Listing
	err := r.client.Gorm().WithContext(ctx).
		Preload("Photos", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("seller_id = ? AND status <> ?", sellerID, enums.ListingStatusRemoved).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *Repo) FindAvailable(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	var out []models.Listing
	err := r.client.Gorm().WithContext(ctx).
		Preload("Photos", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("status = ? AND quantity > 0", enums.ListingStatusAvailable).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *Repo) ReplacePhotos(ctx context.Context, listingID uuid.UUID, photos []models.ListingPhoto) error {
	return r.client.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listingID).Delete(&models.ListingPhoto{}).Error; err != nil {
			return err
		}
		if len(photos) == 0 {
			return nil
		}
		return tx.Create(&photos).Error
	})
}

// DecrementQuantity atomically takes qty units off a listing, flipping
// status to sold when stock hits zero. Returns false when the listing
// lacks sufficient stock, without changing anything. Runs on tx so the
// caller controls the settlement transaction.
func (r *Repo) DecrementQuantity(tx *gorm.DB, listingID uuid.UUID, qty int) (bool, error) {
	res := tx.Exec(`
		UPDATE listings
		SET quantity = quantity - ?,
		    status = CASE WHEN quantity - ? <= 0 THEN ? ELSE status END,
		    updated_at = ?
		WHERE id = ? AND quantity >= ?`,
		qty, qty, enums.ListingStatusSold.String(), time.Now().UTC(), listingID, qty)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
