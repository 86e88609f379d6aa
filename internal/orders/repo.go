package orders

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

var ErrNotFound = errors.New("order not found")

type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{client: client}
}

// CreateAll inserts the order rows on the caller's transaction.
func (r *Repo) CreateAll(tx *gorm.DB, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return tx.Create(&orders).Error
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.client.Gorm().WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Photos", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindPendingByIDsAndBuyer returns only the orders that exist, belong
// to the buyer and are still pending. Callers compare the count to
// detect foreign, missing or already paid orders.
func (r *Repo) FindPendingByIDsAndBuyer(ctx context.Context, ids []uuid.UUID, buyerID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	err := r.client.Gorm().WithContext(ctx).
		Where("id IN ? AND buyer_id = ? AND status = ?", ids, buyerID, enums.OrderStatusPending).
		Find(&out).Error
	return out, err
}

// AttachPaymentIntent stamps the Stripe intent id on the orders it
// will settle.
func (r *Repo) AttachPaymentIntent(ctx context.Context, ids []uuid.UUID, intentID string) error {
	return r.client.Gorm().WithContext(ctx).
		Model(&models.Order{}).
		Where("id IN ?", ids).
		Update("payment_intent_id", intentID).Error
}

// SettlePending flips one pending order to paid on the settlement
// transaction, stamping the payment reference when one is known.
// RowsAffected zero means another writer got there first.
func (r *Repo) SettlePending(tx *gorm.DB, orderID uuid.UUID, paymentRef string) (bool, error) {
	updates := map[string]any{
		"status":  enums.OrderStatusPaid,
		"paid_at": time.Now().UTC(),
	}
	if paymentRef != "" {
		updates["payment_intent_id"] = paymentRef
	}
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, enums.OrderStatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repo) FindForSettlement(tx *gorm.DB, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := tx.First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repo) Purchases(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]models.Order, error) {
	var out []models.Order
	err := r.client.Gorm().WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Photos", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *Repo) Sales(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]models.Order, error) {
	var out []models.Order
	err := r.client.Gorm().WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Photos", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

// UpdateStatus moves an order between states with the previous state
// as a guard, so concurrent transitions cannot skip steps.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error) {
	res := r.client.Gorm().WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
