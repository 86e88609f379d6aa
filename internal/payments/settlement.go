package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	"github.com/warmpaws/warmpaws-backend/pkg/logger"
	"github.com/warmpaws/warmpaws-backend/pkg/metrics"
)

type settleOrderRepo interface {
	FindForSettlement(tx *gorm.DB, id uuid.UUID) (*models.Order, error)
	SettlePending(tx *gorm.DB, orderID uuid.UUID, paymentRef string) (bool, error)
}

type settleListingRepo interface {
	DecrementQuantity(tx *gorm.DB, listingID uuid.UUID, qty int) (bool, error)
}

type transactor interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Settler is the single writer of the pending-to-paid transition. Both
// the client confirmation endpoint and the Stripe webhook funnel
// through it, so whichever arrives first wins and the loser is a
// no-op. Inventory is decremented exactly once, inside the same
// transaction as the status flip.
type Settler struct {
	orders   settleOrderRepo
	listings settleListingRepo
	txer     transactor
}

func NewSettler(orders settleOrderRepo, listings settleListingRepo, txer transactor) (*Settler, error) {
	if orders == nil || listings == nil || txer == nil {
		return nil, fmt.Errorf("order repo, listing repo and transactor are required")
	}
	return &Settler{orders: orders, listings: listings, txer: txer}, nil
}

// SettleOrder marks one order paid and takes its units off the
// listing. Returns false when the order was not pending anymore.
// An out-of-stock listing does not fail the settlement: the payment
// already went through, so the order stays paid and the shortfall is
// logged for manual follow up.
func (s *Settler) SettleOrder(ctx context.Context, orderID uuid.UUID, paymentRef string) (bool, error) {
	logg := logger.FromContext(ctx)
	settled := false

	err := s.txer.Transaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orders.FindForSettlement(tx, orderID)
		if err != nil {
			return err
		}

		won, err := s.orders.SettlePending(tx, orderID, paymentRef)
		if err != nil {
			return err
		}
		if !won {
			return nil
		}
		settled = true

		decremented, err := s.listings.DecrementQuantity(tx, order.ListingID, order.Quantity)
		if err != nil {
			return err
		}
		if !decremented {
			logg.Warn("settled order exceeds remaining stock", map[string]any{
				"order_id":   orderID.String(),
				"listing_id": order.ListingID.String(),
				"quantity":   order.Quantity,
			})
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if settled {
		metrics.OrdersSettled.Inc()
	}
	return settled, nil
}

// SettleOrders settles each order independently so one bad row cannot
// block the rest of a multi-order payment.
func (s *Settler) SettleOrders(ctx context.Context, orderIDs []uuid.UUID, paymentRef string) (int, error) {
	logg := logger.FromContext(ctx)
	settled := 0
	var lastErr error
	for _, id := range orderIDs {
		ok, err := s.SettleOrder(ctx, id, paymentRef)
		if err != nil {
			lastErr = err
			logg.Error("settling order", err, map[string]any{"order_id": id.String()})
			continue
		}
		if ok {
			settled++
		}
	}
	return settled, lastErr
}
