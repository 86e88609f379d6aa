package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

type repo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Purchases(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]models.Order, error)
	Sales(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error)
}

type Service struct {
	repo repo
}

func NewService(r repo) (*Service, error) {
	if r == nil {
		return nil, fmt.Errorf("orders repo is required")
	}
	return &Service{repo: r}, nil
}

// Get returns an order visible to its buyer or seller only.
func (s *Service) Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading order")
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *Service) Purchases(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]models.Order, error) {
	out, err := s.repo.Purchases(ctx, buyerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing purchases")
	}
	return out, nil
}

func (s *Service) Sales(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]models.Order, error) {
	out, err := s.repo.Sales(ctx, sellerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing sales")
	}
	return out, nil
}

// Transition applies a fulfillment state change. Shipping is the
// seller's move, delivery confirmation the buyer's, and cancellation
// is only open to the buyer while the order is still pending.
func (s *Service) Transition(ctx context.Context, userID, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error) {
	if !next.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, "unknown order status")
	}

	order, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, apperrors.New(apperrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	switch next {
	case enums.OrderStatusShipped:
		if order.SellerID != userID {
			return nil, apperrors.New(apperrors.CodeForbidden, "only the seller can mark an order shipped")
		}
	case enums.OrderStatusDelivered:
		if order.BuyerID != userID {
			return nil, apperrors.New(apperrors.CodeForbidden, "only the buyer can confirm delivery")
		}
	case enums.OrderStatusCancelled:
		if order.BuyerID != userID {
			return nil, apperrors.New(apperrors.CodeForbidden, "only the buyer can cancel")
		}
		if order.Status != enums.OrderStatusPending {
			return nil, apperrors.New(apperrors.CodeStateConflict, "only pending orders can be cancelled")
		}
	case enums.OrderStatusPaid:
		// Payment confirmation owns this transition.
		return nil, apperrors.New(apperrors.CodeValidation, "orders are marked paid through payment confirmation")
	}

	changed, err := s.repo.UpdateStatus(ctx, orderID, order.Status, next)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating order status")
	}
	if !changed {
		return nil, apperrors.New(apperrors.CodeStateConflict, "order changed concurrently, retry")
	}
	return s.Get(ctx, userID, orderID)
}
