package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warmpaws/warmpaws-backend/internal/pricing"
	"github.com/warmpaws/warmpaws-backend/pkg/config"
	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
	"github.com/warmpaws/warmpaws-backend/pkg/logger"
)

const Currency = "usd"

type orderRepo interface {
	FindPendingByIDsAndBuyer(ctx context.Context, ids []uuid.UUID, buyerID uuid.UUID) ([]models.Order, error)
	AttachPaymentIntent(ctx context.Context, ids []uuid.UUID, intentID string) error
}

type Service struct {
	orders  orderRepo
	intents IntentClient
	settler *Settler
}

func NewService(orders orderRepo, intents IntentClient, settler *Settler) (*Service, error) {
	if orders == nil || intents == nil || settler == nil {
		return nil, fmt.Errorf("order repo, intent client and settler are required")
	}
	return &Service{orders: orders, intents: intents, settler: settler}, nil
}

// Intent is what the client needs to run the payment sheet.
type Intent struct {
	ClientSecret string   `json:"client_secret"`
	IntentID     string   `json:"payment_intent_id"`
	AmountCents  int64    `json:"amount_cents"`
	Currency     string   `json:"currency"`
	OrderCount   int      `json:"order_count"`
	OrderIDs     []string `json:"order_ids"`
}

// CreateIntent opens a payment intent covering the given pending
// orders. Every order must exist, belong to the buyer and still be
// pending, otherwise nothing is charged.
func (s *Service) CreateIntent(ctx context.Context, buyerID uuid.UUID, orderIDs []uuid.UUID) (*Intent, error) {
	if len(orderIDs) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "order_ids is required")
	}

	orders, err := s.orders.FindPendingByIDsAndBuyer(ctx, orderIDs, buyerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading orders")
	}
	if len(orders) != len(orderIDs) {
		return nil, apperrors.New(apperrors.CodeValidation, "Some orders are not found, not yours, or already paid")
	}

	total := decimal.Zero
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		total = total.Add(order.Total)
		ids = append(ids, order.ID.String())
	}
	amountCents := pricing.Cents(total)
	if amountCents <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "payment amount must be positive")
	}

	metadata := map[string]string{
		"orderIds": strings.Join(ids, ","),
		"userId":   buyerID.String(),
		"platform": config.PlatformName,
	}
	pi, err := s.intents.NewIntent(ctx, amountCents, Currency, metadata)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "creating payment intent")
	}

	if err := s.orders.AttachPaymentIntent(ctx, orderIDs, pi.ID); err != nil {
		// The intent exists either way; the webhook still settles by
		// metadata, so log and keep going.
		logger.FromContext(ctx).Error("stamping payment intent on orders", err, map[string]any{
			"payment_intent_id": pi.ID,
		})
	}

	return &Intent{
		ClientSecret: pi.ClientSecret,
		IntentID:     pi.ID,
		AmountCents:  amountCents,
		Currency:     Currency,
		OrderCount:   len(ids),
		OrderIDs:     ids,
	}, nil
}

// ConfirmResult reports how many orders this confirmation actually
// settled. Zero means the webhook won the race, which is fine.
type ConfirmResult struct {
	Settled int `json:"settled"`
}

// Confirm is the optimistic client-side settlement after the payment
// sheet reports success. The Stripe webhook remains the authority; the
// settler makes the two paths converge on the same outcome.
func (s *Service) Confirm(ctx context.Context, buyerID uuid.UUID, orderIDs []uuid.UUID, paymentRef string) (*ConfirmResult, error) {
	if len(orderIDs) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "order_ids is required")
	}

	owned, err := s.orders.FindPendingByIDsAndBuyer(ctx, orderIDs, buyerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading orders")
	}
	// Orders the webhook already settled are absent here; settling the
	// remainder and reporting the count keeps the endpoint idempotent.
	ids := make([]uuid.UUID, 0, len(owned))
	for _, order := range owned {
		ids = append(ids, order.ID)
	}

	settled := 0
	if len(ids) > 0 {
		settled, err = s.settler.SettleOrders(ctx, ids, paymentRef)
		if err != nil && settled == 0 {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "settling orders")
		}
	}
	return &ConfirmResult{Settled: settled}, nil
}
