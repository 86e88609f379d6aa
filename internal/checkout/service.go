package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/warmpaws/warmpaws-backend/internal/pricing"
	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
	"github.com/warmpaws/warmpaws-backend/pkg/logger"
)

type cartRepo interface {
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.CartItem, error)
	Clear(tx *gorm.DB, buyerID uuid.UUID) error
}

type orderRepo interface {
	CreateAll(tx *gorm.DB, orders []models.Order) error
}

type transactor interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type Service struct {
	cart   cartRepo
	orders orderRepo
	txer   transactor
}

func NewService(cart cartRepo, orders orderRepo, txer transactor) (*Service, error) {
	if cart == nil || orders == nil || txer == nil {
		return nil, fmt.Errorf("cart repo, order repo and transactor are required")
	}
	return &Service{cart: cart, orders: orders, txer: txer}, nil
}

// ShippingDetails travel onto every order created by the checkout.
type ShippingDetails struct {
	Address string
	Phone   string
	Notes   string
}

// Result is the checkout outcome. Skipped lines name the listings that
// could not be ordered so the client can surface them.
type Result struct {
	Orders  []models.Order `json:"orders"`
	Skipped []SkippedLine  `json:"skipped,omitempty"`
	Quote   pricing.Quote  `json:"summary"`
}

type SkippedLine struct {
	ListingID uuid.UUID `json:"listing_id"`
	Reason    string    `json:"reason"`
}

// Checkout converts the cart into pending orders, one per line, each
// snapshotting unit price and the fee breakdown at this moment. Lines
// whose listing is gone, unavailable or short on stock are skipped
// rather than failing the whole cart. The cart is cleared only when at
// least one order was created.
func (s *Service) Checkout(ctx context.Context, buyerID uuid.UUID, shipping ShippingDetails) (*Result, error) {
	if shipping.Address == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "shipping address is required")
	}

	items, err := s.cart.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading cart")
	}
	if len(items) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "cart is empty")
	}

	logg := logger.FromContext(ctx)

	var created []models.Order
	var skipped []SkippedLine
	subtotal := decimal.Zero

	for _, item := range items {
		listing := item.Listing
		switch {
		case listing == nil:
			skipped = append(skipped, SkippedLine{ListingID: item.ListingID, Reason: "listing no longer exists"})
			continue
		case listing.Status != enums.ListingStatusAvailable:
			skipped = append(skipped, SkippedLine{ListingID: item.ListingID, Reason: "listing is no longer available"})
			continue
		case item.Quantity > listing.Quantity:
			skipped = append(skipped, SkippedLine{ListingID: item.ListingID, Reason: "not enough stock remaining"})
			continue
		}

		lineSubtotal := pricing.LineSubtotal(listing.Price, item.Quantity)
		quote := pricing.QuoteFor(lineSubtotal)
		created = append(created, models.Order{
			ID:              uuid.New(),
			BuyerID:         buyerID,
			SellerID:        listing.SellerID,
			ListingID:       listing.ID,
			Quantity:        item.Quantity,
			UnitPrice:       listing.Price,
			Subtotal:        quote.Subtotal,
			BuyerFee:        quote.BuyerFee,
			SellerFee:       quote.SellerFee,
			Total:           quote.Total,
			SellerPayout:    quote.SellerPayout,
			Status:          enums.OrderStatusPending,
			ShippingAddress: shipping.Address,
			ContactPhone:    shipping.Phone,
			Notes:           shipping.Notes,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}

	if len(created) == 0 {
		return nil, apperrors.New(apperrors.CodeStateConflict, "no cart items could be ordered").
			WithDetails(skipped)
	}

	err = s.txer.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.orders.CreateAll(tx, created); err != nil {
			return err
		}
		return s.cart.Clear(tx, buyerID)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "creating orders")
	}

	if len(skipped) > 0 {
		logg.Warn("checkout skipped cart lines", map[string]any{
			"buyer_id": buyerID.String(),
			"skipped":  len(skipped),
		})
	}

	return &Result{
		Orders:  created,
		Skipped: skipped,
		Quote:   pricing.QuoteFor(subtotal),
	}, nil
}
