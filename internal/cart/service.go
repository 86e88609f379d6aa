package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warmpaws/warmpaws-backend/internal/pricing"
	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

type repo interface {
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.CartItem, error)
	FindItem(ctx context.Context, buyerID, listingID uuid.UUID) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	Remove(ctx context.Context, buyerID, listingID uuid.UUID) error
	ClearAll(ctx context.Context, buyerID uuid.UUID) error
}

type listingFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
}

type Service struct {
	repo     repo
	listings listingFinder
}

func NewService(r repo, listings listingFinder) (*Service, error) {
	if r == nil {
		return nil, fmt.Errorf("cart repo is required")
	}
	if listings == nil {
		return nil, fmt.Errorf("listing finder is required")
	}
	return &Service{repo: r, listings: listings}, nil
}

// View is the aggregated cart with the fee breakdown the buyer will
// see again at checkout.
type View struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Quote     pricing.Quote     `json:"summary"`
}

func (s *Service) Get(ctx context.Context, buyerID uuid.UUID) (*View, error) {
	items, err := s.repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading cart")
	}

	subtotal := decimal.Zero
	count := 0
	for _, item := range items {
		if item.Listing == nil {
			continue
		}
		subtotal = subtotal.Add(pricing.LineSubtotal(item.Listing.Price, item.Quantity))
		count += item.Quantity
	}
	return &View{
		Items:     items,
		ItemCount: count,
		Quote:     pricing.QuoteFor(subtotal),
	}, nil
}

// Add puts qty units of a listing in the cart, merging with any
// existing line for the same listing. Stock is not checked here;
// checkout is where availability gets enforced, so a line can sit in
// the cart while the listing sells down.
func (s *Service) Add(ctx context.Context, buyerID, listingID uuid.UUID, qty int) (*View, error) {
	if qty < 1 {
		return nil, apperrors.New(apperrors.CodeValidation, "quantity must be at least 1")
	}

	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, err, "listing not found")
	}
	if listing.SellerID == buyerID {
		return nil, apperrors.New(apperrors.CodeValidation, "cannot buy your own listing")
	}
	if listing.Status != enums.ListingStatusAvailable {
		return nil, apperrors.New(apperrors.CodeStateConflict, "listing is not available")
	}

	existing, err := s.repo.FindItem(ctx, buyerID, listingID)
	switch {
	case err == nil:
		if err := s.repo.UpdateQuantity(ctx, existing.ID, existing.Quantity+qty); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "merging cart line")
		}
	case errors.Is(err, ErrItemNotFound):
		item := &models.CartItem{
			ID:        uuid.New(),
			BuyerID:   buyerID,
			ListingID: listingID,
			Quantity:  qty,
		}
		if err := s.repo.Create(ctx, item); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "adding cart line")
		}
	default:
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "checking cart line")
	}

	return s.Get(ctx, buyerID)
}

// SetQuantity replaces the quantity on an existing line.
func (s *Service) SetQuantity(ctx context.Context, buyerID, listingID uuid.UUID, qty int) (*View, error) {
	if qty < 1 {
		return nil, apperrors.New(apperrors.CodeValidation, "quantity must be at least 1")
	}

	item, err := s.repo.FindItem(ctx, buyerID, listingID)
	if errors.Is(err, ErrItemNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "listing is not in the cart")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading cart line")
	}

	if err := s.repo.UpdateQuantity(ctx, item.ID, qty); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating cart line")
	}
	return s.Get(ctx, buyerID)
}

func (s *Service) Remove(ctx context.Context, buyerID, listingID uuid.UUID) (*View, error) {
	err := s.repo.Remove(ctx, buyerID, listingID)
	if errors.Is(err, ErrItemNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "listing is not in the cart")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "removing cart line")
	}
	return s.Get(ctx, buyerID)
}

func (s *Service) Clear(ctx context.Context, buyerID uuid.UUID) error {
	if err := s.repo.ClearAll(ctx, buyerID); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "clearing cart")
	}
	return nil
}
