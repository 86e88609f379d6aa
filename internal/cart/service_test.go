package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

type stubCartRepo struct {
	items    map[uuid.UUID]*models.CartItem
	listings map[uuid.UUID]*models.Listing
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{items: map[uuid.UUID]*models.CartItem{}}
}

func (s *stubCartRepo) ListByBuyer(_ context.Context, buyerID uuid.UUID) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, item := range s.items {
		if item.BuyerID == buyerID {
			copied := *item
			if copied.Listing == nil && s.listings != nil {
				copied.Listing = s.listings[copied.ListingID]
			}
			out = append(out, copied)
		}
	}
	return out, nil
}

func (s *stubCartRepo) FindItem(_ context.Context, buyerID, listingID uuid.UUID) (*models.CartItem, error) {
	for _, item := range s.items {
		if item.BuyerID == buyerID && item.ListingID == listingID {
			copied := *item
			return &copied, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *stubCartRepo) Create(_ context.Context, item *models.CartItem) error {
	s.items[item.ID] = item
	return nil
}

func (s *stubCartRepo) UpdateQuantity(_ context.Context, itemID uuid.UUID, quantity int) error {
	item, ok := s.items[itemID]
	if !ok {
		return ErrItemNotFound
	}
	item.Quantity = quantity
	return nil
}

func (s *stubCartRepo) Remove(_ context.Context, buyerID, listingID uuid.UUID) error {
	for id, item := range s.items {
		if item.BuyerID == buyerID && item.ListingID == listingID {
			delete(s.items, id)
			return nil
		}
	}
	return ErrItemNotFound
}

func (s *stubCartRepo) ClearAll(_ context.Context, buyerID uuid.UUID) error {
	for id, item := range s.items {
		if item.BuyerID == buyerID {
			delete(s.items, id)
		}
	}
	return nil
}

type stubListingFinder struct {
	listings map[uuid.UUID]*models.Listing
}

func (s *stubListingFinder) FindByID(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	if l, ok := s.listings[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "listing not found")
}

func fixture(t *testing.T) (*Service, *stubCartRepo, *stubListingFinder) {
	t.Helper()
	repo := newStubCartRepo()
	finder := &stubListingFinder{listings: map[uuid.UUID]*models.Listing{}}
	repo.listings = finder.listings
	svc, err := NewService(repo, finder)
	require.NoError(t, err)
	return svc, repo, finder
}

func addListing(finder *stubListingFinder, price string, qty int) *models.Listing {
	l := &models.Listing{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		Name:     "Biscuit",
		PetType:  enums.PetTypeDog,
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
		Status:   enums.ListingStatusAvailable,
	}
	finder.listings[l.ID] = l
	return l
}

func TestAddCreatesLine(t *testing.T) {
	svc, repo, finder := fixture(t)
	listing := addListing(finder, "100.00", 3)
	buyer := uuid.New()

	view, err := svc.Add(context.Background(), buyer, listing.ID, 2)
	require.NoError(t, err)
	assert.Len(t, repo.items, 1)
	assert.Equal(t, 2, view.ItemCount)
}

func TestAddMergesQuantities(t *testing.T) {
	svc, repo, finder := fixture(t)
	listing := addListing(finder, "100.00", 5)
	buyer := uuid.New()

	_, err := svc.Add(context.Background(), buyer, listing.ID, 2)
	require.NoError(t, err)
	view, err := svc.Add(context.Background(), buyer, listing.ID, 1)
	require.NoError(t, err)

	require.Len(t, repo.items, 1)
	assert.Equal(t, 3, view.ItemCount)
}

func TestAddAllowsMoreThanStock(t *testing.T) {
	svc, _, finder := fixture(t)
	listing := addListing(finder, "100.00", 2)
	buyer := uuid.New()

	// Availability is checkout's problem, not the cart's.
	view, err := svc.Add(context.Background(), buyer, listing.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, view.ItemCount)
}

func TestAddRejectsOwnListing(t *testing.T) {
	svc, _, finder := fixture(t)
	listing := addListing(finder, "100.00", 1)

	_, err := svc.Add(context.Background(), listing.SellerID, listing.ID, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.As(err).Code())
}

func TestAddRejectsUnavailableListing(t *testing.T) {
	svc, _, finder := fixture(t)
	listing := addListing(finder, "100.00", 1)
	listing.Status = enums.ListingStatusSold

	_, err := svc.Add(context.Background(), uuid.New(), listing.ID, 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeStateConflict, apperrors.As(err).Code())
}

func TestGetComputesFeeSummary(t *testing.T) {
	svc, repo, finder := fixture(t)
	one := addListing(finder, "100.00", 1)
	two := addListing(finder, "50.00", 2)
	buyer := uuid.New()

	repo.items[uuid.New()] = &models.CartItem{
		ID: uuid.New(), BuyerID: buyer, ListingID: one.ID, Quantity: 1, Listing: one,
	}
	repo.items[uuid.New()] = &models.CartItem{
		ID: uuid.New(), BuyerID: buyer, ListingID: two.ID, Quantity: 2, Listing: two,
	}

	view, err := svc.Get(context.Background(), buyer)
	require.NoError(t, err)
	assert.Equal(t, 3, view.ItemCount)
	assert.True(t, view.Quote.Subtotal.Equal(decimal.RequireFromString("200.00")), "subtotal %s", view.Quote.Subtotal)
	assert.True(t, view.Quote.BuyerFee.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, view.Quote.Total.Equal(decimal.RequireFromString("210.00")))
}

func TestSetQuantityOnMissingLine(t *testing.T) {
	svc, _, finder := fixture(t)
	listing := addListing(finder, "100.00", 5)

	_, err := svc.SetQuantity(context.Background(), uuid.New(), listing.ID, 2)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.As(err).Code())
}

func TestRemoveMissingLine(t *testing.T) {
	svc, _, finder := fixture(t)
	listing := addListing(finder, "100.00", 5)

	_, err := svc.Remove(context.Background(), uuid.New(), listing.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.As(err).Code())
}
