package listings

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

type stubRepo struct {
	byID    map[uuid.UUID]*models.Listing
	created []*models.Listing
	updated []*models.Listing
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[uuid.UUID]*models.Listing{}}
}

func (s *stubRepo) Create(_ context.Context, listing *models.Listing) error {
	s.created = append(s.created, listing)
	s.byID[listing.ID] = listing
	return nil
}

func (s *stubRepo) Update(_ context.Context, listing *models.Listing) error {
	s.updated = append(s.updated, listing)
	s.byID[listing.ID] = listing
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	listing, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *listing
	return &copied, nil
}

func (s *stubRepo) FindBySeller(_ context.Context, sellerID uuid.UUID) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range s.byID {
		if l.SellerID == sellerID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *stubRepo) FindAvailable(_ context.Context, _, _ int) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range s.byID {
		if l.Status == enums.ListingStatusAvailable {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *stubRepo) ReplacePhotos(_ context.Context, listingID uuid.UUID, photos []models.ListingPhoto) error {
	if l, ok := s.byID[listingID]; ok {
		l.Photos = photos
	}
	return nil
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)
	sellerID := uuid.New()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"unknown pet type", CreateInput{PetType: "dinosaur", Price: decimal.NewFromInt(10), Quantity: 1}},
		{"zero price", CreateInput{PetType: enums.PetTypeDog, Price: decimal.Zero, Quantity: 1}},
		{"zero quantity", CreateInput{PetType: enums.PetTypeDog, Price: decimal.NewFromInt(10), Quantity: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), sellerID, tc.in)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeValidation, apperrors.As(err).Code())
		})
	}
}

func TestCreateAssignsPhotoPositions(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	listing, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Name:      "Biscuit",
		PetType:   enums.PetTypeDog,
		Price:     decimal.RequireFromString("199.99"),
		Quantity:  2,
		PhotoURLs: []string{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, listing.Photos, 2)
	assert.Equal(t, 0, listing.Photos[0].Position)
	assert.Equal(t, 1, listing.Photos[1].Position)
	assert.Equal(t, enums.ListingStatusAvailable, listing.Status)
}

func TestUpdateForbiddenForOtherSeller(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	owner := uuid.New()
	listing, err := svc.Create(context.Background(), owner, CreateInput{
		Name: "Biscuit", PetType: enums.PetTypeDog, Price: decimal.NewFromInt(100), Quantity: 1,
	})
	require.NoError(t, err)

	name := "Stolen"
	_, err = svc.Update(context.Background(), uuid.New(), listing.ID, UpdateInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.As(err).Code())
}

func TestUpdateSoldListingRejected(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	owner := uuid.New()
	listing, err := svc.Create(context.Background(), owner, CreateInput{
		Name: "Biscuit", PetType: enums.PetTypeDog, Price: decimal.NewFromInt(100), Quantity: 1,
	})
	require.NoError(t, err)
	repo.byID[listing.ID].Status = enums.ListingStatusSold

	name := "Renamed"
	_, err = svc.Update(context.Background(), owner, listing.ID, UpdateInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeStateConflict, apperrors.As(err).Code())
}

func TestUpdateQuantityZeroMarksSold(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	owner := uuid.New()
	listing, err := svc.Create(context.Background(), owner, CreateInput{
		Name: "Biscuit", PetType: enums.PetTypeDog, Price: decimal.NewFromInt(100), Quantity: 3,
	})
	require.NoError(t, err)

	zero := 0
	updated, err := svc.Update(context.Background(), owner, listing.ID, UpdateInput{Quantity: &zero})
	require.NoError(t, err)
	assert.Equal(t, enums.ListingStatusSold, updated.Status)
}

func TestRemoveSetsRemovedStatus(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	owner := uuid.New()
	listing, err := svc.Create(context.Background(), owner, CreateInput{
		Name: "Biscuit", PetType: enums.PetTypeDog, Price: decimal.NewFromInt(100), Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), owner, listing.ID))
	assert.Equal(t, enums.ListingStatusRemoved, repo.byID[listing.ID].Status)
}

func TestGetNotFound(t *testing.T) {
	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.As(err).Code())
}
