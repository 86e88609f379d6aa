package listings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

type repo interface {
	Create(ctx context.Context, listing *models.Listing) error
	Update(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Listing, error)
	FindAvailable(ctx context.Context, limit, offset int) ([]models.Listing, error)
	ReplacePhotos(ctx context.Context, listingID uuid.UUID, photos []models.ListingPhoto) error
}

type Service struct {
	repo repo
}

func NewService(r repo) (*Service, error) {
	if r == nil {
		return nil, fmt.Errorf("listings repo is required")
	}
	return &Service{repo: r}, nil
}

type CreateInput struct {
	Name        string
	PetType     enums.PetType
	Breed       string
	AgeMonths   int
	Description string
	Price       decimal.Decimal
	Quantity    int
	PhotoURLs   []string
}

func (s *Service) Create(ctx context.Context, sellerID uuid.UUID, in CreateInput) (*models.Listing, error) {
	if !in.PetType.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, "unknown pet type")
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return nil, apperrors.New(apperrors.CodeValidation, "price must be positive")
	}
	if in.Quantity < 1 {
		return nil, apperrors.New(apperrors.CodeValidation, "quantity must be at least 1")
	}

	listing := &models.Listing{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Name:        in.Name,
		PetType:     in.PetType,
		Breed:       in.Breed,
		AgeMonths:   in.AgeMonths,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Quantity:    in.Quantity,
		Status:      enums.ListingStatusAvailable,
	}
	for i, url := range in.PhotoURLs {
		listing.Photos = append(listing.Photos, models.ListingPhoto{
			ID:        uuid.New(),
			ListingID: listing.ID,
			URL:       url,
			Position:  i,
		})
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "creating listing")
	}
	return listing, nil
}

type UpdateInput struct {
	Name        *string
	Breed       *string
	AgeMonths   *int
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
	PhotoURLs   []string
}

func (s *Service) Update(ctx context.Context, sellerID, listingID uuid.UUID, in UpdateInput) (*models.Listing, error) {
	listing, err := s.ownedListing(ctx, sellerID, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status == enums.ListingStatusSold {
		return nil, apperrors.New(apperrors.CodeStateConflict, "sold listings cannot be edited")
	}

	if in.Name != nil {
		listing.Name = *in.Name
	}
	if in.Breed != nil {
		listing.Breed = *in.Breed
	}
	if in.AgeMonths != nil {
		listing.AgeMonths = *in.AgeMonths
	}
	if in.Description != nil {
		listing.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() || in.Price.IsZero() {
			return nil, apperrors.New(apperrors.CodeValidation, "price must be positive")
		}
		listing.Price = in.Price.Round(2)
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, apperrors.New(apperrors.CodeValidation, "quantity cannot be negative")
		}
		listing.Quantity = *in.Quantity
		if listing.Quantity == 0 {
			listing.Status = enums.ListingStatusSold
		} else if listing.Status == enums.ListingStatusSold {
			listing.Status = enums.ListingStatusAvailable
		}
	}

	// Photos persist separately so a metadata-only edit keeps them.
	listing.Photos = nil
	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating listing")
	}
	if in.PhotoURLs != nil {
		photos := make([]models.ListingPhoto, 0, len(in.PhotoURLs))
		for i, url := range in.PhotoURLs {
			photos = append(photos, models.ListingPhoto{
				ID:        uuid.New(),
				ListingID: listing.ID,
				URL:       url,
				Position:  i,
			})
		}
		if err := s.repo.ReplacePhotos(ctx, listing.ID, photos); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "replacing photos")
		}
	}
	return s.Get(ctx, listingID)
}

// Remove retires a listing from the storefront without destroying the
// order history referencing it.
func (s *Service) Remove(ctx context.Context, sellerID, listingID uuid.UUID) error {
	listing, err := s.ownedListing(ctx, sellerID, listingID)
	if err != nil {
		return err
	}
	listing.Status = enums.ListingStatusRemoved
	listing.Photos = nil
	if err := s.repo.Update(ctx, listing); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "removing listing")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "listing not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading listing")
	}
	return listing, nil
}

func (s *Service) ListMine(ctx context.Context, sellerID uuid.UUID) ([]models.Listing, error) {
	out, err := s.repo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing seller inventory")
	}
	return out, nil
}

func (s *Service) ListAvailable(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	out, err := s.repo.FindAvailable(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing storefront")
	}
	return out, nil
}

func (s *Service) ownedListing(ctx context.Context, sellerID, listingID uuid.UUID) (*models.Listing, error) {
	listing, err := s.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, apperrors.New(apperrors.CodeForbidden, "listing belongs to another seller")
	}
	return listing, nil
}
