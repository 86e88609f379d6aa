package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warmpaws/warmpaws-backend/api/middleware"
	"github.com/warmpaws/warmpaws-backend/api/responses"
	"github.com/warmpaws/warmpaws-backend/api/validators"
	"github.com/warmpaws/warmpaws-backend/internal/listings"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

type createListingRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	PetType     string   `json:"pet_type" validate:"required"`
	Breed       string   `json:"breed" validate:"max=120"`
	AgeMonths   int      `json:"age_months" validate:"min=0"`
	Description string   `json:"description" validate:"max=4000"`
	Price       string   `json:"price" validate:"required"`
	Quantity    int      `json:"quantity" validate:"required,min=1"`
	PhotoURLs   []string `json:"photo_urls" validate:"max=10,dive,url"`
}

func CreateListing(svc *listings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}

		var req createListingRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, "price must be a decimal string"))
			return
		}
		petType, err := enums.ParsePetType(req.PetType)
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, err.Error()))
			return
		}

		listing, err := svc.Create(r.Context(), sellerID, listings.CreateInput{
			Name:        req.Name,
			PetType:     petType,
			Breed:       req.Breed,
			AgeMonths:   req.AgeMonths,
			Description: req.Description,
			Price:       price,
			Quantity:    req.Quantity,
			PhotoURLs:   req.PhotoURLs,
		})
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusCreated, listing)
	}
}

type updateListingRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=120"`
	Breed       *string  `json:"breed" validate:"omitempty,max=120"`
	AgeMonths   *int     `json:"age_months" validate:"omitempty,min=0"`
	Description *string  `json:"description" validate:"omitempty,max=4000"`
	Price       *string  `json:"price"`
	Quantity    *int     `json:"quantity" validate:"omitempty,min=0"`
	PhotoURLs   []string `json:"photo_urls" validate:"omitempty,max=10,dive,url"`
}

func UpdateListing(svc *listings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		listingID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, "listing id must be a UUID"))
			return
		}

		var req updateListingRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(w, r, err)
			return
		}

		in := listings.UpdateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			AgeMonths:   req.AgeMonths,
			Description: req.Description,
			Quantity:    req.Quantity,
			PhotoURLs:   req.PhotoURLs,
		}
		if req.Price != nil {
			price, err := decimal.NewFromString(*req.Price)
			if err != nil {
				responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, "price must be a decimal string"))
				return
			}
			in.Price = &price
		}

		listing, err := svc.Update(r.Context(), sellerID, listingID, in)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, listing)
	}
}

func RemoveListing(svc *listings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		listingID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, "listing id must be a UUID"))
			return
		}
		if err := svc.Remove(r.Context(), sellerID, listingID); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

func GetListing(svc *listings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, "listing id must be a UUID"))
			return
		}
		listing, err := svc.Get(r.Context(), listingID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, listing)
	}
}

func BrowseListings(svc *listings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		out, err := svc.ListAvailable(r.Context(), page.PageSize, page.Offset())
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, out)
	}
}

func MyListings(svc *listings.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		out, err := svc.ListMine(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, out)
	}
}
