package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warmpaws/warmpaws-backend/api/middleware"
	"github.com/warmpaws/warmpaws-backend/api/responses"
	"github.com/warmpaws/warmpaws-backend/api/validators"
	"github.com/warmpaws/warmpaws-backend/internal/cart"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

func GetCart(svc *cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		view, err := svc.Get(r.Context(), buyerID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, view)
	}
}

type addToCartRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

func AddToCart(svc *cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		var req addToCartRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		listingID, err := uuid.Parse(req.ListingID)
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, "listing_id must be a UUID"))
			return
		}
		view, err := svc.Add(r.Context(), buyerID, listingID, req.Quantity)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, view)
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func UpdateCartItem(svc *cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		listingID, err := uuid.Parse(chi.URLParam(r, "listingID"))
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, "listing id must be a UUID"))
			return
		}
		var req updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		view, err := svc.SetQuantity(r.Context(), buyerID, listingID, req.Quantity)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, view)
	}
}

func RemoveCartItem(svc *cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		listingID, err := uuid.Parse(chi.URLParam(r, "listingID"))
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, "listing id must be a UUID"))
			return
		}
		view, err := svc.Remove(r.Context(), buyerID, listingID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, view)
	}
}

func ClearCart(svc *cart.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		if err := svc.Clear(r.Context(), buyerID); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
