package controllers

import (
	"net/http"

	"github.com/warmpaws/warmpaws-backend/api/middleware"
	"github.com/warmpaws/warmpaws-backend/api/responses"
	"github.com/warmpaws/warmpaws-backend/api/validators"
	"github.com/warmpaws/warmpaws-backend/internal/checkout"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,max=500"`
	ContactPhone    string `json:"contact_phone" validate:"omitempty,max=40"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
}

// Checkout converts the authenticated buyer's cart into pending orders.
func Checkout(svc *checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		result, err := svc.Checkout(r.Context(), buyerID, checkout.ShippingDetails{
			Address: req.ShippingAddress,
			Phone:   req.ContactPhone,
			Notes:   req.Notes,
		})
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusCreated, result)
	}
}
