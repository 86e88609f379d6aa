package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/warmpaws/warmpaws-backend/api/middleware"
	"github.com/warmpaws/warmpaws-backend/api/responses"
	"github.com/warmpaws/warmpaws-backend/api/validators"
	"github.com/warmpaws/warmpaws-backend/internal/payments"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

type paymentOrdersRequest struct {
	OrderIDs []string `json:"order_ids" validate:"required,min=1,dive,uuid"`
}

func (req paymentOrdersRequest) parsed() ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.New(apperrors.CodeValidation, "order_ids must be UUIDs")
		}
		out = append(out, id)
	}
	return out, nil
}

// CreatePaymentIntent opens a Stripe payment intent for the buyer's
// pending orders and hands back the client secret.
func CreatePaymentIntent(svc *payments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		var req paymentOrdersRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		ids, err := req.parsed()
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		intent, err := svc.CreateIntent(r.Context(), buyerID, ids)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusCreated, intent)
	}
}

type confirmPaymentRequest struct {
	OrderIDs        []string `json:"order_ids" validate:"required,min=1,dive,uuid"`
	PaymentIntentID string   `json:"payment_intent_id" validate:"omitempty,max=255"`
}

// ConfirmPayment is the optimistic settlement after the client's
// payment sheet succeeds. The webhook remains authoritative.
func ConfirmPayment(svc *payments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		var req confirmPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		ids, err := paymentOrdersRequest{OrderIDs: req.OrderIDs}.parsed()
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		result, err := svc.Confirm(r.Context(), buyerID, ids, req.PaymentIntentID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, result)
	}
}
