package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warmpaws/warmpaws-backend/api/middleware"
	"github.com/warmpaws/warmpaws-backend/api/responses"
	"github.com/warmpaws/warmpaws-backend/api/validators"
	"github.com/warmpaws/warmpaws-backend/internal/orders"
	"github.com/warmpaws/warmpaws-backend/pkg/enums"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

func GetOrder(svc *orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, "order id must be a UUID"))
			return
		}
		order, err := svc.Get(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, order)
	}
}

func MyPurchases(svc *orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		out, err := svc.Purchases(r.Context(), userID, page.PageSize, page.Offset())
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, out)
	}
}

func MySales(svc *orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		out, err := svc.Sales(r.Context(), userID, page.PageSize, page.Offset())
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, out)
	}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=shipped delivered cancelled"`
}

func UpdateOrderStatus(svc *orders.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
			return
		}
		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, "order id must be a UUID"))
			return
		}
		var req orderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(w, r, err)
			return
		}
		next, err := enums.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(w, r, apperrors.New(apperrors.CodeValidation, err.Error()))
			return
		}
		order, err := svc.Transition(r.Context(), userID, orderID, next)
		if err != nil {
			responses.WriteError(w, r, err)
			return
		}
		responses.WriteSuccess(w, http.StatusOK, order)
	}
}
