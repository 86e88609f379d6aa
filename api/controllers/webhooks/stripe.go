package webhooks

import (
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v84/webhook"

	"github.com/warmpaws/warmpaws-backend/api/responses"
	stripewebhooks "github.com/warmpaws/warmpaws-backend/internal/webhooks/stripe"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
	"github.com/warmpaws/warmpaws-backend/pkg/logger"
)

const maxPayloadBytes = 65536

// Stripe verifies the webhook signature and forwards the event to the
// settlement service. Processing errors are acked with a 200 anyway:
// settlement is idempotent and Stripe would otherwise hammer retries,
// mirroring how the client-confirm path already covers the happy case.
func Stripe(svc *stripewebhooks.Service, signingSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logg := logger.FromContext(r.Context())

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
		if err != nil {
			responses.WriteError(w, r, apperrors.Wrap(apperrors.CodeValidation, err, "reading webhook payload"))
			return
		}

		// The signature is the only authentication on this route, so a
		// bad one is rejected before the body is interpreted at all.
		event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), signingSecret)
		if err != nil {
			responses.WriteError(w, r, apperrors.Wrap(apperrors.CodeValidation, err, "invalid webhook signature"))
			return
		}

		if err := svc.HandleEvent(r.Context(), event); err != nil {
			logg.Error("webhook processing failed", err, map[string]any{
				"event_id": event.ID,
				"type":     event.Type,
			})
		}
		responses.WriteSuccess(w, http.StatusOK, map[string]bool{"received": true})
	}
}
