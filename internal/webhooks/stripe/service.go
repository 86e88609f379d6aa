package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	stripelib "github.com/stripe/stripe-go/v84"

	"github.com/warmpaws/warmpaws-backend/internal/payments"
	"github.com/warmpaws/warmpaws-backend/pkg/logger"
	"github.com/warmpaws/warmpaws-backend/pkg/metrics"
	"github.com/warmpaws/warmpaws-backend/pkg/redis"
)

const eventClaimTTL = 24 * time.Hour

type claimStore interface {
	ClaimOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Service settles orders off Stripe webhook events. Redis deduplicates
// redeliveries as a fast path; the conditional settlement update in
// the database is what actually guarantees exactly-once inventory
// movement.
type Service struct {
	settler *payments.Settler
	claims  claimStore
}

func NewService(settler *payments.Settler, claims claimStore) (*Service, error) {
	if settler == nil {
		return nil, fmt.Errorf("settler is required")
	}
	return &Service{settler: settler, claims: claims}, nil
}

// HandleEvent processes one verified event. Errors are returned for
// logging but the HTTP layer acks regardless, because Stripe retries
// on non-2xx and settlement is idempotent anyway.
func (s *Service) HandleEvent(ctx context.Context, event stripelib.Event) error {
	logg := logger.FromContext(ctx)

	if s.claims != nil && event.ID != "" {
		key := redis.IdempotencyKey("stripe-event", event.ID)
		claimed, err := s.claims.ClaimOnce(ctx, key, eventClaimTTL)
		if err != nil {
			// Redis being down must not stop settlement.
			logg.Warn("idempotency store unavailable", map[string]any{"event_id": event.ID})
		} else if !claimed {
			logg.Info("duplicate webhook event skipped", map[string]any{"event_id": event.ID})
			metrics.WebhookEvents.WithLabelValues(string(event.Type), "duplicate").Inc()
			return nil
		}
	}

	var outcome string
	var err error
	switch string(event.Type) {
	case "payment_intent.succeeded":
		outcome, err = s.handleSucceeded(ctx, event)
	case "payment_intent.payment_failed":
		outcome = s.handleFailed(ctx, event)
	default:
		logg.Debug("ignoring webhook event", map[string]any{"type": event.Type})
		outcome = "ignored"
	}

	if err != nil && s.claims != nil && event.ID != "" {
		// Free the claim so a Stripe redelivery can retry.
		_ = s.claims.Release(ctx, redis.IdempotencyKey("stripe-event", event.ID))
		outcome = "error"
	}
	metrics.WebhookEvents.WithLabelValues(string(event.Type), outcome).Inc()
	return err
}

func (s *Service) handleSucceeded(ctx context.Context, event stripelib.Event) (string, error) {
	logg := logger.FromContext(ctx)

	var intent stripelib.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return "error", fmt.Errorf("decoding payment intent: %w", err)
	}

	raw := intent.Metadata["orderIds"]
	if raw == "" {
		// Stripe CLI probes and foreign intents carry no order ids.
		logg.Info("payment intent without order metadata, acked", map[string]any{
			"payment_intent_id": intent.ID,
		})
		return "no_orders", nil
	}

	var orderIDs []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			logg.Warn("skipping malformed order id in metadata", map[string]any{
				"payment_intent_id": intent.ID,
				"raw":               part,
			})
			continue
		}
		orderIDs = append(orderIDs, id)
	}
	if len(orderIDs) == 0 {
		return "no_orders", nil
	}

	settled, err := s.settler.SettleOrders(ctx, orderIDs, intent.ID)
	if err != nil {
		return "error", err
	}
	logg.Info("webhook settled orders", map[string]any{
		"payment_intent_id": intent.ID,
		"orders":            len(orderIDs),
		"settled":           settled,
	})
	return "settled", nil
}

// handleFailed only records the failure. Orders stay pending so the
// buyer can retry payment with the same checkout.
func (s *Service) handleFailed(ctx context.Context, event stripelib.Event) string {
	logg := logger.FromContext(ctx)

	var intent stripelib.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		logg.Warn("undecodable payment_failed event", map[string]any{"event_id": event.ID})
		return "error"
	}
	reason := ""
	if intent.LastPaymentError != nil {
		reason = intent.LastPaymentError.Msg
	}
	logg.Warn("payment failed", map[string]any{
		"payment_intent_id": intent.ID,
		"order_ids":         intent.Metadata["orderIds"],
		"reason":            reason,
	})
	return "failed"
}
