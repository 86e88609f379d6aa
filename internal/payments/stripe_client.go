package payments

import (
	"context"

	stripelib "github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"
)

// IntentClient is the thin seam over the Stripe SDK so the service can
// be tested without network calls.
type IntentClient interface {
	NewIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*stripelib.PaymentIntent, error)
}

type stripeIntentClient struct{}

// NewStripeIntentClient returns the production client. The package
// level API key must already be set.
func NewStripeIntentClient() IntentClient {
	return stripeIntentClient{}
}

func (stripeIntentClient) NewIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*stripelib.PaymentIntent, error) {
	params := &stripelib.PaymentIntentParams{
		Amount:   stripelib.Int64(amountCents),
		Currency: stripelib.String(currency),
		AutomaticPaymentMethods: &stripelib.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripelib.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	return paymentintent.New(params)
}
