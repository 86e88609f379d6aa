package stripe

import (
	"fmt"
	"strings"

	stripelib "github.com/stripe/stripe-go/v84"

	"github.com/warmpaws/warmpaws-backend/pkg/config"
)

// Client holds validated Stripe credentials. Setting the package-level
// key here keeps the rest of the codebase free of init ordering.
type Client struct {
	signingSecret string
}

func New(cfg config.Stripe) (*Client, error) {
	if !strings.HasPrefix(cfg.SecretKey, "sk_") && !strings.HasPrefix(cfg.SecretKey, "rk_") {
		return nil, fmt.Errorf("stripe secret key has unexpected format")
	}
	if !strings.HasPrefix(cfg.WebhookSecret, "whsec_") {
		return nil, fmt.Errorf("stripe webhook secret has unexpected format")
	}
	stripelib.Key = cfg.SecretKey
	return &Client{signingSecret: cfg.WebhookSecret}, nil
}

// SigningSecret is the webhook signature verification secret.
func (c *Client) SigningSecret() string {
	return c.signingSecret
}
