package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

type StripeGateway struct {
	api *client.API
	log *zap.Logger
}

func NewStripeGateway(secretKey string, log *zap.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api: api,
		log: log.With(zap.String("gateway", "stripe")),
	}
}

// New returns the Stripe gateway, or Disabled when secretKey is empty.
func New(secretKey string, log *zap.Logger) Gateway {
	if secretKey == "" {
		log.Warn("STRIPE_SECRET_KEY not set, payment intents are disabled")
		return Disabled{}
	}
	return NewStripeGateway(secretKey, log)
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		g.log.Error("Failed to create payment intent",
			zap.Error(err),
			zap.Int64("amount", amount),
			zap.String("currency", currency),
		)
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
