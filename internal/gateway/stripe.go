package gateway

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	"github.com/noah-isme/summercamp-api/pkg/config"
	appErrors "github.com/noah-isme/summercamp-api/pkg/errors"
)

// StripeGateway is the thin adapter to the external payment processor. It
// produces a client secret the caller uses to complete the charge directly
// with the processor.
type StripeGateway struct {
	currency    string
	methodTypes []string
}

// NewStripeGateway configures the Stripe client and returns the adapter.
func NewStripeGateway(cfg config.PaymentsConfig) *StripeGateway {
	stripe.Key = cfg.StripeSecretKey

	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	methodTypes := cfg.PaymentMethodTypes
	if len(methodTypes) == 0 {
		methodTypes = []string{"card"}
	}

	return &StripeGateway{currency: currency, methodTypes: methodTypes}
}

// CreateIntent creates a payment intent for the given minor-unit amount and
// returns its client secret.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice(g.methodTypes),
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, "failed to create payment intent")
	}
	return intent.ClientSecret, nil
}
