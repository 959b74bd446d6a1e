package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// stripeGateway implements Gateway on Stripe payment intents. Every
// Authorize call creates a fresh intent and confirms it immediately, so a
// retried checkout never reuses a stale client secret.
type stripeGateway struct {
	logger zerolog.Logger
}

// NewStripeGateway creates a Stripe-backed gateway. The API key is set
// process-wide, matching the stripe-go client model.
func NewStripeGateway(apiKey string, logger zerolog.Logger) Gateway {
	stripe.Key = apiKey
	return &stripeGateway{
		logger: logger.With().Str("component", "stripe-gateway").Logger(),
	}
}

// Authorize creates and confirms a payment intent for the given amount.
// The amount is converted to the currency's minor unit (fils for AED).
func (g *stripeGateway) Authorize(ctx context.Context, amount decimal.Decimal, currency string, paymentMethodID string, metadata map[string]string) (string, error) {
	minorUnits := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(minorUnits),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String(string(stripe.PaymentIntentAutomaticPaymentMethodsAllowRedirectsNever)),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			g.logger.Warn().
				Str("code", string(stripeErr.Code)).
				Str("type", string(stripeErr.Type)).
				Msg("payment authorization declined")
			return "", &Error{Message: stripeErr.Msg}
		}
		g.logger.Error().Err(err).Msg("payment intent creation failed")
		return "", fmt.Errorf("payment intent creation failed: %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded &&
		intent.Status != stripe.PaymentIntentStatusRequiresCapture {
		g.logger.Warn().
			Str("intent_id", intent.ID).
			Str("status", string(intent.Status)).
			Msg("payment intent not authorized")
		return "", &Error{Message: fmt.Sprintf("payment not completed (status %s)", intent.Status)}
	}

	g.logger.Info().
		Str("intent_id", intent.ID).
		Int64("amount_minor", minorUnits).
		Str("currency", currency).
		Msg("payment authorized")

	return intent.ID, nil
}
