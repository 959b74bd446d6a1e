// Package payment abstracts the charge-authorization collaborator.
package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway authorizes a charge for a checkout total. Authorize returns an
// opaque payment reference on success. A declined or failed charge is
// reported as a *Error carrying the gateway's human-readable message,
// which is surfaced to the customer verbatim.
type Gateway interface {
	Authorize(ctx context.Context, amount decimal.Decimal, currency string, paymentMethodID string, metadata map[string]string) (string, error)
}

// Error is a gateway-side authorization failure.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
