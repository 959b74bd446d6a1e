package checkout

import (
	"context"
	"fmt"

	"roastery/internal/model"
	"roastery/internal/payment"
	"roastery/internal/service"
	"roastery/internal/shipping"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// clientTotalTolerance is the largest accepted gap between the
// client-displayed total and the server-computed one.
var clientTotalTolerance = decimal.NewFromFloat(0.01)

// Orchestrator runs a full checkout: it walks the step state machine,
// reprices the cart from persisted data, quotes shipping, authorizes the
// charge and hands the finalized draft to the order writer.
type Orchestrator struct {
	products service.ProductService
	shipping *shipping.Calculator
	gateway  payment.Gateway
	orders   service.OrderService
	currency string
	logger   zerolog.Logger
}

// NewOrchestrator creates a checkout orchestrator.
func NewOrchestrator(
	products service.ProductService,
	shippingCalc *shipping.Calculator,
	gateway payment.Gateway,
	orders service.OrderService,
	currency string,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		products: products,
		shipping: shippingCalc,
		gateway:  gateway,
		orders:   orders,
		currency: currency,
		logger:   logger.With().Str("component", "checkout").Logger(),
	}
}

// Checkout processes a complete checkout submission. Validation errors are
// returned as model.FieldErrors; payment declines as *payment.Error with
// the gateway's message intact.
func (o *Orchestrator) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	// The session enforces step ordering even for a single-submission
	// checkout: customer info must validate before shipping, shipping
	// before payment.
	session := NewSession()
	if err := session.SubmitCustomerInfo(req.Customer); err != nil {
		return nil, err
	}
	if err := session.SubmitShippingInfo(req.Shipping); err != nil {
		return nil, err
	}
	if !session.ReadyForPayment() {
		return nil, fmt.Errorf("checkout session not ready for payment at step %s", session.Step())
	}

	// Reprice every line from persisted data. Client-held unit prices are
	// display snapshots only.
	subtotal := decimal.Zero
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		priced, err := o.products.PriceItem(ctx, line.ProductID, line.Selection, line.Quantity)
		if err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(priced.UnitPrice.Mul(decimal.NewFromInt(int64(priced.Quantity))))
		items = append(items, model.OrderItem{
			ProductID:   priced.Product.ID,
			VariationID: priced.Variation.ID,
			Name:        priced.Product.Name,
			UnitPrice:   priced.UnitPrice,
			Quantity:    priced.Quantity,
		})
	}
	subtotal = subtotal.Round(2)

	quote := o.shipping.Quote(ctx, model.ShippingQuoteRequest{
		OrderTotal: subtotal,
		Items:      req.Items,
		City:       req.Shipping.City,
	})

	// Coupons are a storefront stub with no backend effect; the order
	// discount is always zero. Product-level discounts are already folded
	// into the unit prices above.
	discount := decimal.Zero
	total := subtotal.Add(quote.Cost).Sub(discount).Round(2)

	if req.ClientTotal != nil {
		if req.ClientTotal.Sub(total).Abs().GreaterThan(clientTotalTolerance) {
			o.logger.Warn().
				Str("client_total", req.ClientTotal.String()).
				Str("server_total", total.String()).
				Msg("client total mismatch, rejecting checkout")
			return nil, model.ErrTotalMismatch
		}
	}

	paymentRef, err := o.gateway.Authorize(ctx, total, o.currency, req.PaymentMethodID, map[string]string{
		"email": req.Customer.Email,
		"city":  req.Shipping.City,
	})
	if err != nil {
		// Gateway errors carry the user-facing message; everything else
		// stays internal.
		return nil, err
	}

	receipt, err := o.orders.CreateOrder(ctx, &model.OrderDraft{
		Customer:     req.Customer,
		Shipping:     req.Shipping,
		Items:        items,
		Subtotal:     subtotal,
		ShippingCost: quote.Cost,
		Discount:     discount,
		Total:        total,
		PaymentRef:   paymentRef,
	})
	if err != nil {
		// Money has moved but the order did not persist. Reconciliation is
		// manual; the payment reference in the log is the handle.
		o.logger.Error().
			Err(err).
			Str("payment_ref", paymentRef).
			Str("email", req.Customer.Email).
			Msg("order persistence failed after payment capture")
		return nil, err
	}

	o.logger.Info().
		Str("order_id", receipt.OrderID.String()).
		Str("payment_ref", paymentRef).
		Str("total", total.String()).
		Bool("shipping_fallback", quote.Fallback).
		Msg("checkout completed")

	return &model.CheckoutResponse{
		OrderID:       receipt.OrderID.String(),
		IsNewCustomer: receipt.IsNewCustomer,
		Subtotal:      subtotal,
		ShippingCost:  quote.Cost,
		Discount:      discount,
		Total:         total,
		Status:        model.OrderStatusNew,
	}, nil
}
