// Package shipping computes shipping costs from rules served by an external
// rule service, with a hardcoded fallback when the service is unavailable.
package shipping

import (
	"context"
	"strings"

	"roastery/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Fallback rate: free at or above 200 AED, otherwise a 25 AED flat rate.
// These values are a compatibility contract with the storefront and must
// not drift.
var (
	fallbackFreeThreshold = decimal.NewFromInt(200)
	fallbackFlatRate      = decimal.NewFromInt(25)
)

// Calculator resolves a shipping cost for an order.
type Calculator struct {
	lookup RuleLookup
	logger zerolog.Logger
}

// NewCalculator creates a shipping calculator.
func NewCalculator(lookup RuleLookup, logger zerolog.Logger) *Calculator {
	return &Calculator{
		lookup: lookup,
		logger: logger.With().Str("component", "shipping-calculator").Logger(),
	}
}

// Quote returns the shipping cost for an order. Rule service failures are
// swallowed and replaced by the fallback rate so checkout stays usable when
// the service is down.
func (c *Calculator) Quote(ctx context.Context, req model.ShippingQuoteRequest) model.ShippingQuote {
	rule, err := c.lookup.Lookup(ctx, req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("rule lookup failed, applying fallback rate")
		return c.fallback(req.OrderTotal)
	}
	if rule == nil {
		c.logger.Debug().Msg("no rule matched, applying fallback rate")
		return c.fallback(req.OrderTotal)
	}

	if len(rule.Cities) > 0 && !cityListed(rule.Cities, req.City) {
		c.logger.Debug().
			Str("rule", rule.ID).
			Str("city", req.City).
			Msg("rule restricted to other cities, applying fallback rate")
		return c.fallback(req.OrderTotal)
	}

	return model.ShippingQuote{
		Cost: evaluate(rule, req.OrderTotal),
		Rule: rule,
	}
}

// evaluate applies a matched rule to the order total.
func evaluate(rule *model.ShippingRule, orderTotal decimal.Decimal) decimal.Decimal {
	if rule.Type == model.ShippingFree || rule.Type == model.ShippingPickup {
		return decimal.Zero
	}
	if rule.FreeThreshold != nil && orderTotal.GreaterThanOrEqual(*rule.FreeThreshold) {
		return decimal.Zero
	}
	return rule.Cost.Round(2)
}

// fallback is the hardcoded 0/25 AED rate, boundary inclusive at 200.
func (c *Calculator) fallback(orderTotal decimal.Decimal) model.ShippingQuote {
	cost := fallbackFlatRate
	if orderTotal.GreaterThanOrEqual(fallbackFreeThreshold) {
		cost = decimal.Zero
	}
	return model.ShippingQuote{Cost: cost, Fallback: true}
}

func cityListed(cities []string, city string) bool {
	for _, c := range cities {
		if strings.EqualFold(c, city) {
			return true
		}
	}
	return false
}
