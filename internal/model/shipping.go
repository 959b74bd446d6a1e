package model

import (
	"github.com/shopspring/decimal"
)

// ShippingRuleType categorises shipping rules returned by the rule service.
type ShippingRuleType string

const (
	ShippingStandard ShippingRuleType = "STANDARD"
	ShippingExpress  ShippingRuleType = "EXPRESS"
	ShippingFree     ShippingRuleType = "FREE"
	ShippingPickup   ShippingRuleType = "PICKUP"
)

// ShippingRule is a rule as returned by the rule lookup service. Cities,
// when non-empty, restricts the rule to those destination cities.
type ShippingRule struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Type          ShippingRuleType `json:"type"`
	Cost          decimal.Decimal  `json:"cost"`
	FreeThreshold *decimal.Decimal `json:"freeThreshold,omitempty"`
	Cities        []string         `json:"cities,omitempty"`
}

// ShippingQuoteRequest is the payload sent to the rule lookup service and
// accepted by the quote endpoint.
type ShippingQuoteRequest struct {
	OrderTotal decimal.Decimal `json:"orderTotal"`
	Items      []CartItem      `json:"items"`
	City       string          `json:"city,omitempty"`
}

// ShippingQuote is the calculator's answer. Fallback is set when the rule
// service could not be reached and the hardcoded rate was applied.
type ShippingQuote struct {
	Cost     decimal.Decimal `json:"shippingCost"`
	Rule     *ShippingRule   `json:"rule,omitempty"`
	Fallback bool            `json:"fallback"`
}
