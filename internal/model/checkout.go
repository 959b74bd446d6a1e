package model

import (
	"github.com/shopspring/decimal"
)

// CustomerInfo is the first checkout step.
type CustomerInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ShippingInfo is the second checkout step. City must belong to the chosen
// emirate; changing the emirate invalidates a previously chosen city.
type ShippingInfo struct {
	Emirate string `json:"emirate"`
	City    string `json:"city"`
	Address string `json:"address"`
}

// CartItem is a client-held line item. UnitPrice is the client's display
// snapshot and is never trusted for charging; the server reprices every
// item from persisted data.
type CartItem struct {
	ProductID string             `json:"productId"`
	Selection VariationSelection `json:"selection"`
	Quantity  int                `json:"quantity"`
	UnitPrice decimal.Decimal    `json:"unitPrice"`
	Name      string             `json:"name,omitempty"`
}

// CheckoutRequest is the single-submission checkout payload. ClientTotal,
// when present, is cross-checked against the server-computed total.
type CheckoutRequest struct {
	Customer        CustomerInfo     `json:"customer"`
	Shipping        ShippingInfo     `json:"shipping"`
	Items           []CartItem       `json:"items"`
	PaymentMethodID string           `json:"paymentMethodId"`
	ClientTotal     *decimal.Decimal `json:"clientTotal,omitempty"`
}

// CheckoutResponse is the confirmation snapshot surfaced after a
// successful checkout.
type CheckoutResponse struct {
	OrderID       string          `json:"orderId"`
	IsNewCustomer bool            `json:"isNewCustomer"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ShippingCost  decimal.Decimal `json:"shippingCost"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
}
