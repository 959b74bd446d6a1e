package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order is the persisted record of a completed checkout. Customer and
// shipping fields are snapshotted onto the order so later edits to the
// customer record do not rewrite history.
type Order struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	CustomerID   uuid.UUID       `json:"customerId" db:"customer_id"`
	FullName     string          `json:"fullName" db:"full_name"`
	Email        string          `json:"email" db:"email"`
	Phone        string          `json:"phone" db:"phone"`
	Emirate      string          `json:"emirate" db:"emirate"`
	City         string          `json:"city" db:"city"`
	Address      string          `json:"address" db:"address"`
	Subtotal     decimal.Decimal `json:"subtotal" db:"subtotal"`
	ShippingCost decimal.Decimal `json:"shippingCost" db:"shipping_cost"`
	Discount     decimal.Decimal `json:"discount" db:"discount"`
	Total        decimal.Decimal `json:"total" db:"total"`
	PaymentRef   string          `json:"paymentRef" db:"payment_ref"`
	Status       OrderStatus     `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item snapshot. Name and UnitPrice are copied at
// order time; the variation row may change or disappear afterwards.
type OrderItem struct {
	ID          uuid.UUID       `json:"-" db:"id"`
	OrderID     uuid.UUID       `json:"-" db:"order_id"`
	ProductID   string          `json:"productId" db:"product_id"`
	VariationID uuid.UUID       `json:"variationId" db:"variation_id"`
	Name        string          `json:"name" db:"name"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Quantity    int             `json:"quantity" db:"quantity"`
}

// OrderDraft carries everything the order writer needs to persist an order
// after payment has been captured.
type OrderDraft struct {
	Customer     CustomerInfo
	Shipping     ShippingInfo
	Items        []OrderItem
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
	PaymentRef   string
}

// OrderReceipt is returned by the order writer on success.
type OrderReceipt struct {
	OrderID       uuid.UUID `json:"orderId"`
	IsNewCustomer bool      `json:"isNewCustomer"`
}
