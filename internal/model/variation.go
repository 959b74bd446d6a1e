package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariation is a sellable configuration of a product:
// size (weight in grams) crossed with an optional type (flavour additive)
// and an optional bean (roast/grind). Price, when set, overrides the
// product's base price. The tuple (product, size, type, bean) is unique
// among active variations so resolution is never ambiguous.
type ProductVariation struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	ProductID     string           `json:"productId" db:"product_id"`
	SizeGrams     int              `json:"sizeGrams" db:"size_grams"`
	TypeID        *string          `json:"typeId,omitempty" db:"type_id"`
	BeanID        *string          `json:"beanId,omitempty" db:"bean_id"`
	Price         *decimal.Decimal `json:"price,omitempty" db:"price"`
	StockQuantity int              `json:"stockQuantity" db:"stock_quantity"`
	Active        bool             `json:"active" db:"active"`
	SKU           *string          `json:"sku,omitempty" db:"sku"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
}

// VariationSelection is the requested dimension combination for resolution.
// SizeGrams is required; TypeID and BeanID are optional depending on the
// product category (plain roasts carry no type dimension).
type VariationSelection struct {
	SizeGrams int     `json:"sizeGrams"`
	TypeID    *string `json:"typeId,omitempty"`
	BeanID    *string `json:"beanId,omitempty"`
}

// Matches reports whether the variation is an exact match for the selection.
// All dimensions must agree, including absent ones: a selection without a
// type never matches a variation that has one, and vice versa.
func (v *ProductVariation) Matches(sel VariationSelection) bool {
	if v.SizeGrams != sel.SizeGrams {
		return false
	}
	return ptrEqual(v.TypeID, sel.TypeID) && ptrEqual(v.BeanID, sel.BeanID)
}

// UnitBasePrice returns the variation's own price when set, otherwise the
// product's base price.
func (v *ProductVariation) UnitBasePrice(product *Product) decimal.Decimal {
	if v.Price != nil {
		return *v.Price
	}
	return product.BasePrice
}

func ptrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// PricedItem is a server-side priced cart line: the resolved variation plus
// the effective unit price after any active discount.
type PricedItem struct {
	Product   *Product          `json:"product"`
	Variation *ProductVariation `json:"variation"`
	UnitPrice decimal.Decimal   `json:"unitPrice"`
	Quantity  int               `json:"quantity"`
}
