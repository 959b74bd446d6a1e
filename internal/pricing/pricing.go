// Package pricing implements the discount calculator. All arithmetic uses
// decimal values; results are rounded to two decimal places (AED fils).
package pricing

import (
	"github.com/shopspring/decimal"

	"roastery/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// DiscountedPrice applies a discount to a base price.
//
// A nil-equivalent discount (value <= 0) leaves the base price unchanged.
// PERCENTAGE computes base * (1 - value/100); FIXED_AMOUNT subtracts value
// and clamps at zero. The result is never negative.
func DiscountedPrice(base decimal.Decimal, value decimal.Decimal, discountType model.DiscountType) decimal.Decimal {
	if value.LessThanOrEqual(decimal.Zero) {
		return base.Round(2)
	}

	var price decimal.Decimal
	switch discountType {
	case model.DiscountPercentage:
		price = base.Mul(one.Sub(value.Div(hundred)))
	case model.DiscountFixedAmount:
		price = base.Sub(value)
	default:
		return base.Round(2)
	}

	if price.IsNegative() {
		price = decimal.Zero
	}
	return price.Round(2)
}

// UnitPrice computes the effective unit price of a variation: the variation
// price (or the product base price when the variation has none) with the
// discount applied. A nil discount means no reduction.
func UnitPrice(product *model.Product, variation *model.ProductVariation, discount *model.Discount) decimal.Decimal {
	base := variation.UnitBasePrice(product)
	if discount == nil {
		return base.Round(2)
	}
	return DiscountedPrice(base, discount.Value, discount.Type)
}
