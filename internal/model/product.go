package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a roastery product in the catalogue. Names are bilingual;
// NameAr may be empty for products that have not been translated yet.
type Product struct {
	ID         string          `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	NameAr     string          `json:"nameAr" db:"name_ar"`
	Slug       string          `json:"slug" db:"slug"`
	BasePrice  decimal.Decimal `json:"basePrice" db:"base_price"`
	SKU        *string         `json:"sku,omitempty" db:"sku"`
	CategoryID *uuid.UUID      `json:"categoryId,omitempty" db:"category_id"`
	Active     bool            `json:"active" db:"active"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`
}

// Category groups products. Categories form a tree at most one level deep;
// a category must never be its own ancestor.
type Category struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	Name     string     `json:"name" db:"name"`
	NameAr   string     `json:"nameAr" db:"name_ar"`
	Slug     string     `json:"slug" db:"slug"`
	ParentID *uuid.UUID `json:"parentId,omitempty" db:"parent_id"`
}

// DiscountType distinguishes the two supported discount semantics.
type DiscountType string

const (
	DiscountPercentage  DiscountType = "PERCENTAGE"
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

// Discount is attached to either a product or a single variation. A
// variation-level discount takes precedence over a product-level one.
type Discount struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	ProductID   *string         `json:"productId,omitempty" db:"product_id"`
	VariationID *uuid.UUID      `json:"variationId,omitempty" db:"variation_id"`
	Value       decimal.Decimal `json:"value" db:"value"`
	Type        DiscountType    `json:"type" db:"type"`
	Active      bool            `json:"active" db:"active"`
}
