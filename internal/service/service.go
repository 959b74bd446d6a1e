package service

import (
	"context"

	"roastery/internal/model"

	"github.com/google/uuid"
)

// ProductService defines catalogue operations.
type ProductService interface {
	// GetAll retrieves active products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetBySlugOrID resolves a product from a slug, a raw id, or the
	// permissive normalized-name fallback. Returns nil when nothing matches.
	GetBySlugOrID(ctx context.Context, slugOrID string) (*model.Product, error)

	// GetVariations lists a product's active variations.
	GetVariations(ctx context.Context, productID string) ([]model.ProductVariation, error)

	// ResolveVariation finds the active variation exactly matching the
	// selection, or model.ErrVariationNotFound.
	ResolveVariation(ctx context.Context, productID string, sel model.VariationSelection) (*model.ProductVariation, error)

	// PriceItem resolves a cart line and computes its effective unit price
	// from persisted data, never from client-submitted prices.
	PriceItem(ctx context.Context, productID string, sel model.VariationSelection, quantity int) (*model.PricedItem, error)

	// GetCategories lists all categories.
	GetCategories(ctx context.Context) ([]model.Category, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder persists a finalized order after payment capture,
	// creating the customer record on first purchase.
	CreateOrder(ctx context.Context, draft *model.OrderDraft) (*model.OrderReceipt, error)

	// GetByID retrieves an order with its line items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// UpdateStatus moves an order to a new status. Terminal statuses
	// (DELIVERED, CANCELLED) cannot change.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
}
