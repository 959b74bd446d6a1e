package repository

import (
	"context"

	"roastery/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// GetAll retrieves active products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its exact ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetBySlug retrieves a single product by its exact slug.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// SearchByNormalizedSlug performs the permissive fallback lookup: a
	// case-insensitive substring match of term against name, name_ar and
	// sku. Candidates are ordered by (created_at, id) so the first match
	// is deterministic.
	SearchByNormalizedSlug(ctx context.Context, term string) (*model.Product, error)

	// GetCategories retrieves all categories.
	GetCategories(ctx context.Context) ([]model.Category, error)

	// GetVariations retrieves a product's variations, optionally
	// restricted to active ones.
	GetVariations(ctx context.Context, productID string, activeOnly bool) ([]model.ProductVariation, error)

	// GetActiveDiscount returns the active discount for a variation,
	// preferring a variation-level discount over a product-level one.
	// Returns nil when no discount applies.
	GetActiveDiscount(ctx context.Context, productID string, variationID uuid.UUID) (*model.Discount, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// DecrementStock reduces a variation's stock within the transaction.
	// Returns model.ErrInsufficientStock when the remaining stock does not
	// cover the quantity.
	DecrementStock(ctx context.Context, tx pgx.Tx, variationID uuid.UUID, quantity int) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// UpdateStatus sets an order's status and returns the updated order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
}

// CustomerRepository defines the interface for customer and newsletter data access.
type CustomerRepository interface {
	// GetByEmail retrieves a customer by email within the transaction.
	// Returns nil when no customer exists.
	GetByEmail(ctx context.Context, tx pgx.Tx, email string) (*model.Customer, error)

	// Create inserts a new customer within the transaction.
	Create(ctx context.Context, tx pgx.Tx, customer *model.Customer) error

	// Subscribe adds an email to the newsletter. Returns false when the
	// email was already subscribed.
	Subscribe(ctx context.Context, email string) (bool, error)
}
