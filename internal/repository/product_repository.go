package repository

import (
	"context"
	"errors"
	"fmt"

	"roastery/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, name_ar, slug, base_price, sku, category_id, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.NameAr, &p.Slug, &p.BasePrice, &p.SKU,
		&p.CategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAll retrieves active products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE active
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its exact ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found by id")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetBySlug retrieves a single product by its exact slug.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("slug", slug).Msg("product not found by slug")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query product by slug")
		return nil, fmt.Errorf("failed to query product by slug: %w", err)
	}

	return p, nil
}

// SearchByNormalizedSlug performs the permissive fallback lookup. The term
// has already been normalized (dashes replaced with spaces) by the caller.
// Ordering by (created_at, id) makes the first-match policy deterministic.
func (r *productRepository) SearchByNormalizedSlug(ctx context.Context, term string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE active
		  AND (name ILIKE '%' || $1 || '%'
		    OR name_ar ILIKE '%' || $1 || '%'
		    OR sku ILIKE '%' || $1 || '%')
		ORDER BY created_at, id
		LIMIT 1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, term))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("term", term).Msg("no product matched fallback search")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("term", term).Msg("failed fallback product search")
		return nil, fmt.Errorf("failed fallback product search: %w", err)
	}

	return p, nil
}

// GetCategories retrieves all categories.
func (r *productRepository) GetCategories(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, name_ar, slug, parent_id
		FROM categories
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.NameAr, &c.Slug, &c.ParentID); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetVariations retrieves a product's variations.
func (r *productRepository) GetVariations(ctx context.Context, productID string, activeOnly bool) ([]model.ProductVariation, error) {
	query := `
		SELECT id, product_id, size_grams, type_id, bean_id, price,
		       stock_quantity, active, sku, created_at
		FROM product_variations
		WHERE product_id = $1 AND ($2 = false OR active)
		ORDER BY size_grams, type_id NULLS FIRST, bean_id NULLS FIRST
	`

	rows, err := r.pool.Query(ctx, query, productID, activeOnly)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query variations")
		return nil, fmt.Errorf("failed to query variations: %w", err)
	}
	defer rows.Close()

	var variations []model.ProductVariation
	for rows.Next() {
		var v model.ProductVariation
		err := rows.Scan(&v.ID, &v.ProductID, &v.SizeGrams, &v.TypeID, &v.BeanID,
			&v.Price, &v.StockQuantity, &v.Active, &v.SKU, &v.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan variation row")
			return nil, fmt.Errorf("failed to scan variation: %w", err)
		}
		variations = append(variations, v)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating variation rows")
		return nil, fmt.Errorf("error iterating variations: %w", err)
	}

	return variations, nil
}

// GetActiveDiscount returns the active discount for a variation, preferring
// a variation-level discount over a product-level one.
func (r *productRepository) GetActiveDiscount(ctx context.Context, productID string, variationID uuid.UUID) (*model.Discount, error) {
	query := `
		SELECT id, product_id, variation_id, value, type, active
		FROM discounts
		WHERE active
		  AND (variation_id = $2
		    OR (variation_id IS NULL AND product_id = $1))
		ORDER BY variation_id NULLS LAST
		LIMIT 1
	`

	var d model.Discount
	err := r.pool.QueryRow(ctx, query, productID, variationID).Scan(
		&d.ID, &d.ProductID, &d.VariationID, &d.Value, &d.Type, &d.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("product_id", productID).
			Str("variation_id", variationID.String()).
			Msg("failed to query discount")
		return nil, fmt.Errorf("failed to query discount: %w", err)
	}

	return &d, nil
}
