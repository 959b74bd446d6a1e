package service

import (
	"context"
	"fmt"
	"strings"

	"roastery/internal/cache"
	"roastery/internal/model"
	"roastery/internal/pricing"
	"roastery/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	repo   repository.ProductRepository
	cache  *cache.ProductCache // nil when caching is disabled
	logger zerolog.Logger
}

// NewProductService creates a new product service. cache may be nil.
func NewProductService(repo repository.ProductRepository, productCache *cache.ProductCache, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		cache:  productCache,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves active products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	return s.repo.GetAll(ctx, limit, offset)
}

// GetBySlugOrID resolves a product with the storefront's dual-lookup
// policy: exact id first, then exact slug, then a normalized (dashes to
// spaces) case-insensitive substring match against name, Arabic name and
// SKU. The substring fallback is deliberately permissive and returns the
// first match by (created_at, id).
func (s *productService) GetBySlugOrID(ctx context.Context, slugOrID string) (*model.Product, error) {
	slugOrID = strings.TrimSpace(slugOrID)
	if slugOrID == "" {
		return nil, nil
	}

	if s.cache != nil {
		if p := s.cache.Get(ctx, slugOrID); p != nil {
			return p, nil
		}
	}

	product, err := s.repo.GetByID(ctx, slugOrID)
	if err != nil {
		return nil, err
	}

	if product == nil {
		product, err = s.repo.GetBySlug(ctx, slugOrID)
		if err != nil {
			return nil, err
		}
	}

	if product == nil {
		term := strings.ReplaceAll(slugOrID, "-", " ")
		product, err = s.repo.SearchByNormalizedSlug(ctx, term)
		if err != nil {
			return nil, err
		}
		if product != nil {
			s.logger.Debug().
				Str("requested", slugOrID).
				Str("matched", product.ID).
				Msg("product resolved via fallback search")
		}
	}

	if product != nil && s.cache != nil {
		s.cache.Set(ctx, slugOrID, product)
	}

	return product, nil
}

// GetVariations lists a product's active variations.
func (s *productService) GetVariations(ctx context.Context, productID string) ([]model.ProductVariation, error) {
	return s.repo.GetVariations(ctx, productID, true)
}

// ResolveVariation finds the active variation exactly matching the
// selection. There is no partial or nearest matching: an ambiguous
// combination fails loudly rather than silently substituting.
func (s *productService) ResolveVariation(ctx context.Context, productID string, sel model.VariationSelection) (*model.ProductVariation, error) {
	if sel.SizeGrams <= 0 {
		return nil, model.ErrVariationNotFound
	}

	variations, err := s.repo.GetVariations(ctx, productID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load variations: %w", err)
	}

	for i := range variations {
		if variations[i].Matches(sel) {
			return &variations[i], nil
		}
	}

	s.logger.Debug().
		Str("product_id", productID).
		Int("size_grams", sel.SizeGrams).
		Msg("no active variation matched selection")

	return nil, model.ErrVariationNotFound
}

// PriceItem resolves a cart line and computes its unit price from the
// persisted variation price and any active discount.
func (s *productService) PriceItem(ctx context.Context, productID string, sel model.VariationSelection, quantity int) (*model.PricedItem, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.GetBySlugOrID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	variation, err := s.ResolveVariation(ctx, product.ID, sel)
	if err != nil {
		return nil, err
	}

	discount, err := s.repo.GetActiveDiscount(ctx, product.ID, variation.ID)
	if err != nil {
		return nil, err
	}

	return &model.PricedItem{
		Product:   product,
		Variation: variation,
		UnitPrice: pricing.UnitPrice(product, variation, discount),
		Quantity:  quantity,
	}, nil
}

// GetCategories lists all categories.
func (s *productService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.GetCategories(ctx)
}
