// Package cache provides an optional Redis-backed catalogue cache. Lookups
// are cache-aside: a miss falls through to the repository and the result is
// written back with a TTL. Cache failures are never fatal to a request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roastery/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ProductCache caches products keyed by the slug-or-id the storefront
// requested them with.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewProductCache creates a product cache around an existing Redis client.
func NewProductCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "product-cache").Logger(),
	}
}

func productKey(slugOrID string) string {
	return fmt.Sprintf("product:%s", slugOrID)
}

// Get returns the cached product for a slug-or-id, or nil on a miss.
// Errors are logged and reported as misses so Redis outages degrade to
// plain database lookups.
func (c *ProductCache) Get(ctx context.Context, slugOrID string) *model.Product {
	raw, err := c.client.Get(ctx, productKey(slugOrID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", slugOrID).Msg("cache read failed")
		}
		return nil
	}

	var p model.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		c.logger.Warn().Err(err).Str("key", slugOrID).Msg("cache entry corrupt, dropping")
		c.client.Del(ctx, productKey(slugOrID))
		return nil
	}

	return &p
}

// Set stores a product under the requested slug-or-id and, via a pipeline,
// under its canonical slug so later canonical lookups also hit.
func (c *ProductCache) Set(ctx context.Context, slugOrID string, p *model.Product) {
	raw, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn().Err(err).Str("product_id", p.ID).Msg("failed to marshal product for cache")
		return
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, productKey(slugOrID), raw, c.ttl)
	if p.Slug != "" && p.Slug != slugOrID {
		pipe.Set(ctx, productKey(p.Slug), raw, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn().Err(err).Str("product_id", p.ID).Msg("cache write failed")
	}
}

// Invalidate removes a product's cache entries by id and slug.
func (c *ProductCache) Invalidate(ctx context.Context, p *model.Product) {
	if err := c.client.Del(ctx, productKey(p.ID), productKey(p.Slug)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("product_id", p.ID).Msg("cache invalidation failed")
	}
}
