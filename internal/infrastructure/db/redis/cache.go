package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prostore/catalog-api/internal/core/ports"
)

const (
	catalogKey = "catalog:products"
	catalogTTL = time.Minute
)

// CatalogCache stores the rendered product list in Redis. Cache trouble
// is logged and reported as a miss; the catalog is always recomputable
// from Mongo.
type CatalogCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, log: log}
}

// GetList returns the cached catalog and whether it was present.
func (c *CatalogCache) GetList(ctx context.Context) ([]ports.ProductView, bool) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}

	var views []ports.ProductView
	if err := json.Unmarshal(raw, &views); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache entry corrupt, dropping")
		_ = c.client.Del(ctx, catalogKey).Err()
		return nil, false
	}
	return views, true
}

// SetList stores the catalog with the cache TTL.
func (c *CatalogCache) SetList(ctx context.Context, views []ports.ProductView) {
	raw, err := json.Marshal(views)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog cache encode failed")
		return
	}
	if err := c.client.Set(ctx, catalogKey, raw, catalogTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache write failed")
	}
}

// Invalidate drops the cached catalog. Called on every mutation.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
