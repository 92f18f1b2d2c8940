package cache

import (
	"context"
	"fmt"
	"time"
)

// catalogTTL bounds staleness for cached catalog reads. Writes invalidate
// eagerly, so the TTL only matters for out-of-band database changes.
const catalogTTL = 5 * time.Minute

// CatalogCache caches serialized product payloads keyed by product ID.
// Values are opaque JSON produced by the product service, so the cache has
// no dependency on response shapes.
type CatalogCache struct {
	redis *RedisClient
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(redis *RedisClient) *CatalogCache {
	return &CatalogCache{redis: redis}
}

func (c *CatalogCache) keyProduct(id int) string {
	return fmt.Sprintf("catalog:product:%d", id)
}

// GetProduct returns the cached payload for a product, if present.
func (c *CatalogCache) GetProduct(ctx context.Context, id int) ([]byte, bool, error) {
	return c.redis.Get(ctx, c.keyProduct(id))
}

// SetProduct stores a product payload with the catalog TTL.
func (c *CatalogCache) SetProduct(ctx context.Context, id int, payload []byte) error {
	return c.redis.Set(ctx, c.keyProduct(id), payload, catalogTTL)
}

// DeleteProduct removes a product payload after a write.
func (c *CatalogCache) DeleteProduct(ctx context.Context, id int) error {
	return c.redis.Delete(ctx, c.keyProduct(id))
}
