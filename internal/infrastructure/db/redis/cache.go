package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bibliotekopol/library-system/internal/core/domain"
)

const (
	catalogKey = "catalog:books:all"
	catalogTTL = 5 * time.Minute
)

// CatalogCache caches the full-catalog listing in Redis. Only the empty
// query (whole catalog ordered by title) is cached; filtered searches go to
// the store. Every catalog mutation invalidates the key.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// GetCatalog returns the cached catalog and whether the key was present.
func (c *CatalogCache) GetCatalog(ctx context.Context) ([]*domain.Book, bool, error) {
	payload, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var books []*domain.Book
	if err := json.Unmarshal(payload, &books); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, fmt.Errorf("catalog cache decode: %w", err)
	}
	return books, true, nil
}

// SetCatalog stores the catalog listing (expires after catalogTTL).
func (c *CatalogCache) SetCatalog(ctx context.Context, books []*domain.Book) error {
	payload, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, catalogKey, payload, catalogTTL).Err()
}

// Invalidate drops the cached catalog.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
