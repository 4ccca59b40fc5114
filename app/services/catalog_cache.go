package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// CatalogCache keeps recently fetched catalog pages per vendor
type CatalogCache interface {
	Get(ctx context.Context, vendorID string, page, perPage int) (json.RawMessage, bool)
	Set(ctx context.Context, vendorID string, page, perPage int, payload json.RawMessage)
}

// NewCatalogCache returns a redis-backed cache, or a no-op cache when client is nil or ttl is not positive
func NewCatalogCache(client *redis.Client, prefix string, ttl time.Duration) CatalogCache {
	if client == nil || ttl <= 0 {
		return noopCatalogCache{}
	}
	return &RedisCatalogCache{client: client, prefix: prefix, ttl: ttl}
}

// RedisCatalogCache implements CatalogCache on redis
type RedisCatalogCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (c *RedisCatalogCache) key(vendorID string, page, perPage int) string {
	return fmt.Sprintf("%scatalog:%s:%d:%d", c.prefix, vendorID, page, perPage)
}

// Get returns a cached page; redis errors are treated as a miss
func (c *RedisCatalogCache) Get(ctx context.Context, vendorID string, page, perPage int) (json.RawMessage, bool) {
	val, err := c.client.Get(ctx, c.key(vendorID, page, perPage)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("catalog cache get failed: %v", err)
		}
		catalogCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	catalogCacheLookups.WithLabelValues("hit").Inc()
	return json.RawMessage(val), true
}

// Set stores a page for the configured ttl
func (c *RedisCatalogCache) Set(ctx context.Context, vendorID string, page, perPage int, payload json.RawMessage) {
	if err := c.client.Set(ctx, c.key(vendorID, page, perPage), []byte(payload), c.ttl).Err(); err != nil {
		log.Printf("catalog cache set failed: %v", err)
	}
}

type noopCatalogCache struct{}

func (noopCatalogCache) Get(context.Context, string, int, int) (json.RawMessage, bool) {
	return nil, false
}

func (noopCatalogCache) Set(context.Context, string, int, int, json.RawMessage) {}
