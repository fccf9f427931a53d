// Package redis implements the model cache on Redis for multi-node setups.
// Values are msgpack-encoded; expiry is delegated to Redis TTLs.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	c := rediscache.New(client)
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hfz-r/piranha.core/cache"
)

// Ensure Cache implements cache.Cache at compile time.
var _ cache.Cache = (*Cache)(nil)

// Cache is a Redis-backed cache.Cache implementation. The caller owns the
// Redis client lifecycle.
type Cache struct {
	client redis.Cmdable
}

// New creates a new Redis-backed cache.
func New(client redis.Cmdable) *Cache {
	return &Cache{client: client}
}

// Client returns the underlying Redis client.
func (c *Cache) Client() redis.Cmdable { return c.client }

// Get decodes the cached value for key into dest.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("piranha/redis: get %s: %w", key, err)
	}
	if err := msgpack.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("piranha/redis: decode %s: %w", key, err)
	}
	return true, nil
}

// Set encodes value and stores it under key for ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("piranha/redis: encode %s: %w", key, err)
	}
	if ttl < 0 {
		ttl = 0 // redis treats 0 as no expiry
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("piranha/redis: set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("piranha/redis: delete %s: %w", key, err)
	}
	return nil
}
