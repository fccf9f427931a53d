// Package memory implements an in-process model cache on a concurrent map.
// Entries are msgpack-encoded so readers always get isolated copies, and
// expiry is checked lazily on read.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hfz-r/piranha.core/cache"
)

// Ensure Cache implements cache.Cache at compile time.
var _ cache.Cache = (*Cache)(nil)

type entry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

// Cache is an in-process cache.Cache implementation.
// Safe for concurrent access.
type Cache struct {
	entries *xsync.Map[string, entry]
}

// New returns a new empty Cache.
func New() *Cache {
	return &Cache{entries: xsync.NewMap[string, entry]()}
}

// Get decodes the cached value for key into dest.
func (c *Cache) Get(_ context.Context, key string, dest any) (bool, error) {
	e, ok := c.entries.Load(key)
	if !ok {
		return false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.entries.Delete(key)
		return false, nil
	}
	if err := msgpack.Unmarshal(e.data, dest); err != nil {
		return false, fmt.Errorf("piranha/cache: decode %s: %w", key, err)
	}
	return true, nil
}

// Set encodes value and stores it under key for ttl.
func (c *Cache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("piranha/cache: encode %s: %w", key, err)
	}
	e := entry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.entries.Store(key, e)
	return nil
}

// Delete removes key.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}
