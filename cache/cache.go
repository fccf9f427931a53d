// Package cache defines the model cache used by the repository layer.
// Loaded models are inserted after their load hooks have run, so what sits
// in the cache is the hook-processed model. Backends encode values with
// msgpack, which also guarantees that cached models are isolated copies.
//
// Backends:
//   - cache/memory — in-process cache for development and single-node setups
//   - cache/redis — Redis-backed cache for multi-node setups
package cache

import (
	"context"
	"time"
)

// Cache is the key/value model cache interface.
type Cache interface {
	// Get looks up key and decodes the cached value into dest, which must
	// be a non-nil pointer. It reports false when the key is absent or
	// expired; dest is left untouched in that case.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set encodes value and stores it under key for ttl.
	// A non-positive ttl means the entry never expires.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes key. Removing an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

// nop is a Cache that stores nothing. Used when caching is disabled.
type nop struct{}

func (nop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (nop) Set(context.Context, string, any, time.Duration) error { return nil }
func (nop) Delete(context.Context, string) error                  { return nil }

// Nop returns a Cache that stores nothing and never fails.
func Nop() Cache { return nop{} }
