// Package repo implements the generic repository for the Piranha data
// layer. A Repository brackets store operations with lifecycle hooks and
// keeps the model cache coherent:
//
//   - loads run the load hooks after the store fetch and before the model
//     is inserted into the cache, so hook mutations are what gets cached
//   - saves run the before/after save hooks around the store write
//   - deletes run the before/after delete hooks around the store delete
//
// The first hook error aborts the operation and the remaining hooks in that
// chain; the error propagates to the caller unchanged. Cache failures never
// fail an operation — they degrade to store reads and are logged.
package repo

import (
	"context"
	"log/slog"
	"time"

	"github.com/hfz-r/piranha.core/cache"
	"github.com/hfz-r/piranha.core/hook"
	"github.com/hfz-r/piranha.core/id"
)

// Backend adapts one entity subsystem of the store to the generic
// repository. The engine package wires one Backend per entity kind.
type Backend[T any] struct {
	Get    func(ctx context.Context, modelID id.ID) (*T, error)
	Save   func(ctx context.Context, m *T) error
	Delete func(ctx context.Context, modelID id.ID) error
}

// Option configures a Repository.
type Option[T any] func(*Repository[T])

// WithLogger sets the logger for cache degradation warnings.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(r *Repository[T]) { r.logger = l }
}

// WithCacheTTL sets how long loaded models stay cached.
func WithCacheTTL[T any](ttl time.Duration) Option[T] {
	return func(r *Repository[T]) { r.ttl = ttl }
}

// WithNormalizer sets a function that runs on every save before the
// BeforeSave hooks. Used to fill derived fields such as slugs.
func WithNormalizer[T any](fn func(ctx context.Context, m *T) error) Option[T] {
	return func(r *Repository[T]) { r.normalize = fn }
}

// Repository is a typed repository over one entity kind.
type Repository[T any] struct {
	name      string
	be        Backend[T]
	hooks     hook.Handle[T]
	cache     cache.Cache
	keyOf     func(*T) id.ID
	normalize func(ctx context.Context, m *T) error
	logger    *slog.Logger
	ttl       time.Duration
}

// New creates a Repository. name scopes cache keys and log fields; keyOf
// extracts the model's primary ID for cache bookkeeping.
func New[T any](
	name string,
	be Backend[T],
	hooks hook.Handle[T],
	c cache.Cache,
	keyOf func(*T) id.ID,
	opts ...Option[T],
) *Repository[T] {
	r := &Repository[T]{
		name:   name,
		be:     be,
		hooks:  hooks,
		cache:  c,
		keyOf:  keyOf,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Hooks returns the typed hook handle this repository invokes.
func (r *Repository[T]) Hooks() hook.Handle[T] { return r.hooks }

func (r *Repository[T]) cacheKey(modelID id.ID) string {
	return "piranha:" + r.name + ":" + modelID.String()
}

// GetByID retrieves a model by ID. Cache hits return the cached copy
// without touching the store or the load hooks; misses fetch from the
// store, run the load hooks, insert the result into the cache, and return
// it.
func (r *Repository[T]) GetByID(ctx context.Context, modelID id.ID) (*T, error) {
	key := r.cacheKey(modelID)

	var cached T
	ok, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("cache get failed",
			slog.String("repo", r.name),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	} else if ok {
		return &cached, nil
	}

	m, err := r.be.Get(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if err := r.hooks.Load(ctx, m); err != nil {
		return nil, err
	}
	r.insert(ctx, key, m)
	return m, nil
}

// Find retrieves a model via a secondary lookup (by slug, key, URL, ...).
// The load hooks run on the result and the model is inserted into the cache
// under its primary ID, so a following GetByID is a cache hit.
func (r *Repository[T]) Find(ctx context.Context, fetch func(context.Context) (*T, error)) (*T, error) {
	m, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.hooks.Load(ctx, m); err != nil {
		return nil, err
	}
	r.insert(ctx, r.cacheKey(r.keyOf(m)), m)
	return m, nil
}

// List retrieves a set of models, running the load hooks on each item.
// Listings bypass the cache.
func (r *Repository[T]) List(ctx context.Context, fetch func(context.Context) ([]*T, error)) ([]*T, error) {
	models, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		if err := r.hooks.Load(ctx, m); err != nil {
			return nil, err
		}
	}
	return models, nil
}

// Save persists a model: normalizer, BeforeSave hooks, store write, cache
// invalidation, AfterSave hooks — in that order. A hook error aborts the
// operation at that point and propagates.
func (r *Repository[T]) Save(ctx context.Context, m *T) error {
	if r.normalize != nil {
		if err := r.normalize(ctx, m); err != nil {
			return err
		}
	}
	if err := r.hooks.BeforeSave(ctx, m); err != nil {
		return err
	}
	if err := r.be.Save(ctx, m); err != nil {
		return err
	}
	r.evict(ctx, r.cacheKey(r.keyOf(m)))
	return r.hooks.AfterSave(ctx, m)
}

// Delete removes a model by ID: the current instance is fetched so the
// delete hooks receive it, then BeforeDelete hooks, store delete, cache
// invalidation, AfterDelete hooks — in that order.
func (r *Repository[T]) Delete(ctx context.Context, modelID id.ID) error {
	m, err := r.be.Get(ctx, modelID)
	if err != nil {
		return err
	}
	if err := r.hooks.BeforeDelete(ctx, m); err != nil {
		return err
	}
	if err := r.be.Delete(ctx, modelID); err != nil {
		return err
	}
	r.evict(ctx, r.cacheKey(modelID))
	return r.hooks.AfterDelete(ctx, m)
}

// insert stores m in the cache, logging instead of failing.
func (r *Repository[T]) insert(ctx context.Context, key string, m *T) {
	if err := r.cache.Set(ctx, key, m, r.ttl); err != nil {
		r.logger.Warn("cache set failed",
			slog.String("repo", r.name),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// evict removes key from the cache, logging instead of failing.
func (r *Repository[T]) evict(ctx context.Context, key string) {
	if err := r.cache.Delete(ctx, key); err != nil {
		r.logger.Warn("cache delete failed",
			slog.String("repo", r.name),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
