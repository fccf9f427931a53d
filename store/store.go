package store

import (
	"context"

	"github.com/hfz-r/piranha.core/alias"
	"github.com/hfz-r/piranha.core/category"
	"github.com/hfz-r/piranha.core/media"
	"github.com/hfz-r/piranha.core/param"
	"github.com/hfz-r/piranha.core/site"
	"github.com/hfz-r/piranha.core/tag"
)

// Store is the aggregate persistence interface.
// Each entity subsystem store is a composable interface; a single backend
// (postgres, bun, memory) implements all of them.
type Store interface {
	alias.Store
	category.Store
	media.Store
	param.Store
	site.Store
	tag.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
