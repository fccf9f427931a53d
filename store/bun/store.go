// Package bunstore provides a store backend built on the Bun ORM with the
// PostgreSQL dialect. Models are mapped through dedicated row structs so the
// domain types stay free of ORM tags.
package bunstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/hfz-r/piranha.core/alias"
	"github.com/hfz-r/piranha.core/category"
	"github.com/hfz-r/piranha.core/media"
	"github.com/hfz-r/piranha.core/param"
	"github.com/hfz-r/piranha.core/site"
	"github.com/hfz-r/piranha.core/tag"
)

// Ensure Store implements all subsystem interfaces at compile time.
var (
	_ alias.Store    = (*Store)(nil)
	_ category.Store = (*Store)(nil)
	_ media.Store    = (*Store)(nil)
	_ param.Store    = (*Store)(nil)
	_ site.Store     = (*Store)(nil)
	_ tag.Store      = (*Store)(nil)
)

// Store is a Bun ORM implementation of store.Store using the PostgreSQL
// dialect.
type Store struct {
	db     *bun.DB
	owned  bool
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a new Bun store over an existing *bun.DB. The caller owns the
// db lifecycle — the Store will not close it on Close().
func New(db *bun.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect opens a PostgreSQL connection with pgdriver and wraps it in a Bun
// store. The Store owns the connection and closes it on Close().
func Connect(dsn string, opts ...Option) *Store {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	s := New(bun.NewDB(sqldb, pgdialect.New()), opts...)
	s.owned = true
	return s
}

// DB returns the underlying *bun.DB for advanced usage.
func (s *Store) DB() *bun.DB {
	return s.db
}

// Migrate creates all tables and indexes if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	models := []any{
		(*siteModel)(nil),
		(*aliasModel)(nil),
		(*categoryModel)(nil),
		(*tagModel)(nil),
		(*paramModel)(nil),
		(*folderModel)(nil),
		(*mediaModel)(nil),
	}
	for _, m := range models {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("piranha/bun: create table for %T: %w", m, err)
		}
	}

	indexes := []struct {
		name    string
		unique  bool
		model   any
		columns []string
	}{
		{"idx_piranha_aliases_site_url", true, (*aliasModel)(nil), []string{"site_id", "alias_url"}},
		{"idx_piranha_categories_slug", true, (*categoryModel)(nil), []string{"slug"}},
		{"idx_piranha_tags_slug", true, (*tagModel)(nil), []string{"slug"}},
		{"idx_piranha_params_key", true, (*paramModel)(nil), []string{"key"}},
		{"idx_piranha_media_folders_parent", false, (*folderModel)(nil), []string{"parent_id"}},
		{"idx_piranha_media_folder", false, (*mediaModel)(nil), []string{"folder_id"}},
	}
	for _, idx := range indexes {
		q := s.db.NewCreateIndex().Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists()
		if idx.unique {
			q = q.Unique()
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("piranha/bun: create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection when the Store owns it (Connect); stores built
// over a caller-provided db (New) leave the lifecycle to the caller.
func (s *Store) Close() error {
	if s.owned {
		return s.db.Close()
	}
	return nil
}
