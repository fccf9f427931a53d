package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/category"
	"github.com/hfz-r/piranha.core/id"
)

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(ctx context.Context, categoryID id.CategoryID) (*category.Category, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, slug, created, last_modified
		FROM piranha_categories
		WHERE id = $1`,
		categoryID,
	)

	c, err := scanCategory(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get category: %w", err)
	}
	return c, nil
}

// GetCategoryBySlug retrieves a category by its slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*category.Category, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, slug, created, last_modified
		FROM piranha_categories
		WHERE slug = $1`,
		slug,
	)

	c, err := scanCategory(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get category by slug: %w", err)
	}
	return c, nil
}

// ListCategories returns all categories ordered by title.
func (s *Store) ListCategories(ctx context.Context) ([]*category.Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, slug, created, last_modified
		FROM piranha_categories
		ORDER BY title`,
	)
	if err != nil {
		return nil, fmt.Errorf("piranha/postgres: list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		c, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("piranha/postgres: scan category: %w", scanErr)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// SaveCategory inserts or updates a category.
func (s *Store) SaveCategory(ctx context.Context, c *category.Category) error {
	c.Touch()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO piranha_categories (id, title, slug, created, last_modified)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			last_modified = EXCLUDED.last_modified`,
		c.ID, c.Title, c.Slug, c.Created, c.LastModified,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/postgres: save category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category by ID.
func (s *Store) DeleteCategory(ctx context.Context, categoryID id.CategoryID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM piranha_categories WHERE id = $1`, categoryID,
	)
	if err != nil {
		return fmt.Errorf("piranha/postgres: delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return piranha.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Created, &c.LastModified)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
