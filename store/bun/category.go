package bunstore

import (
	"context"
	"fmt"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/category"
	"github.com/hfz-r/piranha.core/id"
)

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(ctx context.Context, categoryID id.CategoryID) (*category.Category, error) {
	m := new(categoryModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", categoryID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get category: %w", err)
	}
	return fromCategoryModel(m)
}

// GetCategoryBySlug retrieves a category by its slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*category.Category, error) {
	m := new(categoryModel)
	err := s.db.NewSelect().Model(m).
		Where("slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get category by slug: %w", err)
	}
	return fromCategoryModel(m)
}

// ListCategories returns all categories ordered by title.
func (s *Store) ListCategories(ctx context.Context) ([]*category.Category, error) {
	var models []categoryModel
	err := s.db.NewSelect().Model(&models).
		Order("title").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: list categories: %w", err)
	}

	categories := make([]*category.Category, 0, len(models))
	for i := range models {
		c, convErr := fromCategoryModel(&models[i])
		if convErr != nil {
			return nil, convErr
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// SaveCategory inserts or updates a category.
func (s *Store) SaveCategory(ctx context.Context, c *category.Category) error {
	c.Touch()

	m := toCategoryModel(c)
	_, err := s.db.NewInsert().Model(m).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("slug = EXCLUDED.slug").
		Set("last_modified = EXCLUDED.last_modified").
		Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/bun: save category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category by ID.
func (s *Store) DeleteCategory(ctx context.Context, categoryID id.CategoryID) error {
	res, err := s.db.NewDelete().
		Model((*categoryModel)(nil)).
		Where("id = ?", categoryID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("piranha/bun: delete category: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return piranha.ErrCategoryNotFound
	}
	return nil
}
