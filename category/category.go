// Package category defines the taxonomy category model and its store
// interface.
package category

import (
	"context"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
)

// Category is a named taxonomy entry with a URL-safe slug. An empty slug is
// filled in from the title on save.
type Category struct {
	piranha.Entity

	ID    id.CategoryID `json:"id"`
	Title string        `json:"title"`
	Slug  string        `json:"slug"`
}

// Store is the persistence interface for categories.
type Store interface {
	// GetCategory retrieves a category by ID.
	GetCategory(ctx context.Context, categoryID id.CategoryID) (*Category, error)

	// GetCategoryBySlug retrieves a category by its slug.
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)

	// ListCategories returns all categories ordered by title.
	ListCategories(ctx context.Context) ([]*Category, error)

	// SaveCategory inserts or updates a category.
	SaveCategory(ctx context.Context, c *Category) error

	// DeleteCategory removes a category by ID.
	DeleteCategory(ctx context.Context, categoryID id.CategoryID) error
}
