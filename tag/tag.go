// Package tag defines the tag model and its store interface.
package tag

import (
	"context"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
)

// Tag is a free-form label with a URL-safe slug. An empty slug is filled in
// from the title on save.
type Tag struct {
	piranha.Entity

	ID    id.TagID `json:"id"`
	Title string   `json:"title"`
	Slug  string   `json:"slug"`
}

// Store is the persistence interface for tags.
type Store interface {
	// GetTag retrieves a tag by ID.
	GetTag(ctx context.Context, tagID id.TagID) (*Tag, error)

	// GetTagBySlug retrieves a tag by its slug.
	GetTagBySlug(ctx context.Context, slug string) (*Tag, error)

	// ListTags returns all tags ordered by title.
	ListTags(ctx context.Context) ([]*Tag, error)

	// SaveTag inserts or updates a tag.
	SaveTag(ctx context.Context, t *Tag) error

	// DeleteTag removes a tag by ID.
	DeleteTag(ctx context.Context, tagID id.TagID) error
}
