package bunstore

import (
	"context"
	"fmt"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/tag"
)

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, tagID id.TagID) (*tag.Tag, error) {
	m := new(tagModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", tagID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrTagNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get tag: %w", err)
	}
	return fromTagModel(m)
}

// GetTagBySlug retrieves a tag by its slug.
func (s *Store) GetTagBySlug(ctx context.Context, slug string) (*tag.Tag, error) {
	m := new(tagModel)
	err := s.db.NewSelect().Model(m).
		Where("slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrTagNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get tag by slug: %w", err)
	}
	return fromTagModel(m)
}

// ListTags returns all tags ordered by title.
func (s *Store) ListTags(ctx context.Context) ([]*tag.Tag, error) {
	var models []tagModel
	err := s.db.NewSelect().Model(&models).
		Order("title").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: list tags: %w", err)
	}

	tags := make([]*tag.Tag, 0, len(models))
	for i := range models {
		t, convErr := fromTagModel(&models[i])
		if convErr != nil {
			return nil, convErr
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// SaveTag inserts or updates a tag.
func (s *Store) SaveTag(ctx context.Context, t *tag.Tag) error {
	t.Touch()

	m := toTagModel(t)
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
		return fmt.Errorf("piranha/bun: save tag: %w", err)
	}
	return nil
}

// DeleteTag removes a tag by ID.
func (s *Store) DeleteTag(ctx context.Context, tagID id.TagID) error {
	res, err := s.db.NewDelete().
		Model((*tagModel)(nil)).
		Where("id = ?", tagID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("piranha/bun: delete tag: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return piranha.ErrTagNotFound
	}
	return nil
}
