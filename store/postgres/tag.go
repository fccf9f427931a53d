package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/tag"
)

// GetTag retrieves a tag by ID.
func (s *Store) GetTag(ctx context.Context, tagID id.TagID) (*tag.Tag, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, slug, created, last_modified
		FROM piranha_tags
		WHERE id = $1`,
		tagID,
	)

	t, err := scanTag(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrTagNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get tag: %w", err)
	}
	return t, nil
}

// GetTagBySlug retrieves a tag by its slug.
func (s *Store) GetTagBySlug(ctx context.Context, slug string) (*tag.Tag, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, slug, created, last_modified
		FROM piranha_tags
		WHERE slug = $1`,
		slug,
	)

	t, err := scanTag(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrTagNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get tag by slug: %w", err)
	}
	return t, nil
}

// ListTags returns all tags ordered by title.
func (s *Store) ListTags(ctx context.Context) ([]*tag.Tag, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, slug, created, last_modified
		FROM piranha_tags
		ORDER BY title`,
	)
	if err != nil {
		return nil, fmt.Errorf("piranha/postgres: list tags: %w", err)
	}
	defer rows.Close()

	var tags []*tag.Tag
	for rows.Next() {
		t, scanErr := scanTag(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("piranha/postgres: scan tag: %w", scanErr)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// SaveTag inserts or updates a tag.
func (s *Store) SaveTag(ctx context.Context, t *tag.Tag) error {
	t.Touch()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO piranha_tags (id, title, slug, created, last_modified)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			last_modified = EXCLUDED.last_modified`,
		t.ID, t.Title, t.Slug, t.Created, t.LastModified,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/postgres: save tag: %w", err)
	}
	return nil
}

// DeleteTag removes a tag by ID.
func (s *Store) DeleteTag(ctx context.Context, tagID id.TagID) error {
	res, err := s.pool.Exec(ctx,
		`DELETE FROM piranha_tags WHERE id = $1`, tagID,
	)
	if err != nil {
		return fmt.Errorf("piranha/postgres: delete tag: %w", err)
	}
	if res.RowsAffected() == 0 {
		return piranha.ErrTagNotFound
	}
	return nil
}

func scanTag(row pgx.Row) (*tag.Tag, error) {
	var t tag.Tag
	err := row.Scan(&t.ID, &t.Title, &t.Slug, &t.Created, &t.LastModified)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
