package bunstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/media"
)

// whereOptionalParent scopes a query to a parent column that is NULL at the
// hierarchy root.
func whereOptionalParent(q *bun.SelectQuery, column string, parent id.ID) *bun.SelectQuery {
	if parent.IsNil() {
		return q.Where("? IS NULL", bun.Ident(column))
	}
	return q.Where("? = ?", bun.Ident(column), parent.String())
}

// GetMedia retrieves a media asset by ID.
func (s *Store) GetMedia(ctx context.Context, mediaID id.MediaID) (*media.Media, error) {
	m := new(mediaModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", mediaID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrMediaNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get media: %w", err)
	}
	return fromMediaModel(m)
}

// ListMedia returns the media in a folder ordered by filename. A Nil
// folderID lists the media root.
func (s *Store) ListMedia(ctx context.Context, folderID id.MediaFolderID) ([]*media.Media, error) {
	var models []mediaModel
	q := s.db.NewSelect().Model(&models).Order("filename")
	err := whereOptionalParent(q, "folder_id", folderID).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: list media: %w", err)
	}

	items := make([]*media.Media, 0, len(models))
	for i := range models {
		m, convErr := fromMediaModel(&models[i])
		if convErr != nil {
			return nil, convErr
		}
		items = append(items, m)
	}
	return items, nil
}

// SaveMedia inserts or updates a media asset.
func (s *Store) SaveMedia(ctx context.Context, m *media.Media) error {
	m.Touch()

	row := toMediaModel(m)
	_, err := s.db.NewInsert().Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("folder_id = EXCLUDED.folder_id").
		Set("type = EXCLUDED.type").
		Set("filename = EXCLUDED.filename").
		Set("content_type = EXCLUDED.content_type").
		Set("size = EXCLUDED.size").
		Set("public_url = EXCLUDED.public_url").
		Set("title = EXCLUDED.title").
		Set("alt_text = EXCLUDED.alt_text").
		Set("description = EXCLUDED.description").
		Set("last_modified = EXCLUDED.last_modified").
		Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/bun: save media: %w", err)
	}
	return nil
}

// DeleteMedia removes a media asset by ID.
func (s *Store) DeleteMedia(ctx context.Context, mediaID id.MediaID) error {
	res, err := s.db.NewDelete().
		Model((*mediaModel)(nil)).
		Where("id = ?", mediaID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("piranha/bun: delete media: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return piranha.ErrMediaNotFound
	}
	return nil
}

// GetFolder retrieves a media folder by ID.
func (s *Store) GetFolder(ctx context.Context, folderID id.MediaFolderID) (*media.Folder, error) {
	m := new(folderModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", folderID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrMediaFolderNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get folder: %w", err)
	}
	return fromFolderModel(m)
}

// ListFolders returns the folders under a parent ordered by name. A Nil
// parentID lists the media root.
func (s *Store) ListFolders(ctx context.Context, parentID id.MediaFolderID) ([]*media.Folder, error) {
	var models []folderModel
	q := s.db.NewSelect().Model(&models).Order("name")
	err := whereOptionalParent(q, "parent_id", parentID).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: list folders: %w", err)
	}

	folders := make([]*media.Folder, 0, len(models))
	for i := range models {
		f, convErr := fromFolderModel(&models[i])
		if convErr != nil {
			return nil, convErr
		}
		folders = append(folders, f)
	}
	return folders, nil
}

// SaveFolder inserts or updates a media folder.
func (s *Store) SaveFolder(ctx context.Context, f *media.Folder) error {
	f.Touch()

	m := toFolderModel(f)
	_, err := s.db.NewInsert().Model(m).
		On("CONFLICT (id) DO UPDATE").
		Set("parent_id = EXCLUDED.parent_id").
		Set("name = EXCLUDED.name").
		Set("last_modified = EXCLUDED.last_modified").
		Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/bun: save folder: %w", err)
	}
	return nil
}

// DeleteFolder removes a media folder by ID.
func (s *Store) DeleteFolder(ctx context.Context, folderID id.MediaFolderID) error {
	res, err := s.db.NewDelete().
		Model((*folderModel)(nil)).
		Where("id = ?", folderID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("piranha/bun: delete folder: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return piranha.ErrMediaFolderNotFound
	}
	return nil
}
