package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/media"
)

const mediaColumns = `id, folder_id, type, filename, content_type, size, public_url, title, alt_text, description, created, last_modified`

// GetMedia retrieves a media asset by ID.
func (s *Store) GetMedia(ctx context.Context, mediaID id.MediaID) (*media.Media, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+mediaColumns+`
		FROM piranha_media
		WHERE id = $1`,
		mediaID,
	)

	m, err := scanMedia(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrMediaNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get media: %w", err)
	}
	return m, nil
}

// ListMedia returns the media in a folder ordered by filename. A Nil
// folderID lists the media root.
func (s *Store) ListMedia(ctx context.Context, folderID id.MediaFolderID) ([]*media.Media, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+mediaColumns+`
		FROM piranha_media
		WHERE folder_id IS NOT DISTINCT FROM $1
		ORDER BY filename`,
		folderID,
	)
	if err != nil {
		return nil, fmt.Errorf("piranha/postgres: list media: %w", err)
	}
	defer rows.Close()

	var items []*media.Media
	for rows.Next() {
		m, scanErr := scanMedia(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("piranha/postgres: scan media: %w", scanErr)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// SaveMedia inserts or updates a media asset.
func (s *Store) SaveMedia(ctx context.Context, m *media.Media) error {
	m.Touch()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO piranha_media (
			id, folder_id, type, filename, content_type, size,
			public_url, title, alt_text, description, created, last_modified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			folder_id = EXCLUDED.folder_id,
			type = EXCLUDED.type,
			filename = EXCLUDED.filename,
			content_type = EXCLUDED.content_type,
			size = EXCLUDED.size,
			public_url = EXCLUDED.public_url,
			title = EXCLUDED.title,
			alt_text = EXCLUDED.alt_text,
			description = EXCLUDED.description,
			last_modified = EXCLUDED.last_modified`,
		m.ID, m.FolderID, string(m.Type), m.Filename, m.ContentType, m.Size,
		m.PublicURL, m.Title, m.AltText, m.Description, m.Created, m.LastModified,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/postgres: save media: %w", err)
	}
	return nil
}

// DeleteMedia removes a media asset by ID.
func (s *Store) DeleteMedia(ctx context.Context, mediaID id.MediaID) error {
	res, err := s.pool.Exec(ctx,
		`DELETE FROM piranha_media WHERE id = $1`, mediaID,
	)
	if err != nil {
		return fmt.Errorf("piranha/postgres: delete media: %w", err)
	}
	if res.RowsAffected() == 0 {
		return piranha.ErrMediaNotFound
	}
	return nil
}

// GetFolder retrieves a media folder by ID.
func (s *Store) GetFolder(ctx context.Context, folderID id.MediaFolderID) (*media.Folder, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, parent_id, name, created, last_modified
		FROM piranha_media_folders
		WHERE id = $1`,
		folderID,
	)

	f, err := scanFolder(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrMediaFolderNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get folder: %w", err)
	}
	return f, nil
}

// ListFolders returns the folders under a parent ordered by name. A Nil
// parentID lists the media root.
func (s *Store) ListFolders(ctx context.Context, parentID id.MediaFolderID) ([]*media.Folder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, parent_id, name, created, last_modified
		FROM piranha_media_folders
		WHERE parent_id IS NOT DISTINCT FROM $1
		ORDER BY name`,
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("piranha/postgres: list folders: %w", err)
	}
	defer rows.Close()

	var folders []*media.Folder
	for rows.Next() {
		f, scanErr := scanFolder(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("piranha/postgres: scan folder: %w", scanErr)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// SaveFolder inserts or updates a media folder.
func (s *Store) SaveFolder(ctx context.Context, f *media.Folder) error {
	f.Touch()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO piranha_media_folders (id, parent_id, name, created, last_modified)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			parent_id = EXCLUDED.parent_id,
			name = EXCLUDED.name,
			last_modified = EXCLUDED.last_modified`,
		f.ID, f.ParentID, f.Name, f.Created, f.LastModified,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/postgres: save folder: %w", err)
	}
	return nil
}

// DeleteFolder removes a media folder by ID.
func (s *Store) DeleteFolder(ctx context.Context, folderID id.MediaFolderID) error {
	res, err := s.pool.Exec(ctx,
		`DELETE FROM piranha_media_folders WHERE id = $1`, folderID,
	)
	if err != nil {
		return fmt.Errorf("piranha/postgres: delete folder: %w", err)
	}
	if res.RowsAffected() == 0 {
		return piranha.ErrMediaFolderNotFound
	}
	return nil
}

func scanMedia(row pgx.Row) (*media.Media, error) {
	var m media.Media
	var mediaType string
	err := row.Scan(
		&m.ID, &m.FolderID, &mediaType, &m.Filename, &m.ContentType, &m.Size,
		&m.PublicURL, &m.Title, &m.AltText, &m.Description,
		&m.Created, &m.LastModified,
	)
	if err != nil {
		return nil, err
	}
	m.Type = media.Type(mediaType)
	return &m, nil
}

func scanFolder(row pgx.Row) (*media.Folder, error) {
	var f media.Folder
	err := row.Scan(&f.ID, &f.ParentID, &f.Name, &f.Created, &f.LastModified)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
