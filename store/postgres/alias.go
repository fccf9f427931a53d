package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/alias"
	"github.com/hfz-r/piranha.core/id"
)

// GetAlias retrieves an alias by ID.
func (s *Store) GetAlias(ctx context.Context, aliasID id.AliasID) (*alias.Alias, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, site_id, alias_url, redirect_url, redirect_type, created, last_modified
		FROM piranha_aliases
		WHERE id = $1`,
		aliasID,
	)

	a, err := scanAlias(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrAliasNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get alias: %w", err)
	}
	return a, nil
}

// GetAliasByURL retrieves the alias registered for the given URL on a site.
func (s *Store) GetAliasByURL(ctx context.Context, siteID id.SiteID, url string) (*alias.Alias, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, site_id, alias_url, redirect_url, redirect_type, created, last_modified
		FROM piranha_aliases
		WHERE site_id = $1 AND alias_url = $2`,
		siteID, url,
	)

	a, err := scanAlias(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrAliasNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get alias by url: %w", err)
	}
	return a, nil
}

// ListAliases returns all aliases for a site ordered by alias URL.
func (s *Store) ListAliases(ctx context.Context, siteID id.SiteID) ([]*alias.Alias, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, site_id, alias_url, redirect_url, redirect_type, created, last_modified
		FROM piranha_aliases
		WHERE site_id = $1
		ORDER BY alias_url`,
		siteID,
	)
	if err != nil {
		return nil, fmt.Errorf("piranha/postgres: list aliases: %w", err)
	}
	defer rows.Close()

	var aliases []*alias.Alias
	for rows.Next() {
		a, scanErr := scanAlias(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("piranha/postgres: scan alias: %w", scanErr)
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}

// SaveAlias inserts or updates an alias.
func (s *Store) SaveAlias(ctx context.Context, a *alias.Alias) error {
	a.Touch()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO piranha_aliases (
			id, site_id, alias_url, redirect_url, redirect_type, created, last_modified
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			site_id = EXCLUDED.site_id,
			alias_url = EXCLUDED.alias_url,
			redirect_url = EXCLUDED.redirect_url,
			redirect_type = EXCLUDED.redirect_type,
			last_modified = EXCLUDED.last_modified`,
		a.ID, a.SiteID, a.AliasURL, a.RedirectURL, int(a.Type),
		a.Created, a.LastModified,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/postgres: save alias: %w", err)
	}
	return nil
}

// DeleteAlias removes an alias by ID.
func (s *Store) DeleteAlias(ctx context.Context, aliasID id.AliasID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM piranha_aliases WHERE id = $1`, aliasID,
	)
	if err != nil {
		return fmt.Errorf("piranha/postgres: delete alias: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return piranha.ErrAliasNotFound
	}
	return nil
}

func scanAlias(row pgx.Row) (*alias.Alias, error) {
	var a alias.Alias
	var redirectType int
	err := row.Scan(
		&a.ID, &a.SiteID, &a.AliasURL, &a.RedirectURL, &redirectType,
		&a.Created, &a.LastModified,
	)
	if err != nil {
		return nil, err
	}
	a.Type = alias.RedirectType(redirectType)
	return &a, nil
}
