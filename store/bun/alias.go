package bunstore

import (
	"context"
	"fmt"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/alias"
	"github.com/hfz-r/piranha.core/id"
)

// GetAlias retrieves an alias by ID.
func (s *Store) GetAlias(ctx context.Context, aliasID id.AliasID) (*alias.Alias, error) {
	m := new(aliasModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", aliasID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrAliasNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get alias: %w", err)
	}
	return fromAliasModel(m)
}

// GetAliasByURL retrieves the alias registered for the given URL on a site.
func (s *Store) GetAliasByURL(ctx context.Context, siteID id.SiteID, url string) (*alias.Alias, error) {
	m := new(aliasModel)
	err := s.db.NewSelect().Model(m).
		Where("site_id = ?", siteID.String()).
		Where("alias_url = ?", url).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrAliasNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get alias by url: %w", err)
	}
	return fromAliasModel(m)
}

// ListAliases returns all aliases for a site ordered by alias URL.
func (s *Store) ListAliases(ctx context.Context, siteID id.SiteID) ([]*alias.Alias, error) {
	var models []aliasModel
	err := s.db.NewSelect().Model(&models).
		Where("site_id = ?", siteID.String()).
		Order("alias_url").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: list aliases: %w", err)
	}

	aliases := make([]*alias.Alias, 0, len(models))
	for i := range models {
		a, convErr := fromAliasModel(&models[i])
		if convErr != nil {
			return nil, convErr
		}
		aliases = append(aliases, a)
	}
	return aliases, nil
}

// SaveAlias inserts or updates an alias.
func (s *Store) SaveAlias(ctx context.Context, a *alias.Alias) error {
	a.Touch()

	m := toAliasModel(a)
	_, err := s.db.NewInsert().Model(m).
		On("CONFLICT (id) DO UPDATE").
		Set("site_id = EXCLUDED.site_id").
		Set("alias_url = EXCLUDED.alias_url").
		Set("redirect_url = EXCLUDED.redirect_url").
		Set("redirect_type = EXCLUDED.redirect_type").
		Set("last_modified = EXCLUDED.last_modified").
		Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/bun: save alias: %w", err)
	}
	return nil
}

// DeleteAlias removes an alias by ID.
func (s *Store) DeleteAlias(ctx context.Context, aliasID id.AliasID) error {
	res, err := s.db.NewDelete().
		Model((*aliasModel)(nil)).
		Where("id = ?", aliasID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("piranha/bun: delete alias: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return piranha.ErrAliasNotFound
	}
	return nil
}
