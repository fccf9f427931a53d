package bunstore

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/site"
)

// GetSite retrieves a site by ID.
func (s *Store) GetSite(ctx context.Context, siteID id.SiteID) (*site.Site, error) {
	m := new(siteModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", siteID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrSiteNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get site: %w", err)
	}
	return fromSiteModel(m)
}

// GetDefaultSite retrieves the site flagged as default.
func (s *Store) GetDefaultSite(ctx context.Context) (*site.Site, error) {
	m := new(siteModel)
	err := s.db.NewSelect().Model(m).
		Where("is_default").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrSiteNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get default site: %w", err)
	}
	return fromSiteModel(m)
}

// GetSiteByHostname retrieves the site serving the given hostname. The
// hostnames column holds a comma-separated list; whitespace around entries
// is ignored.
func (s *Store) GetSiteByHostname(ctx context.Context, hostname string) (*site.Site, error) {
	m := new(siteModel)
	err := s.db.NewSelect().Model(m).
		Where("? = ANY(string_to_array(replace(hostnames, ' ', ''), ','))", hostname).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrSiteNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get site by hostname: %w", err)
	}
	return fromSiteModel(m)
}

// ListSites returns all sites ordered by title.
func (s *Store) ListSites(ctx context.Context) ([]*site.Site, error) {
	var models []siteModel
	err := s.db.NewSelect().Model(&models).
		Order("title").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: list sites: %w", err)
	}

	sites := make([]*site.Site, 0, len(models))
	for i := range models {
		st, convErr := fromSiteModel(&models[i])
		if convErr != nil {
			return nil, convErr
		}
		sites = append(sites, st)
	}
	return sites, nil
}

// SaveSite inserts or updates a site. Saving a site with IsDefault set
// clears the flag on every other site; both writes commit atomically.
func (s *Store) SaveSite(ctx context.Context, st *site.Site) error {
	st.Touch()

	m := toSiteModel(st)
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if st.IsDefault {
			if _, err := tx.NewUpdate().
				Model((*siteModel)(nil)).
				Set("is_default = FALSE").
				Where("id <> ?", m.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("piranha/bun: demote default site: %w", err)
			}
		}

		if _, err := tx.NewInsert().Model(m).
			On("CONFLICT (id) DO UPDATE").
			Set("internal_id = EXCLUDED.internal_id").
			Set("title = EXCLUDED.title").
			Set("description = EXCLUDED.description").
			Set("hostnames = EXCLUDED.hostnames").
			Set("culture = EXCLUDED.culture").
			Set("is_default = EXCLUDED.is_default").
			Set("last_modified = EXCLUDED.last_modified").
			Exec(ctx); err != nil {
			if isDuplicateKey(err) {
				return piranha.ErrDuplicateKey
			}
			return fmt.Errorf("piranha/bun: save site: %w", err)
		}
		return nil
	})
	return err
}

// DeleteSite removes a site by ID.
func (s *Store) DeleteSite(ctx context.Context, siteID id.SiteID) error {
	res, err := s.db.NewDelete().
		Model((*siteModel)(nil)).
		Where("id = ?", siteID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("piranha/bun: delete site: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return piranha.ErrSiteNotFound
	}
	return nil
}
