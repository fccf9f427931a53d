package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/site"
)

const siteColumns = `id, internal_id, title, description, hostnames, culture, is_default, created, last_modified`

// GetSite retrieves a site by ID.
func (s *Store) GetSite(ctx context.Context, siteID id.SiteID) (*site.Site, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+siteColumns+`
		FROM piranha_sites
		WHERE id = $1`,
		siteID,
	)

	st, err := scanSite(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrSiteNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get site: %w", err)
	}
	return st, nil
}

// GetDefaultSite retrieves the site flagged as default.
func (s *Store) GetDefaultSite(ctx context.Context) (*site.Site, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT ` + siteColumns + `
		FROM piranha_sites
		WHERE is_default`,
	)

	st, err := scanSite(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrSiteNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get default site: %w", err)
	}
	return st, nil
}

// GetSiteByHostname retrieves the site serving the given hostname. The
// hostnames column holds a comma-separated list; whitespace around entries
// is ignored.
func (s *Store) GetSiteByHostname(ctx context.Context, hostname string) (*site.Site, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+siteColumns+`
		FROM piranha_sites
		WHERE $1 = ANY(string_to_array(replace(hostnames, ' ', ''), ','))`,
		hostname,
	)

	st, err := scanSite(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrSiteNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get site by hostname: %w", err)
	}
	return st, nil
}

// ListSites returns all sites ordered by title.
func (s *Store) ListSites(ctx context.Context) ([]*site.Site, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ` + siteColumns + `
		FROM piranha_sites
		ORDER BY title`,
	)
	if err != nil {
		return nil, fmt.Errorf("piranha/postgres: list sites: %w", err)
	}
	defer rows.Close()

	var sites []*site.Site
	for rows.Next() {
		st, scanErr := scanSite(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("piranha/postgres: scan site: %w", scanErr)
		}
		sites = append(sites, st)
	}
	return sites, rows.Err()
}

// SaveSite inserts or updates a site. Saving a site with IsDefault set
// clears the flag on every other site; both writes commit atomically.
func (s *Store) SaveSite(ctx context.Context, st *site.Site) error {
	st.Touch()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("piranha/postgres: save site: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if st.IsDefault {
		if _, err := tx.Exec(ctx,
			`UPDATE piranha_sites SET is_default = FALSE WHERE id <> $1`, st.ID,
		); err != nil {
			return fmt.Errorf("piranha/postgres: demote default site: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO piranha_sites (
			id, internal_id, title, description, hostnames, culture, is_default,
			created, last_modified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			internal_id = EXCLUDED.internal_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			hostnames = EXCLUDED.hostnames,
			culture = EXCLUDED.culture,
			is_default = EXCLUDED.is_default,
			last_modified = EXCLUDED.last_modified`,
		st.ID, st.InternalID, st.Title, st.Description, st.Hostnames,
		st.Culture, st.IsDefault, st.Created, st.LastModified,
	); err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/postgres: save site: %w", err)
	}

	return tx.Commit(ctx)
}

// DeleteSite removes a site by ID.
func (s *Store) DeleteSite(ctx context.Context, siteID id.SiteID) error {
	res, err := s.pool.Exec(ctx,
		`DELETE FROM piranha_sites WHERE id = $1`, siteID,
	)
	if err != nil {
		return fmt.Errorf("piranha/postgres: delete site: %w", err)
	}
	if res.RowsAffected() == 0 {
		return piranha.ErrSiteNotFound
	}
	return nil
}

func scanSite(row pgx.Row) (*site.Site, error) {
	var st site.Site
	err := row.Scan(
		&st.ID, &st.InternalID, &st.Title, &st.Description, &st.Hostnames,
		&st.Culture, &st.IsDefault, &st.Created, &st.LastModified,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
