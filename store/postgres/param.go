package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/param"
)

// GetParam retrieves a param by ID.
func (s *Store) GetParam(ctx context.Context, paramID id.ParamID) (*param.Param, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, key, value, description, created, last_modified
		FROM piranha_params
		WHERE id = $1`,
		paramID,
	)

	p, err := scanParam(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrParamNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get param: %w", err)
	}
	return p, nil
}

// GetParamByKey retrieves a param by its unique key.
func (s *Store) GetParamByKey(ctx context.Context, key string) (*param.Param, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, key, value, description, created, last_modified
		FROM piranha_params
		WHERE key = $1`,
		key,
	)

	p, err := scanParam(row)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrParamNotFound
		}
		return nil, fmt.Errorf("piranha/postgres: get param by key: %w", err)
	}
	return p, nil
}

// ListParams returns all params ordered by key.
func (s *Store) ListParams(ctx context.Context) ([]*param.Param, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, key, value, description, created, last_modified
		FROM piranha_params
		ORDER BY key`,
	)
	if err != nil {
		return nil, fmt.Errorf("piranha/postgres: list params: %w", err)
	}
	defer rows.Close()

	var params []*param.Param
	for rows.Next() {
		p, scanErr := scanParam(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("piranha/postgres: scan param: %w", scanErr)
		}
		params = append(params, p)
	}
	return params, rows.Err()
}

// SaveParam inserts or updates a param. Saving a new param with an
// existing key fails with piranha.ErrDuplicateKey.
func (s *Store) SaveParam(ctx context.Context, p *param.Param) error {
	p.Touch()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO piranha_params (id, key, value, description, created, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			key = EXCLUDED.key,
			value = EXCLUDED.value,
			description = EXCLUDED.description,
			last_modified = EXCLUDED.last_modified`,
		p.ID, p.Key, p.Value, p.Description, p.Created, p.LastModified,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/postgres: save param: %w", err)
	}
	return nil
}

// DeleteParam removes a param by ID.
func (s *Store) DeleteParam(ctx context.Context, paramID id.ParamID) error {
	res, err := s.pool.Exec(ctx,
		`DELETE FROM piranha_params WHERE id = $1`, paramID,
	)
	if err != nil {
		return fmt.Errorf("piranha/postgres: delete param: %w", err)
	}
	if res.RowsAffected() == 0 {
		return piranha.ErrParamNotFound
	}
	return nil
}

func scanParam(row pgx.Row) (*param.Param, error) {
	var p param.Param
	err := row.Scan(&p.ID, &p.Key, &p.Value, &p.Description, &p.Created, &p.LastModified)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
