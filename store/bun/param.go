package bunstore

import (
	"context"
	"fmt"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/param"
)

// GetParam retrieves a param by ID.
func (s *Store) GetParam(ctx context.Context, paramID id.ParamID) (*param.Param, error) {
	m := new(paramModel)
	err := s.db.NewSelect().Model(m).
		Where("id = ?", paramID.String()).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrParamNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get param: %w", err)
	}
	return fromParamModel(m)
}

// GetParamByKey retrieves a param by its unique key.
func (s *Store) GetParamByKey(ctx context.Context, key string) (*param.Param, error) {
	m := new(paramModel)
	err := s.db.NewSelect().Model(m).
		Where("key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, piranha.ErrParamNotFound
		}
		return nil, fmt.Errorf("piranha/bun: get param by key: %w", err)
	}
	return fromParamModel(m)
}

// ListParams returns all params ordered by key.
func (s *Store) ListParams(ctx context.Context) ([]*param.Param, error) {
	var models []paramModel
	err := s.db.NewSelect().Model(&models).
		Order("key").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: list params: %w", err)
	}

	params := make([]*param.Param, 0, len(models))
	for i := range models {
		p, convErr := fromParamModel(&models[i])
		if convErr != nil {
			return nil, convErr
		}
		params = append(params, p)
	}
	return params, nil
}

// SaveParam inserts or updates a param. Saving a new param with an
// existing key fails with piranha.ErrDuplicateKey.
func (s *Store) SaveParam(ctx context.Context, p *param.Param) error {
	p.Touch()

	m := toParamModel(p)
	_, err := s.db.NewInsert().Model(m).
		On("CONFLICT (id) DO UPDATE").
		Set("key = EXCLUDED.key").
		Set("value = EXCLUDED.value").
		Set("description = EXCLUDED.description").
		Set("last_modified = EXCLUDED.last_modified").
		Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return piranha.ErrDuplicateKey
		}
		return fmt.Errorf("piranha/bun: save param: %w", err)
	}
	return nil
}

// DeleteParam removes a param by ID.
func (s *Store) DeleteParam(ctx context.Context, paramID id.ParamID) error {
	res, err := s.db.NewDelete().
		Model((*paramModel)(nil)).
		Where("id = ?", paramID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("piranha/bun: delete param: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return piranha.ErrParamNotFound
	}
	return nil
}
