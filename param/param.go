// Package param defines the system parameter model and its store interface.
// Params are key/value settings stored alongside the content.
package param

import (
	"context"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
)

// Param is a named system setting. Keys are unique across the store.
type Param struct {
	piranha.Entity

	ID          id.ParamID `json:"id"`
	Key         string     `json:"key"`
	Value       string     `json:"value"`
	Description string     `json:"description,omitempty"`
}

// Store is the persistence interface for params.
type Store interface {
	// GetParam retrieves a param by ID.
	GetParam(ctx context.Context, paramID id.ParamID) (*Param, error)

	// GetParamByKey retrieves a param by its unique key.
	GetParamByKey(ctx context.Context, key string) (*Param, error)

	// ListParams returns all params ordered by key.
	ListParams(ctx context.Context) ([]*Param, error)

	// SaveParam inserts or updates a param. Saving a new param with an
	// existing key fails with piranha.ErrDuplicateKey.
	SaveParam(ctx context.Context, p *Param) error

	// DeleteParam removes a param by ID.
	DeleteParam(ctx context.Context, paramID id.ParamID) error
}
