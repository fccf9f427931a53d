// Package postgres provides a PostgreSQL store backend built on pgx/v5.
//
// Uniqueness guarantees (category and tag slugs, param keys, alias URLs
// per site) are enforced by unique indexes; violations surface as
// piranha.ErrDuplicateKey. Schema migrations are embedded SQL files applied
// in filename order and tracked in the piranha_migrations table.
package postgres
