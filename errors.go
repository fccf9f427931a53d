package piranha

import "errors"

var (
	// Store errors.
	ErrNoStore         = errors.New("piranha: no store configured")
	ErrStoreClosed     = errors.New("piranha: store closed")
	ErrMigrationFailed = errors.New("piranha: migration failed")

	// Not found errors.
	ErrAliasNotFound       = errors.New("piranha: alias not found")
	ErrCategoryNotFound    = errors.New("piranha: category not found")
	ErrMediaNotFound       = errors.New("piranha: media not found")
	ErrMediaFolderNotFound = errors.New("piranha: media folder not found")
	ErrParamNotFound       = errors.New("piranha: param not found")
	ErrSiteNotFound        = errors.New("piranha: site not found")
	ErrTagNotFound         = errors.New("piranha: tag not found")

	// Conflict errors.
	ErrDuplicateKey = errors.New("piranha: duplicate key")
)
