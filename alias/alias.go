// Package alias defines the URL alias model and its store interface.
// Aliases redirect old URLs to new locations within a site.
package alias

import (
	"context"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
)

// RedirectType controls the HTTP status used when the alias fires.
type RedirectType int

const (
	// RedirectTemporary issues a 302 redirect.
	RedirectTemporary RedirectType = 302
	// RedirectPermanent issues a 301 redirect.
	RedirectPermanent RedirectType = 301
)

// Alias maps an incoming URL to a redirect target within a site.
type Alias struct {
	piranha.Entity

	ID          id.AliasID   `json:"id"`
	SiteID      id.SiteID    `json:"site_id"`
	AliasURL    string       `json:"alias_url"`
	RedirectURL string       `json:"redirect_url"`
	Type        RedirectType `json:"type"`
}

// Store is the persistence interface for aliases.
type Store interface {
	// GetAlias retrieves an alias by ID.
	GetAlias(ctx context.Context, aliasID id.AliasID) (*Alias, error)

	// GetAliasByURL retrieves the alias registered for the given URL on a site.
	GetAliasByURL(ctx context.Context, siteID id.SiteID, url string) (*Alias, error)

	// ListAliases returns all aliases for a site ordered by alias URL.
	ListAliases(ctx context.Context, siteID id.SiteID) ([]*Alias, error)

	// SaveAlias inserts or updates an alias.
	SaveAlias(ctx context.Context, a *Alias) error

	// DeleteAlias removes an alias by ID.
	DeleteAlias(ctx context.Context, aliasID id.AliasID) error
}
