// Package site defines the site model and its store interface. A process
// can serve several sites; exactly one of them is the default.
package site

import (
	"context"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
)

// Site is a logical website served by the CMS.
type Site struct {
	piranha.Entity

	ID          id.SiteID `json:"id"`
	InternalID  string    `json:"internal_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	// Hostnames is a comma-separated list of hostnames routed to this site.
	Hostnames string `json:"hostnames,omitempty"`
	Culture   string `json:"culture,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// Store is the persistence interface for sites.
type Store interface {
	// GetSite retrieves a site by ID.
	GetSite(ctx context.Context, siteID id.SiteID) (*Site, error)

	// GetDefaultSite retrieves the site flagged as default.
	GetDefaultSite(ctx context.Context) (*Site, error)

	// GetSiteByHostname retrieves the site serving the given hostname.
	GetSiteByHostname(ctx context.Context, hostname string) (*Site, error)

	// ListSites returns all sites ordered by title.
	ListSites(ctx context.Context) ([]*Site, error)

	// SaveSite inserts or updates a site. Saving a site with IsDefault set
	// clears the flag on every other site.
	SaveSite(ctx context.Context, s *Site) error

	// DeleteSite removes a site by ID.
	DeleteSite(ctx context.Context, siteID id.SiteID) error
}
