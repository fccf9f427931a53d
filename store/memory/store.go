package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/alias"
	"github.com/hfz-r/piranha.core/category"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/media"
	"github.com/hfz-r/piranha.core/param"
	"github.com/hfz-r/piranha.core/site"
	"github.com/hfz-r/piranha.core/tag"
)

// Ensure Store implements all subsystem interfaces at compile time.
var (
	_ alias.Store    = (*Store)(nil)
	_ category.Store = (*Store)(nil)
	_ media.Store    = (*Store)(nil)
	_ param.Store    = (*Store)(nil)
	_ site.Store     = (*Store)(nil)
	_ tag.Store      = (*Store)(nil)
)

// Store is a fully in-memory implementation of store.Store.
// Safe for concurrent access. Intended for unit testing and development.
type Store struct {
	mu sync.RWMutex

	aliases    map[string]*alias.Alias
	categories map[string]*category.Category
	medias     map[string]*media.Media
	folders    map[string]*media.Folder
	params     map[string]*param.Param
	sites      map[string]*site.Site
	tags       map[string]*tag.Tag
}

// New returns a new empty Store.
func New() *Store {
	return &Store{
		aliases:    make(map[string]*alias.Alias),
		categories: make(map[string]*category.Category),
		medias:     make(map[string]*media.Media),
		folders:    make(map[string]*media.Folder),
		params:     make(map[string]*param.Param),
		sites:      make(map[string]*site.Site),
		tags:       make(map[string]*tag.Tag),
	}
}

// ──────────────────────────────────────────────────
// Lifecycle — Migrate / Ping / Close
// ──────────────────────────────────────────────────

// Migrate is a no-op for the memory store.
func (m *Store) Migrate(_ context.Context) error { return nil }

// Ping always succeeds for the memory store.
func (m *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (m *Store) Close() error { return nil }

// ──────────────────────────────────────────────────
// Alias store
// ──────────────────────────────────────────────────

// GetAlias retrieves an alias by ID.
func (m *Store) GetAlias(_ context.Context, aliasID id.AliasID) (*alias.Alias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.aliases[aliasID.String()]
	if !ok {
		return nil, piranha.ErrAliasNotFound
	}
	cp := *a
	return &cp, nil
}

// GetAliasByURL retrieves the alias registered for the given URL on a site.
func (m *Store) GetAliasByURL(_ context.Context, siteID id.SiteID, url string) (*alias.Alias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.aliases {
		if a.SiteID.String() == siteID.String() && a.AliasURL == url {
			cp := *a
			return &cp, nil
		}
	}
	return nil, piranha.ErrAliasNotFound
}

// ListAliases returns all aliases for a site ordered by alias URL.
func (m *Store) ListAliases(_ context.Context, siteID id.SiteID) ([]*alias.Alias, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*alias.Alias, 0)
	for _, a := range m.aliases {
		if a.SiteID.String() != siteID.String() {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AliasURL < out[j].AliasURL })
	return out, nil
}

// SaveAlias inserts or updates an alias. The (site, URL) pair is unique.
func (m *Store) SaveAlias(_ context.Context, a *alias.Alias) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.aliases {
		if existing.ID.String() == a.ID.String() {
			continue
		}
		if existing.SiteID.String() == a.SiteID.String() && existing.AliasURL == a.AliasURL {
			return piranha.ErrDuplicateKey
		}
	}

	cp := *a
	cp.Touch()
	m.aliases[a.ID.String()] = &cp
	*a = cp
	return nil
}

// DeleteAlias removes an alias by ID.
func (m *Store) DeleteAlias(_ context.Context, aliasID id.AliasID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := aliasID.String()
	if _, ok := m.aliases[key]; !ok {
		return piranha.ErrAliasNotFound
	}
	delete(m.aliases, key)
	return nil
}

// ──────────────────────────────────────────────────
// Category store
// ──────────────────────────────────────────────────

// GetCategory retrieves a category by ID.
func (m *Store) GetCategory(_ context.Context, categoryID id.CategoryID) (*category.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.categories[categoryID.String()]
	if !ok {
		return nil, piranha.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

// GetCategoryBySlug retrieves a category by its slug.
func (m *Store) GetCategoryBySlug(_ context.Context, slug string) (*category.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, piranha.ErrCategoryNotFound
}

// ListCategories returns all categories ordered by title.
func (m *Store) ListCategories(_ context.Context) ([]*category.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*category.Category, 0, len(m.categories))
	for _, c := range m.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// SaveCategory inserts or updates a category. Slugs are unique.
func (m *Store) SaveCategory(_ context.Context, c *category.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.categories {
		if existing.ID.String() != c.ID.String() && existing.Slug == c.Slug {
			return piranha.ErrDuplicateKey
		}
	}

	cp := *c
	cp.Touch()
	m.categories[c.ID.String()] = &cp
	*c = cp
	return nil
}

// DeleteCategory removes a category by ID.
func (m *Store) DeleteCategory(_ context.Context, categoryID id.CategoryID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := categoryID.String()
	if _, ok := m.categories[key]; !ok {
		return piranha.ErrCategoryNotFound
	}
	delete(m.categories, key)
	return nil
}

// ──────────────────────────────────────────────────
// Media store
// ──────────────────────────────────────────────────

// GetMedia retrieves a media asset by ID.
func (m *Store) GetMedia(_ context.Context, mediaID id.MediaID) (*media.Media, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	md, ok := m.medias[mediaID.String()]
	if !ok {
		return nil, piranha.ErrMediaNotFound
	}
	cp := *md
	return &cp, nil
}

// ListMedia returns the media in a folder ordered by filename.
func (m *Store) ListMedia(_ context.Context, folderID id.MediaFolderID) ([]*media.Media, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*media.Media, 0)
	for _, md := range m.medias {
		if md.FolderID.String() != folderID.String() {
			continue
		}
		cp := *md
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}

// SaveMedia inserts or updates a media asset.
func (m *Store) SaveMedia(_ context.Context, md *media.Media) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *md
	cp.Touch()
	m.medias[md.ID.String()] = &cp
	*md = cp
	return nil
}

// DeleteMedia removes a media asset by ID.
func (m *Store) DeleteMedia(_ context.Context, mediaID id.MediaID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := mediaID.String()
	if _, ok := m.medias[key]; !ok {
		return piranha.ErrMediaNotFound
	}
	delete(m.medias, key)
	return nil
}

// GetFolder retrieves a media folder by ID.
func (m *Store) GetFolder(_ context.Context, folderID id.MediaFolderID) (*media.Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.folders[folderID.String()]
	if !ok {
		return nil, piranha.ErrMediaFolderNotFound
	}
	cp := *f
	return &cp, nil
}

// ListFolders returns the folders under a parent ordered by name.
func (m *Store) ListFolders(_ context.Context, parentID id.MediaFolderID) ([]*media.Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*media.Folder, 0)
	for _, f := range m.folders {
		if f.ParentID.String() != parentID.String() {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SaveFolder inserts or updates a media folder.
func (m *Store) SaveFolder(_ context.Context, f *media.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *f
	cp.Touch()
	m.folders[f.ID.String()] = &cp
	*f = cp
	return nil
}

// DeleteFolder removes a media folder by ID.
func (m *Store) DeleteFolder(_ context.Context, folderID id.MediaFolderID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := folderID.String()
	if _, ok := m.folders[key]; !ok {
		return piranha.ErrMediaFolderNotFound
	}
	delete(m.folders, key)
	return nil
}

// ──────────────────────────────────────────────────
// Param store
// ──────────────────────────────────────────────────

// GetParam retrieves a param by ID.
func (m *Store) GetParam(_ context.Context, paramID id.ParamID) (*param.Param, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.params[paramID.String()]
	if !ok {
		return nil, piranha.ErrParamNotFound
	}
	cp := *p
	return &cp, nil
}

// GetParamByKey retrieves a param by its unique key.
func (m *Store) GetParamByKey(_ context.Context, key string) (*param.Param, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.params {
		if p.Key == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, piranha.ErrParamNotFound
}

// ListParams returns all params ordered by key.
func (m *Store) ListParams(_ context.Context) ([]*param.Param, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*param.Param, 0, len(m.params))
	for _, p := range m.params {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// SaveParam inserts or updates a param. Keys are unique.
func (m *Store) SaveParam(_ context.Context, p *param.Param) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.params {
		if existing.ID.String() != p.ID.String() && existing.Key == p.Key {
			return piranha.ErrDuplicateKey
		}
	}

	cp := *p
	cp.Touch()
	m.params[p.ID.String()] = &cp
	*p = cp
	return nil
}

// DeleteParam removes a param by ID.
func (m *Store) DeleteParam(_ context.Context, paramID id.ParamID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := paramID.String()
	if _, ok := m.params[key]; !ok {
		return piranha.ErrParamNotFound
	}
	delete(m.params, key)
	return nil
}

// ──────────────────────────────────────────────────
// Site store
// ──────────────────────────────────────────────────

// GetSite retrieves a site by ID.
func (m *Store) GetSite(_ context.Context, siteID id.SiteID) (*site.Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sites[siteID.String()]
	if !ok {
		return nil, piranha.ErrSiteNotFound
	}
	cp := *s
	return &cp, nil
}

// GetDefaultSite retrieves the site flagged as default.
func (m *Store) GetDefaultSite(_ context.Context) (*site.Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.sites {
		if s.IsDefault {
			cp := *s
			return &cp, nil
		}
	}
	return nil, piranha.ErrSiteNotFound
}

// GetSiteByHostname retrieves the site serving the given hostname.
func (m *Store) GetSiteByHostname(_ context.Context, hostname string) (*site.Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.sites {
		for _, h := range strings.Split(s.Hostnames, ",") {
			if strings.TrimSpace(h) == hostname {
				cp := *s
				return &cp, nil
			}
		}
	}
	return nil, piranha.ErrSiteNotFound
}

// ListSites returns all sites ordered by title.
func (m *Store) ListSites(_ context.Context) ([]*site.Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*site.Site, 0, len(m.sites))
	for _, s := range m.sites {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// SaveSite inserts or updates a site. Saving a default site demotes the
// previous default.
func (m *Store) SaveSite(_ context.Context, s *site.Site) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.IsDefault {
		for _, existing := range m.sites {
			if existing.ID.String() != s.ID.String() {
				existing.IsDefault = false
			}
		}
	}

	cp := *s
	cp.Touch()
	m.sites[s.ID.String()] = &cp
	*s = cp
	return nil
}

// DeleteSite removes a site by ID.
func (m *Store) DeleteSite(_ context.Context, siteID id.SiteID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := siteID.String()
	if _, ok := m.sites[key]; !ok {
		return piranha.ErrSiteNotFound
	}
	delete(m.sites, key)
	return nil
}

// ──────────────────────────────────────────────────
// Tag store
// ──────────────────────────────────────────────────

// GetTag retrieves a tag by ID.
func (m *Store) GetTag(_ context.Context, tagID id.TagID) (*tag.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tags[tagID.String()]
	if !ok {
		return nil, piranha.ErrTagNotFound
	}
	cp := *t
	return &cp, nil
}

// GetTagBySlug retrieves a tag by its slug.
func (m *Store) GetTagBySlug(_ context.Context, slug string) (*tag.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.tags {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, piranha.ErrTagNotFound
}

// ListTags returns all tags ordered by title.
func (m *Store) ListTags(_ context.Context) ([]*tag.Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*tag.Tag, 0, len(m.tags))
	for _, t := range m.tags {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// SaveTag inserts or updates a tag. Slugs are unique.
func (m *Store) SaveTag(_ context.Context, t *tag.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.tags {
		if existing.ID.String() != t.ID.String() && existing.Slug == t.Slug {
			return piranha.ErrDuplicateKey
		}
	}

	cp := *t
	cp.Touch()
	m.tags[t.ID.String()] = &cp
	*t = cp
	return nil
}

// DeleteTag removes a tag by ID.
func (m *Store) DeleteTag(_ context.Context, tagID id.TagID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := tagID.String()
	if _, ok := m.tags[key]; !ok {
		return piranha.ErrTagNotFound
	}
	delete(m.tags, key)
	return nil
}
