package engine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hfz-r/piranha.core/alias"
	"github.com/hfz-r/piranha.core/cache"
	"github.com/hfz-r/piranha.core/category"
	"github.com/hfz-r/piranha.core/hook"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/media"
	"github.com/hfz-r/piranha.core/param"
	"github.com/hfz-r/piranha.core/repo"
	"github.com/hfz-r/piranha.core/site"
	"github.com/hfz-r/piranha.core/slug"
	"github.com/hfz-r/piranha.core/store"
	"github.com/hfz-r/piranha.core/tag"
)

// Hooks groups the typed hook handles for every entity kind. Register
// callbacks during application startup, before the engine serves requests.
type Hooks struct {
	Alias       hook.Handle[alias.Alias]
	Category    hook.Handle[category.Category]
	Media       hook.Handle[media.Media]
	MediaFolder hook.Handle[media.Folder]
	Param       hook.Handle[param.Param]
	Site        hook.Handle[site.Site]
	Tag         hook.Handle[tag.Tag]
}

// Engine is the application-facing data layer. Every operation goes through
// a typed repository that runs the lifecycle hooks and keeps the cache
// coherent with the store.
type Engine struct {
	store    store.Store
	cache    cache.Cache
	registry *hook.Registry
	logger   *slog.Logger
	ttl      time.Duration
	hooks    Hooks

	aliases    *repo.Repository[alias.Alias]
	categories *repo.Repository[category.Category]
	mediaRepo  *repo.Repository[media.Media]
	folders    *repo.Repository[media.Folder]
	params     *repo.Repository[param.Param]
	sites      *repo.Repository[site.Site]
	tags       *repo.Repository[tag.Tag]
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithCache sets the model cache. Defaults to cache.Nop().
func WithCache(c cache.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithCacheTTL sets how long loaded models stay cached. Zero means no
// expiry.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.ttl = ttl }
}

// WithRegistry sets the hook registry the engine dispatches through. Use
// this to share one registry between the engine and an App.
func WithRegistry(r *hook.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// New creates an Engine over the given store.
func New(st store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    st,
		cache:    cache.Nop(),
		registry: hook.NewRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.hooks = Hooks{
		Alias:       hook.For[alias.Alias](e.registry),
		Category:    hook.For[category.Category](e.registry),
		Media:       hook.For[media.Media](e.registry),
		MediaFolder: hook.For[media.Folder](e.registry),
		Param:       hook.For[param.Param](e.registry),
		Site:        hook.For[site.Site](e.registry),
		Tag:         hook.For[tag.Tag](e.registry),
	}

	e.aliases = newRepoFor(e, "alias", repo.Backend[alias.Alias]{
		Get:    st.GetAlias,
		Save:   st.SaveAlias,
		Delete: st.DeleteAlias,
	}, e.hooks.Alias, func(a *alias.Alias) id.ID { return a.ID },
		repo.WithNormalizer[alias.Alias](e.normalizeAlias))

	e.categories = newRepoFor(e, "category", repo.Backend[category.Category]{
		Get:    st.GetCategory,
		Save:   st.SaveCategory,
		Delete: st.DeleteCategory,
	}, e.hooks.Category, func(c *category.Category) id.ID { return c.ID },
		repo.WithNormalizer[category.Category](e.normalizeCategory))

	e.mediaRepo = newRepoFor(e, "media", repo.Backend[media.Media]{
		Get:    st.GetMedia,
		Save:   st.SaveMedia,
		Delete: st.DeleteMedia,
	}, e.hooks.Media, func(m *media.Media) id.ID { return m.ID },
		repo.WithNormalizer[media.Media](normalizeMedia))

	e.folders = newRepoFor(e, "media_folder", repo.Backend[media.Folder]{
		Get:    st.GetFolder,
		Save:   st.SaveFolder,
		Delete: st.DeleteFolder,
	}, e.hooks.MediaFolder, func(f *media.Folder) id.ID { return f.ID },
		repo.WithNormalizer[media.Folder](normalizeFolder))

	e.params = newRepoFor(e, "param", repo.Backend[param.Param]{
		Get:    st.GetParam,
		Save:   st.SaveParam,
		Delete: st.DeleteParam,
	}, e.hooks.Param, func(p *param.Param) id.ID { return p.ID },
		repo.WithNormalizer[param.Param](normalizeParam))

	e.sites = newRepoFor(e, "site", repo.Backend[site.Site]{
		Get:    st.GetSite,
		Save:   st.SaveSite,
		Delete: st.DeleteSite,
	}, e.hooks.Site, func(s *site.Site) id.ID { return s.ID },
		repo.WithNormalizer[site.Site](e.normalizeSite))

	e.tags = newRepoFor(e, "tag", repo.Backend[tag.Tag]{
		Get:    st.GetTag,
		Save:   st.SaveTag,
		Delete: st.DeleteTag,
	}, e.hooks.Tag, func(t *tag.Tag) id.ID { return t.ID },
		repo.WithNormalizer[tag.Tag](e.normalizeTag))

	return e
}

func newRepoFor[T any](
	e *Engine,
	name string,
	be repo.Backend[T],
	h hook.Handle[T],
	keyOf func(*T) id.ID,
	opts ...repo.Option[T],
) *repo.Repository[T] {
	opts = append([]repo.Option[T]{
		repo.WithLogger[T](e.logger),
		repo.WithCacheTTL[T](e.ttl),
	}, opts...)

	return repo.New(name, be, h, e.cache, keyOf, opts...)
}

// ──────────────────────────────────────────────────
// Accessors
// ──────────────────────────────────────────────────

// Hooks returns the typed hook handles.
func (e *Engine) Hooks() *Hooks { return &e.hooks }

// Registry returns the underlying hook registry.
func (e *Engine) Registry() *hook.Registry { return e.registry }

// Store returns the backing store.
func (e *Engine) Store() store.Store { return e.store }

// SetSlugFunc replaces the slug generator used for category and tag slugs
// and site internal IDs. Passing nil restores the default generator.
func (e *Engine) SetSlugFunc(fn hook.SlugFunc) {
	e.registry.SetSlugFunc(fn)
}

// GenerateSlug turns s into a URL-safe slug, using the registered slug
// function when one is set and the default generator otherwise.
func (e *Engine) GenerateSlug(s string) string {
	if fn := e.registry.SlugFunc(); fn != nil {
		return fn(s)
	}

	return slug.Generate(s)
}

// ──────────────────────────────────────────────────
// Normalizers
// ──────────────────────────────────────────────────
//
// Normalizers run on every save before the BeforeSave hooks. Models saved
// without an ID get a fresh one assigned.

func (e *Engine) normalizeCategory(_ context.Context, c *category.Category) error {
	if c.ID.IsNil() {
		c.ID = id.NewCategoryID()
	}
	if c.Slug == "" {
		c.Slug = e.GenerateSlug(c.Title)
	} else {
		c.Slug = e.GenerateSlug(c.Slug)
	}

	return nil
}

func (e *Engine) normalizeTag(_ context.Context, t *tag.Tag) error {
	if t.ID.IsNil() {
		t.ID = id.NewTagID()
	}
	if t.Slug == "" {
		t.Slug = e.GenerateSlug(t.Title)
	} else {
		t.Slug = e.GenerateSlug(t.Slug)
	}

	return nil
}

func (e *Engine) normalizeSite(_ context.Context, s *site.Site) error {
	if s.ID.IsNil() {
		s.ID = id.NewSiteID()
	}
	if s.InternalID == "" {
		s.InternalID = e.GenerateSlug(s.Title)
	}

	return nil
}

func (e *Engine) normalizeAlias(_ context.Context, a *alias.Alias) error {
	if a.ID.IsNil() {
		a.ID = id.NewAliasID()
	}
	a.AliasURL = ensureLeadingSlash(a.AliasURL)
	a.RedirectURL = ensureLeadingSlash(a.RedirectURL)
	if a.Type == 0 {
		a.Type = alias.RedirectTemporary
	}

	return nil
}

func normalizeParam(_ context.Context, p *param.Param) error {
	if p.ID.IsNil() {
		p.ID = id.NewParamID()
	}

	return nil
}

func normalizeMedia(_ context.Context, m *media.Media) error {
	if m.ID.IsNil() {
		m.ID = id.NewMediaID()
	}

	return nil
}

func normalizeFolder(_ context.Context, f *media.Folder) error {
	if f.ID.IsNil() {
		f.ID = id.NewMediaFolderID()
	}

	return nil
}

// ensureLeadingSlash normalizes a site-relative URL. Absolute URLs pass
// through untouched.
func ensureLeadingSlash(url string) string {
	if url == "" || strings.HasPrefix(url, "/") ||
		strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}

	return "/" + url
}

// ──────────────────────────────────────────────────
// Aliases
// ──────────────────────────────────────────────────

// Alias retrieves an alias by ID.
func (e *Engine) Alias(ctx context.Context, aliasID id.AliasID) (*alias.Alias, error) {
	return e.aliases.GetByID(ctx, aliasID)
}

// AliasByURL retrieves the alias registered for the given URL on a site.
func (e *Engine) AliasByURL(ctx context.Context, siteID id.SiteID, url string) (*alias.Alias, error) {
	return e.aliases.Find(ctx, func(ctx context.Context) (*alias.Alias, error) {
		return e.store.GetAliasByURL(ctx, siteID, ensureLeadingSlash(url))
	})
}

// Aliases returns all aliases for a site ordered by alias URL.
func (e *Engine) Aliases(ctx context.Context, siteID id.SiteID) ([]*alias.Alias, error) {
	return e.aliases.List(ctx, func(ctx context.Context) ([]*alias.Alias, error) {
		return e.store.ListAliases(ctx, siteID)
	})
}

// SaveAlias inserts or updates an alias.
func (e *Engine) SaveAlias(ctx context.Context, a *alias.Alias) error {
	return e.aliases.Save(ctx, a)
}

// DeleteAlias removes an alias by ID.
func (e *Engine) DeleteAlias(ctx context.Context, aliasID id.AliasID) error {
	return e.aliases.Delete(ctx, aliasID)
}

// ──────────────────────────────────────────────────
// Categories
// ──────────────────────────────────────────────────

// Category retrieves a category by ID.
func (e *Engine) Category(ctx context.Context, categoryID id.CategoryID) (*category.Category, error) {
	return e.categories.GetByID(ctx, categoryID)
}

// CategoryBySlug retrieves a category by its slug.
func (e *Engine) CategoryBySlug(ctx context.Context, s string) (*category.Category, error) {
	return e.categories.Find(ctx, func(ctx context.Context) (*category.Category, error) {
		return e.store.GetCategoryBySlug(ctx, s)
	})
}

// Categories returns all categories ordered by title.
func (e *Engine) Categories(ctx context.Context) ([]*category.Category, error) {
	return e.categories.List(ctx, e.store.ListCategories)
}

// SaveCategory inserts or updates a category. An empty slug is generated
// from the title.
func (e *Engine) SaveCategory(ctx context.Context, c *category.Category) error {
	return e.categories.Save(ctx, c)
}

// DeleteCategory removes a category by ID.
func (e *Engine) DeleteCategory(ctx context.Context, categoryID id.CategoryID) error {
	return e.categories.Delete(ctx, categoryID)
}

// ──────────────────────────────────────────────────
// Media
// ──────────────────────────────────────────────────

// Media retrieves a media asset by ID.
func (e *Engine) Media(ctx context.Context, mediaID id.MediaID) (*media.Media, error) {
	return e.mediaRepo.GetByID(ctx, mediaID)
}

// MediaIn returns the media in a folder ordered by filename. A Nil folderID
// lists the media root.
func (e *Engine) MediaIn(ctx context.Context, folderID id.MediaFolderID) ([]*media.Media, error) {
	return e.mediaRepo.List(ctx, func(ctx context.Context) ([]*media.Media, error) {
		return e.store.ListMedia(ctx, folderID)
	})
}

// SaveMedia inserts or updates a media asset.
func (e *Engine) SaveMedia(ctx context.Context, m *media.Media) error {
	return e.mediaRepo.Save(ctx, m)
}

// DeleteMedia removes a media asset by ID.
func (e *Engine) DeleteMedia(ctx context.Context, mediaID id.MediaID) error {
	return e.mediaRepo.Delete(ctx, mediaID)
}

// MediaFolder retrieves a media folder by ID.
func (e *Engine) MediaFolder(ctx context.Context, folderID id.MediaFolderID) (*media.Folder, error) {
	return e.folders.GetByID(ctx, folderID)
}

// MediaFolders returns the folders under a parent ordered by name. A Nil
// parentID lists the media root.
func (e *Engine) MediaFolders(ctx context.Context, parentID id.MediaFolderID) ([]*media.Folder, error) {
	return e.folders.List(ctx, func(ctx context.Context) ([]*media.Folder, error) {
		return e.store.ListFolders(ctx, parentID)
	})
}

// SaveMediaFolder inserts or updates a media folder.
func (e *Engine) SaveMediaFolder(ctx context.Context, f *media.Folder) error {
	return e.folders.Save(ctx, f)
}

// DeleteMediaFolder removes a media folder by ID.
func (e *Engine) DeleteMediaFolder(ctx context.Context, folderID id.MediaFolderID) error {
	return e.folders.Delete(ctx, folderID)
}

// ──────────────────────────────────────────────────
// Params
// ──────────────────────────────────────────────────

// Param retrieves a param by ID.
func (e *Engine) Param(ctx context.Context, paramID id.ParamID) (*param.Param, error) {
	return e.params.GetByID(ctx, paramID)
}

// ParamByKey retrieves a param by its unique key.
func (e *Engine) ParamByKey(ctx context.Context, key string) (*param.Param, error) {
	return e.params.Find(ctx, func(ctx context.Context) (*param.Param, error) {
		return e.store.GetParamByKey(ctx, key)
	})
}

// Params returns all params ordered by key.
func (e *Engine) Params(ctx context.Context) ([]*param.Param, error) {
	return e.params.List(ctx, e.store.ListParams)
}

// SaveParam inserts or updates a param.
func (e *Engine) SaveParam(ctx context.Context, p *param.Param) error {
	return e.params.Save(ctx, p)
}

// DeleteParam removes a param by ID.
func (e *Engine) DeleteParam(ctx context.Context, paramID id.ParamID) error {
	return e.params.Delete(ctx, paramID)
}

// ──────────────────────────────────────────────────
// Sites
// ──────────────────────────────────────────────────

// Site retrieves a site by ID.
func (e *Engine) Site(ctx context.Context, siteID id.SiteID) (*site.Site, error) {
	return e.sites.GetByID(ctx, siteID)
}

// DefaultSite retrieves the site flagged as default.
func (e *Engine) DefaultSite(ctx context.Context) (*site.Site, error) {
	return e.sites.Find(ctx, e.store.GetDefaultSite)
}

// SiteByHostname retrieves the site serving the given hostname.
func (e *Engine) SiteByHostname(ctx context.Context, hostname string) (*site.Site, error) {
	return e.sites.Find(ctx, func(ctx context.Context) (*site.Site, error) {
		return e.store.GetSiteByHostname(ctx, hostname)
	})
}

// Sites returns all sites ordered by title.
func (e *Engine) Sites(ctx context.Context) ([]*site.Site, error) {
	return e.sites.List(ctx, e.store.ListSites)
}

// SaveSite inserts or updates a site. Saving a site with IsDefault set
// clears the flag on every other site.
func (e *Engine) SaveSite(ctx context.Context, s *site.Site) error {
	return e.sites.Save(ctx, s)
}

// DeleteSite removes a site by ID.
func (e *Engine) DeleteSite(ctx context.Context, siteID id.SiteID) error {
	return e.sites.Delete(ctx, siteID)
}

// ──────────────────────────────────────────────────
// Tags
// ──────────────────────────────────────────────────

// Tag retrieves a tag by ID.
func (e *Engine) Tag(ctx context.Context, tagID id.TagID) (*tag.Tag, error) {
	return e.tags.GetByID(ctx, tagID)
}

// TagBySlug retrieves a tag by its slug.
func (e *Engine) TagBySlug(ctx context.Context, s string) (*tag.Tag, error) {
	return e.tags.Find(ctx, func(ctx context.Context) (*tag.Tag, error) {
		return e.store.GetTagBySlug(ctx, s)
	})
}

// Tags returns all tags ordered by title.
func (e *Engine) Tags(ctx context.Context) ([]*tag.Tag, error) {
	return e.tags.List(ctx, e.store.ListTags)
}

// SaveTag inserts or updates a tag. An empty slug is generated from the
// title.
func (e *Engine) SaveTag(ctx context.Context, t *tag.Tag) error {
	return e.tags.Save(ctx, t)
}

// DeleteTag removes a tag by ID.
func (e *Engine) DeleteTag(ctx context.Context, tagID id.TagID) error {
	return e.tags.Delete(ctx, tagID)
}

// ──────────────────────────────────────────────────
// Warm
// ──────────────────────────────────────────────────

// Warm preloads the cache with the small entity sets (sites, params,
// categories, tags). Each kind loads concurrently; the first failure aborts
// the preload.
func (e *Engine) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sites, err := e.store.ListSites(ctx)
		if err != nil {
			return err
		}
		for _, s := range sites {
			if _, err := e.sites.GetByID(ctx, s.ID); err != nil {
				return err
			}
		}

		return nil
	})
	g.Go(func() error {
		params, err := e.store.ListParams(ctx)
		if err != nil {
			return err
		}
		for _, p := range params {
			if _, err := e.params.GetByID(ctx, p.ID); err != nil {
				return err
			}
		}

		return nil
	})
	g.Go(func() error {
		cats, err := e.store.ListCategories(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			if _, err := e.categories.GetByID(ctx, c.ID); err != nil {
				return err
			}
		}

		return nil
	})
	g.Go(func() error {
		tags, err := e.store.ListTags(ctx)
		if err != nil {
			return err
		}
		for _, t := range tags {
			if _, err := e.tags.GetByID(ctx, t.ID); err != nil {
				return err
			}
		}

		return nil
	})

	return g.Wait()
}
