package engine_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/alias"
	cachemem "github.com/hfz-r/piranha.core/cache/memory"
	"github.com/hfz-r/piranha.core/category"
	"github.com/hfz-r/piranha.core/engine"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/media"
	"github.com/hfz-r/piranha.core/param"
	"github.com/hfz-r/piranha.core/site"
	"github.com/hfz-r/piranha.core/store/memory"
	"github.com/hfz-r/piranha.core/tag"
)

func newEngine(t *testing.T, opts ...engine.Option) *engine.Engine {
	t.Helper()
	return engine.New(memory.New(), opts...)
}

func TestSaveTagFillsSlugFromTitle(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	m := &tag.Tag{ID: id.NewTagID(), Title: "Idiomatic Go"}
	if err := eng.SaveTag(ctx, m); err != nil {
		t.Fatalf("SaveTag failed: %v", err)
	}
	if m.Slug != "idiomatic-go" {
		t.Errorf("slug = %q, want %q", m.Slug, "idiomatic-go")
	}

	got, err := eng.TagBySlug(ctx, "idiomatic-go")
	if err != nil {
		t.Fatalf("TagBySlug failed: %v", err)
	}
	if got.ID.String() != m.ID.String() {
		t.Errorf("TagBySlug returned wrong tag: %s", got.ID)
	}
}

func TestSaveAssignsMissingID(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	m := &tag.Tag{Title: "Anonymous"}
	if err := eng.SaveTag(ctx, m); err != nil {
		t.Fatalf("SaveTag failed: %v", err)
	}
	if m.ID.IsNil() {
		t.Fatal("save left the ID unset")
	}
	if m.ID.Prefix() != id.PrefixTag {
		t.Errorf("assigned ID has prefix %q, want %q", m.ID.Prefix(), id.PrefixTag)
	}
	if _, err := eng.Tag(ctx, m.ID); err != nil {
		t.Errorf("saved tag not retrievable: %v", err)
	}
}

func TestSaveCategoryNormalizesProvidedSlug(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	c := &category.Category{ID: id.NewCategoryID(), Title: "News", Slug: "Breaking News!"}
	if err := eng.SaveCategory(ctx, c); err != nil {
		t.Fatalf("SaveCategory failed: %v", err)
	}
	if c.Slug != "breaking-news" {
		t.Errorf("slug = %q, want %q", c.Slug, "breaking-news")
	}
}

func TestSetSlugFuncOverridesGenerator(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	eng.SetSlugFunc(func(s string) string {
		return "x-" + strings.ToLower(strings.ReplaceAll(s, " ", "_"))
	})

	m := &tag.Tag{ID: id.NewTagID(), Title: "Hello World"}
	if err := eng.SaveTag(ctx, m); err != nil {
		t.Fatalf("SaveTag failed: %v", err)
	}
	if m.Slug != "x-hello_world" {
		t.Errorf("slug = %q, want %q", m.Slug, "x-hello_world")
	}

	// Resetting restores the default generator.
	eng.SetSlugFunc(nil)
	if got := eng.GenerateSlug("Hello World"); got != "hello-world" {
		t.Errorf("GenerateSlug = %q, want %q", got, "hello-world")
	}
}

func TestBeforeSaveHookVetoesWrite(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	errVeto := errors.New("title required")
	eng.Hooks().Tag.OnBeforeSave(func(_ context.Context, m *tag.Tag) error {
		if m.Title == "" {
			return errVeto
		}
		return nil
	})

	m := &tag.Tag{ID: id.NewTagID()}
	if err := eng.SaveTag(ctx, m); !errors.Is(err, errVeto) {
		t.Fatalf("got error %v, want %v", err, errVeto)
	}
	if _, err := eng.Tag(ctx, m.ID); !errors.Is(err, piranha.ErrTagNotFound) {
		t.Errorf("tag persisted despite veto: %v", err)
	}
}

func TestHooksAreKindScoped(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	tagSaves, catSaves := 0, 0
	eng.Hooks().Tag.OnAfterSave(func(_ context.Context, m *tag.Tag) error { tagSaves++; return nil })
	eng.Hooks().Category.OnAfterSave(func(_ context.Context, m *category.Category) error { catSaves++; return nil })

	if err := eng.SaveTag(ctx, &tag.Tag{ID: id.NewTagID(), Title: "Go"}); err != nil {
		t.Fatalf("SaveTag failed: %v", err)
	}
	if tagSaves != 1 || catSaves != 0 {
		t.Errorf("tagSaves=%d catSaves=%d, want 1/0", tagSaves, catSaves)
	}
}

func TestSaveAliasNormalizesURLs(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	siteID := id.NewSiteID()
	a := &alias.Alias{
		ID:          id.NewAliasID(),
		SiteID:      siteID,
		AliasURL:    "old-page",
		RedirectURL: "new-page",
	}
	if err := eng.SaveAlias(ctx, a); err != nil {
		t.Fatalf("SaveAlias failed: %v", err)
	}
	if a.AliasURL != "/old-page" || a.RedirectURL != "/new-page" {
		t.Errorf("URLs not normalized: %q -> %q", a.AliasURL, a.RedirectURL)
	}
	if a.Type != alias.RedirectTemporary {
		t.Errorf("default redirect type = %d, want %d", a.Type, alias.RedirectTemporary)
	}

	// Lookup works with or without the leading slash.
	if _, err := eng.AliasByURL(ctx, siteID, "old-page"); err != nil {
		t.Errorf("AliasByURL without slash failed: %v", err)
	}
	if _, err := eng.AliasByURL(ctx, siteID, "/old-page"); err != nil {
		t.Errorf("AliasByURL with slash failed: %v", err)
	}
}

func TestSaveSiteFillsInternalID(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	s := &site.Site{ID: id.NewSiteID(), Title: "My Blog", IsDefault: true}
	if err := eng.SaveSite(ctx, s); err != nil {
		t.Fatalf("SaveSite failed: %v", err)
	}
	if s.InternalID != "my-blog" {
		t.Errorf("internal ID = %q, want %q", s.InternalID, "my-blog")
	}

	got, err := eng.DefaultSite(ctx)
	if err != nil {
		t.Fatalf("DefaultSite failed: %v", err)
	}
	if got.ID.String() != s.ID.String() {
		t.Errorf("DefaultSite returned wrong site: %s", got.ID)
	}
}

func TestSiteByHostname(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	s := &site.Site{
		ID:        id.NewSiteID(),
		Title:     "Docs",
		Hostnames: "docs.example.com, www.example.com",
	}
	if err := eng.SaveSite(ctx, s); err != nil {
		t.Fatalf("SaveSite failed: %v", err)
	}

	got, err := eng.SiteByHostname(ctx, "www.example.com")
	if err != nil {
		t.Fatalf("SiteByHostname failed: %v", err)
	}
	if got.ID.String() != s.ID.String() {
		t.Errorf("wrong site: %s", got.ID)
	}

	if _, err := eng.SiteByHostname(ctx, "unknown.example.com"); !errors.Is(err, piranha.ErrSiteNotFound) {
		t.Errorf("got error %v, want %v", err, piranha.ErrSiteNotFound)
	}
}

func TestParamByKeyPrimesCache(t *testing.T) {
	t.Parallel()
	eng := newEngine(t, engine.WithCache(cachemem.New()))
	ctx := context.Background()

	p := &param.Param{ID: id.NewParamID(), Key: "site_title", Value: "Piranha"}
	if err := eng.SaveParam(ctx, p); err != nil {
		t.Fatalf("SaveParam failed: %v", err)
	}

	got, err := eng.ParamByKey(ctx, "site_title")
	if err != nil {
		t.Fatalf("ParamByKey failed: %v", err)
	}
	if got.Value != "Piranha" {
		t.Errorf("value = %q, want %q", got.Value, "Piranha")
	}

	// The key lookup cached the model under its ID.
	loads := 0
	eng.Hooks().Param.OnLoad(func(_ context.Context, m *param.Param) error { loads++; return nil })
	if _, err := eng.Param(ctx, p.ID); err != nil {
		t.Fatalf("Param failed: %v", err)
	}
	if loads != 0 {
		t.Errorf("load hooks ran %d times on a cache hit, want 0", loads)
	}
}

func TestMediaFolderHierarchy(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	root := &media.Folder{ID: id.NewMediaFolderID(), Name: "Images"}
	if err := eng.SaveMediaFolder(ctx, root); err != nil {
		t.Fatalf("SaveMediaFolder failed: %v", err)
	}

	m := &media.Media{
		ID:          id.NewMediaID(),
		FolderID:    root.ID,
		Type:        media.TypeImage,
		Filename:    "logo.png",
		ContentType: "image/png",
		Size:        2048,
	}
	if err := eng.SaveMedia(ctx, m); err != nil {
		t.Fatalf("SaveMedia failed: %v", err)
	}

	inFolder, err := eng.MediaIn(ctx, root.ID)
	if err != nil {
		t.Fatalf("MediaIn failed: %v", err)
	}
	if len(inFolder) != 1 || inFolder[0].Filename != "logo.png" {
		t.Errorf("unexpected folder listing: %+v", inFolder)
	}

	atRoot, err := eng.MediaIn(ctx, id.Nil)
	if err != nil {
		t.Fatalf("MediaIn(root) failed: %v", err)
	}
	if len(atRoot) != 0 {
		t.Errorf("media root should be empty, got %d items", len(atRoot))
	}

	folders, err := eng.MediaFolders(ctx, id.Nil)
	if err != nil {
		t.Fatalf("MediaFolders failed: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "Images" {
		t.Errorf("unexpected root folders: %+v", folders)
	}
}

func TestDeleteRunsDeleteHooks(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	var deleted []string
	eng.Hooks().Tag.OnAfterDelete(func(_ context.Context, m *tag.Tag) error {
		deleted = append(deleted, m.Slug)
		return nil
	})

	m := &tag.Tag{ID: id.NewTagID(), Title: "Ephemeral"}
	if err := eng.SaveTag(ctx, m); err != nil {
		t.Fatalf("SaveTag failed: %v", err)
	}
	if err := eng.DeleteTag(ctx, m.ID); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != "ephemeral" {
		t.Errorf("AfterDelete saw %v, want [ephemeral]", deleted)
	}
}

func TestWarmPreloadsCache(t *testing.T) {
	t.Parallel()
	eng := newEngine(t, engine.WithCache(cachemem.New()))
	ctx := context.Background()

	savedTag := &tag.Tag{ID: id.NewTagID(), Title: "Go"}
	if err := eng.SaveTag(ctx, savedTag); err != nil {
		t.Fatalf("SaveTag failed: %v", err)
	}
	savedSite := &site.Site{ID: id.NewSiteID(), Title: "Main", IsDefault: true}
	if err := eng.SaveSite(ctx, savedSite); err != nil {
		t.Fatalf("SaveSite failed: %v", err)
	}

	if err := eng.Warm(ctx); err != nil {
		t.Fatalf("Warm failed: %v", err)
	}

	// Everything Warm touched is now served from cache: the load hooks
	// registered after warming never fire.
	loads := 0
	eng.Hooks().Tag.OnLoad(func(_ context.Context, m *tag.Tag) error { loads++; return nil })
	eng.Hooks().Site.OnLoad(func(_ context.Context, m *site.Site) error { loads++; return nil })

	if _, err := eng.Tag(ctx, savedTag.ID); err != nil {
		t.Fatalf("Tag failed: %v", err)
	}
	if _, err := eng.Site(ctx, savedSite.ID); err != nil {
		t.Fatalf("Site failed: %v", err)
	}
	if loads != 0 {
		t.Errorf("load hooks ran %d times after Warm, want 0", loads)
	}
}

func TestListOperations(t *testing.T) {
	t.Parallel()
	eng := newEngine(t)
	ctx := context.Background()

	for _, title := range []string{"Banana", "Apple", "Cherry"} {
		if err := eng.SaveCategory(ctx, &category.Category{ID: id.NewCategoryID(), Title: title}); err != nil {
			t.Fatalf("SaveCategory failed: %v", err)
		}
	}

	cats, err := eng.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(cats) != 3 {
		t.Fatalf("got %d categories, want 3", len(cats))
	}
	for i, want := range []string{"Apple", "Banana", "Cherry"} {
		if cats[i].Title != want {
			t.Errorf("cats[%d] = %q, want %q", i, cats[i].Title, want)
		}
	}
}
