package memory

import (
	"context"
	"errors"
	"testing"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/alias"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/media"
	"github.com/hfz-r/piranha.core/param"
	"github.com/hfz-r/piranha.core/site"
	"github.com/hfz-r/piranha.core/tag"
)

// ──────────────────────────────────────────────────
// Lifecycle tests
// ──────────────────────────────────────────────────

func TestLifecycle(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	tests := []struct {
		name string
		fn   func() error
	}{
		{"Migrate", func() error { return s.Migrate(ctx) }},
		{"Ping", func() error { return s.Ping(ctx) }},
		{"Close", func() error { return s.Close() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); err != nil {
				t.Fatalf("%s returned error: %v", tt.name, err)
			}
		})
	}
}

// ──────────────────────────────────────────────────
// Tag store tests
// ──────────────────────────────────────────────────

func TestTagSaveAndGet(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	tg := &tag.Tag{ID: id.NewTagID(), Title: "Go", Slug: "go"}
	if err := s.SaveTag(ctx, tg); err != nil {
		t.Fatalf("SaveTag failed: %v", err)
	}
	if tg.Created.IsZero() || tg.LastModified.IsZero() {
		t.Error("SaveTag should set timestamps")
	}

	got, err := s.GetTag(ctx, tg.ID)
	if err != nil {
		t.Fatalf("GetTag failed: %v", err)
	}
	if got.Title != "Go" {
		t.Errorf("got title %q, want %q", got.Title, "Go")
	}

	// Returned model is a copy; mutating it must not affect the store.
	got.Title = "mutated"
	again, err := s.GetTag(ctx, tg.ID)
	if err != nil {
		t.Fatalf("GetTag failed: %v", err)
	}
	if again.Title != "Go" {
		t.Error("store returned a shared reference, not a copy")
	}
}

func TestTagGetBySlugAndList(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	for _, title := range []string{"Zebra", "Alpha", "Mango"} {
		tg := &tag.Tag{ID: id.NewTagID(), Title: title, Slug: "slug-" + title}
		if err := s.SaveTag(ctx, tg); err != nil {
			t.Fatalf("SaveTag(%s) failed: %v", title, err)
		}
	}

	got, err := s.GetTagBySlug(ctx, "slug-Mango")
	if err != nil {
		t.Fatalf("GetTagBySlug failed: %v", err)
	}
	if got.Title != "Mango" {
		t.Errorf("got %q, want %q", got.Title, "Mango")
	}

	list, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d tags, want 3", len(list))
	}
	if list[0].Title != "Alpha" || list[2].Title != "Zebra" {
		t.Errorf("list not ordered by title: %q, %q, %q", list[0].Title, list[1].Title, list[2].Title)
	}
}

func TestTagDuplicateSlug(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	a := &tag.Tag{ID: id.NewTagID(), Title: "First", Slug: "shared"}
	if err := s.SaveTag(ctx, a); err != nil {
		t.Fatalf("SaveTag failed: %v", err)
	}

	b := &tag.Tag{ID: id.NewTagID(), Title: "Second", Slug: "shared"}
	if err := s.SaveTag(ctx, b); !errors.Is(err, piranha.ErrDuplicateKey) {
		t.Errorf("got error %v, want %v", err, piranha.ErrDuplicateKey)
	}

	// Re-saving the owner of the slug is fine.
	a.Title = "First (updated)"
	if err := s.SaveTag(ctx, a); err != nil {
		t.Errorf("updating the owning tag failed: %v", err)
	}
}

func TestTagDelete(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	tg := &tag.Tag{ID: id.NewTagID(), Title: "Doomed", Slug: "doomed"}
	if err := s.SaveTag(ctx, tg); err != nil {
		t.Fatalf("SaveTag failed: %v", err)
	}
	if err := s.DeleteTag(ctx, tg.ID); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	if _, err := s.GetTag(ctx, tg.ID); !errors.Is(err, piranha.ErrTagNotFound) {
		t.Errorf("got error %v, want %v", err, piranha.ErrTagNotFound)
	}
	if err := s.DeleteTag(ctx, tg.ID); !errors.Is(err, piranha.ErrTagNotFound) {
		t.Errorf("second delete: got error %v, want %v", err, piranha.ErrTagNotFound)
	}
}

// ──────────────────────────────────────────────────
// Param store tests
// ──────────────────────────────────────────────────

func TestParamByKey(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	p := &param.Param{ID: id.NewParamID(), Key: "site.title", Value: "My Blog"}
	if err := s.SaveParam(ctx, p); err != nil {
		t.Fatalf("SaveParam failed: %v", err)
	}

	got, err := s.GetParamByKey(ctx, "site.title")
	if err != nil {
		t.Fatalf("GetParamByKey failed: %v", err)
	}
	if got.Value != "My Blog" {
		t.Errorf("got value %q, want %q", got.Value, "My Blog")
	}

	if _, err := s.GetParamByKey(ctx, "missing"); !errors.Is(err, piranha.ErrParamNotFound) {
		t.Errorf("got error %v, want %v", err, piranha.ErrParamNotFound)
	}

	dup := &param.Param{ID: id.NewParamID(), Key: "site.title", Value: "Other"}
	if err := s.SaveParam(ctx, dup); !errors.Is(err, piranha.ErrDuplicateKey) {
		t.Errorf("got error %v, want %v", err, piranha.ErrDuplicateKey)
	}
}

// ──────────────────────────────────────────────────
// Alias store tests
// ──────────────────────────────────────────────────

func TestAliasByURL(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	siteID := id.NewSiteID()
	otherSite := id.NewSiteID()

	a := &alias.Alias{
		ID:          id.NewAliasID(),
		SiteID:      siteID,
		AliasURL:    "/old-post",
		RedirectURL: "/blog/new-post",
		Type:        alias.RedirectPermanent,
	}
	if err := s.SaveAlias(ctx, a); err != nil {
		t.Fatalf("SaveAlias failed: %v", err)
	}

	got, err := s.GetAliasByURL(ctx, siteID, "/old-post")
	if err != nil {
		t.Fatalf("GetAliasByURL failed: %v", err)
	}
	if got.RedirectURL != "/blog/new-post" {
		t.Errorf("got redirect %q, want %q", got.RedirectURL, "/blog/new-post")
	}

	// Same URL on a different site is not found.
	if _, err := s.GetAliasByURL(ctx, otherSite, "/old-post"); !errors.Is(err, piranha.ErrAliasNotFound) {
		t.Errorf("got error %v, want %v", err, piranha.ErrAliasNotFound)
	}

	// Same URL on the same site is a duplicate.
	dup := &alias.Alias{ID: id.NewAliasID(), SiteID: siteID, AliasURL: "/old-post", RedirectURL: "/elsewhere"}
	if err := s.SaveAlias(ctx, dup); !errors.Is(err, piranha.ErrDuplicateKey) {
		t.Errorf("got error %v, want %v", err, piranha.ErrDuplicateKey)
	}
}

func TestAliasListScopedToSite(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	siteA := id.NewSiteID()
	siteB := id.NewSiteID()

	for i, url := range []string{"/b", "/a", "/c"} {
		target := siteA
		if i == 2 {
			target = siteB
		}
		a := &alias.Alias{ID: id.NewAliasID(), SiteID: target, AliasURL: url, RedirectURL: "/x"}
		if err := s.SaveAlias(ctx, a); err != nil {
			t.Fatalf("SaveAlias failed: %v", err)
		}
	}

	list, err := s.ListAliases(ctx, siteA)
	if err != nil {
		t.Fatalf("ListAliases failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d aliases, want 2", len(list))
	}
	if list[0].AliasURL != "/a" || list[1].AliasURL != "/b" {
		t.Errorf("list not ordered by URL: %q, %q", list[0].AliasURL, list[1].AliasURL)
	}
}

// ──────────────────────────────────────────────────
// Site store tests
// ──────────────────────────────────────────────────

func TestSiteDefaultDemotion(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	first := &site.Site{ID: id.NewSiteID(), InternalID: "main", Title: "Main", IsDefault: true}
	if err := s.SaveSite(ctx, first); err != nil {
		t.Fatalf("SaveSite failed: %v", err)
	}

	second := &site.Site{ID: id.NewSiteID(), InternalID: "docs", Title: "Docs", IsDefault: true}
	if err := s.SaveSite(ctx, second); err != nil {
		t.Fatalf("SaveSite failed: %v", err)
	}

	def, err := s.GetDefaultSite(ctx)
	if err != nil {
		t.Fatalf("GetDefaultSite failed: %v", err)
	}
	if def.InternalID != "docs" {
		t.Errorf("default site is %q, want %q", def.InternalID, "docs")
	}

	demoted, err := s.GetSite(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetSite failed: %v", err)
	}
	if demoted.IsDefault {
		t.Error("previous default site was not demoted")
	}
}

func TestSiteByHostname(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	st := &site.Site{
		ID:         id.NewSiteID(),
		InternalID: "main",
		Title:      "Main",
		Hostnames:  "example.com, www.example.com",
	}
	if err := s.SaveSite(ctx, st); err != nil {
		t.Fatalf("SaveSite failed: %v", err)
	}

	tests := []struct {
		hostname string
		wantErr  error
	}{
		{"example.com", nil},
		{"www.example.com", nil},
		{"other.com", piranha.ErrSiteNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			_, err := s.GetSiteByHostname(ctx, tt.hostname)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ──────────────────────────────────────────────────
// Media store tests
// ──────────────────────────────────────────────────

func TestMediaFoldersAndAssets(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	folder := &media.Folder{ID: id.NewMediaFolderID(), Name: "Images"}
	if err := s.SaveFolder(ctx, folder); err != nil {
		t.Fatalf("SaveFolder failed: %v", err)
	}

	rootAsset := &media.Media{
		ID: id.NewMediaID(), Type: media.TypeImage,
		Filename: "logo.png", ContentType: "image/png", Size: 1024,
	}
	nested := &media.Media{
		ID: id.NewMediaID(), FolderID: folder.ID, Type: media.TypeImage,
		Filename: "banner.jpg", ContentType: "image/jpeg", Size: 2048,
	}
	for _, md := range []*media.Media{rootAsset, nested} {
		if err := s.SaveMedia(ctx, md); err != nil {
			t.Fatalf("SaveMedia(%s) failed: %v", md.Filename, err)
		}
	}

	// Root listing only sees media without a folder.
	rootList, err := s.ListMedia(ctx, id.Nil)
	if err != nil {
		t.Fatalf("ListMedia(root) failed: %v", err)
	}
	if len(rootList) != 1 || rootList[0].Filename != "logo.png" {
		t.Errorf("unexpected root listing: %+v", rootList)
	}

	folderList, err := s.ListMedia(ctx, folder.ID)
	if err != nil {
		t.Fatalf("ListMedia(folder) failed: %v", err)
	}
	if len(folderList) != 1 || folderList[0].Filename != "banner.jpg" {
		t.Errorf("unexpected folder listing: %+v", folderList)
	}

	folders, err := s.ListFolders(ctx, id.Nil)
	if err != nil {
		t.Fatalf("ListFolders failed: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "Images" {
		t.Errorf("unexpected folder list: %+v", folders)
	}

	if err := s.DeleteMedia(ctx, nested.ID); err != nil {
		t.Fatalf("DeleteMedia failed: %v", err)
	}
	if _, err := s.GetMedia(ctx, nested.ID); !errors.Is(err, piranha.ErrMediaNotFound) {
		t.Errorf("got error %v, want %v", err, piranha.ErrMediaNotFound)
	}
	if err := s.DeleteFolder(ctx, folder.ID); err != nil {
		t.Fatalf("DeleteFolder failed: %v", err)
	}
	if _, err := s.GetFolder(ctx, folder.ID); !errors.Is(err, piranha.ErrMediaFolderNotFound) {
		t.Errorf("got error %v, want %v", err, piranha.ErrMediaFolderNotFound)
	}
}
