package bunstore

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/alias"
	"github.com/hfz-r/piranha.core/category"
	"github.com/hfz-r/piranha.core/id"
	"github.com/hfz-r/piranha.core/media"
	"github.com/hfz-r/piranha.core/param"
	"github.com/hfz-r/piranha.core/site"
	"github.com/hfz-r/piranha.core/tag"
)

// optionalID maps a possibly-Nil ID to a nullable column and back.
func optionalID(i id.ID) *string {
	if i.IsNil() {
		return nil
	}
	s := i.String()
	return &s
}

func parseOptionalID(s *string, parse func(string) (id.ID, error)) (id.ID, error) {
	if s == nil || *s == "" {
		return id.Nil, nil
	}
	return parse(*s)
}

// ── Site model ────────────────────────────────────────────────────

type siteModel struct {
	bun.BaseModel `bun:"table:piranha_sites"`

	ID           string    `bun:"id,pk"`
	InternalID   string    `bun:"internal_id,notnull"`
	Title        string    `bun:"title,notnull"`
	Description  string    `bun:"description,notnull,default:''"`
	Hostnames    string    `bun:"hostnames,notnull,default:''"`
	Culture      string    `bun:"culture,notnull,default:''"`
	IsDefault    bool      `bun:"is_default,notnull,default:false"`
	Created      time.Time `bun:"created,notnull,default:current_timestamp"`
	LastModified time.Time `bun:"last_modified,notnull,default:current_timestamp"`
}

func toSiteModel(s *site.Site) *siteModel {
	return &siteModel{
		ID:           s.ID.String(),
		InternalID:   s.InternalID,
		Title:        s.Title,
		Description:  s.Description,
		Hostnames:    s.Hostnames,
		Culture:      s.Culture,
		IsDefault:    s.IsDefault,
		Created:      s.Created,
		LastModified: s.LastModified,
	}
}

func fromSiteModel(m *siteModel) (*site.Site, error) {
	parsedID, err := id.ParseSiteID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: parse site id %q: %w", m.ID, err)
	}

	return &site.Site{
		Entity:      piranha.Entity{Created: m.Created, LastModified: m.LastModified},
		ID:          parsedID,
		InternalID:  m.InternalID,
		Title:       m.Title,
		Description: m.Description,
		Hostnames:   m.Hostnames,
		Culture:     m.Culture,
		IsDefault:   m.IsDefault,
	}, nil
}

// ── Alias model ───────────────────────────────────────────────────

type aliasModel struct {
	bun.BaseModel `bun:"table:piranha_aliases"`

	ID           string    `bun:"id,pk"`
	SiteID       string    `bun:"site_id,notnull"`
	AliasURL     string    `bun:"alias_url,notnull"`
	RedirectURL  string    `bun:"redirect_url,notnull"`
	RedirectType int       `bun:"redirect_type,notnull,default:302"`
	Created      time.Time `bun:"created,notnull,default:current_timestamp"`
	LastModified time.Time `bun:"last_modified,notnull,default:current_timestamp"`
}

func toAliasModel(a *alias.Alias) *aliasModel {
	return &aliasModel{
		ID:           a.ID.String(),
		SiteID:       a.SiteID.String(),
		AliasURL:     a.AliasURL,
		RedirectURL:  a.RedirectURL,
		RedirectType: int(a.Type),
		Created:      a.Created,
		LastModified: a.LastModified,
	}
}

func fromAliasModel(m *aliasModel) (*alias.Alias, error) {
	parsedID, err := id.ParseAliasID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: parse alias id %q: %w", m.ID, err)
	}
	parsedSite, err := id.ParseSiteID(m.SiteID)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: parse alias site id %q: %w", m.SiteID, err)
	}

	return &alias.Alias{
		Entity:      piranha.Entity{Created: m.Created, LastModified: m.LastModified},
		ID:          parsedID,
		SiteID:      parsedSite,
		AliasURL:    m.AliasURL,
		RedirectURL: m.RedirectURL,
		Type:        alias.RedirectType(m.RedirectType),
	}, nil
}

// ── Category model ────────────────────────────────────────────────

type categoryModel struct {
	bun.BaseModel `bun:"table:piranha_categories"`

	ID           string    `bun:"id,pk"`
	Title        string    `bun:"title,notnull"`
	Slug         string    `bun:"slug,notnull"`
	Created      time.Time `bun:"created,notnull,default:current_timestamp"`
	LastModified time.Time `bun:"last_modified,notnull,default:current_timestamp"`
}

func toCategoryModel(c *category.Category) *categoryModel {
	return &categoryModel{
		ID:           c.ID.String(),
		Title:        c.Title,
		Slug:         c.Slug,
		Created:      c.Created,
		LastModified: c.LastModified,
	}
}

func fromCategoryModel(m *categoryModel) (*category.Category, error) {
	parsedID, err := id.ParseCategoryID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: parse category id %q: %w", m.ID, err)
	}

	return &category.Category{
		Entity: piranha.Entity{Created: m.Created, LastModified: m.LastModified},
		ID:     parsedID,
		Title:  m.Title,
		Slug:   m.Slug,
	}, nil
}

// ── Tag model ─────────────────────────────────────────────────────

type tagModel struct {
	bun.BaseModel `bun:"table:piranha_tags"`

	ID           string    `bun:"id,pk"`
	Title        string    `bun:"title,notnull"`
	Slug         string    `bun:"slug,notnull"`
	Created      time.Time `bun:"created,notnull,default:current_timestamp"`
	LastModified time.Time `bun:"last_modified,notnull,default:current_timestamp"`
}

func toTagModel(t *tag.Tag) *tagModel {
	return &tagModel{
		ID:           t.ID.String(),
		Title:        t.Title,
		Slug:         t.Slug,
		Created:      t.Created,
		LastModified: t.LastModified,
	}
}

func fromTagModel(m *tagModel) (*tag.Tag, error) {
	parsedID, err := id.ParseTagID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: parse tag id %q: %w", m.ID, err)
	}

	return &tag.Tag{
		Entity: piranha.Entity{Created: m.Created, LastModified: m.LastModified},
		ID:     parsedID,
		Title:  m.Title,
		Slug:   m.Slug,
	}, nil
}

// ── Param model ───────────────────────────────────────────────────

type paramModel struct {
	bun.BaseModel `bun:"table:piranha_params"`

	ID           string    `bun:"id,pk"`
	Key          string    `bun:"key,notnull"`
	Value        string    `bun:"value,notnull,default:''"`
	Description  string    `bun:"description,notnull,default:''"`
	Created      time.Time `bun:"created,notnull,default:current_timestamp"`
	LastModified time.Time `bun:"last_modified,notnull,default:current_timestamp"`
}

func toParamModel(p *param.Param) *paramModel {
	return &paramModel{
		ID:           p.ID.String(),
		Key:          p.Key,
		Value:        p.Value,
		Description:  p.Description,
		Created:      p.Created,
		LastModified: p.LastModified,
	}
}

func fromParamModel(m *paramModel) (*param.Param, error) {
	parsedID, err := id.ParseParamID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: parse param id %q: %w", m.ID, err)
	}

	return &param.Param{
		Entity:      piranha.Entity{Created: m.Created, LastModified: m.LastModified},
		ID:          parsedID,
		Key:         m.Key,
		Value:       m.Value,
		Description: m.Description,
	}, nil
}

// ── Media models ──────────────────────────────────────────────────

type folderModel struct {
	bun.BaseModel `bun:"table:piranha_media_folders"`

	ID           string    `bun:"id,pk"`
	ParentID     *string   `bun:"parent_id"`
	Name         string    `bun:"name,notnull"`
	Created      time.Time `bun:"created,notnull,default:current_timestamp"`
	LastModified time.Time `bun:"last_modified,notnull,default:current_timestamp"`
}

func toFolderModel(f *media.Folder) *folderModel {
	return &folderModel{
		ID:           f.ID.String(),
		ParentID:     optionalID(f.ParentID),
		Name:         f.Name,
		Created:      f.Created,
		LastModified: f.LastModified,
	}
}

func fromFolderModel(m *folderModel) (*media.Folder, error) {
	parsedID, err := id.ParseMediaFolderID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: parse folder id %q: %w", m.ID, err)
	}
	parent, err := parseOptionalID(m.ParentID, id.ParseMediaFolderID)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: parse folder parent id: %w", err)
	}

	return &media.Folder{
		Entity:   piranha.Entity{Created: m.Created, LastModified: m.LastModified},
		ID:       parsedID,
		ParentID: parent,
		Name:     m.Name,
	}, nil
}

type mediaModel struct {
	bun.BaseModel `bun:"table:piranha_media"`

	ID           string    `bun:"id,pk"`
	FolderID     *string   `bun:"folder_id"`
	Type         string    `bun:"type,notnull"`
	Filename     string    `bun:"filename,notnull"`
	ContentType  string    `bun:"content_type,notnull"`
	Size         int64     `bun:"size,notnull,default:0"`
	PublicURL    string    `bun:"public_url,notnull,default:''"`
	Title        string    `bun:"title,notnull,default:''"`
	AltText      string    `bun:"alt_text,notnull,default:''"`
	Description  string    `bun:"description,notnull,default:''"`
	Created      time.Time `bun:"created,notnull,default:current_timestamp"`
	LastModified time.Time `bun:"last_modified,notnull,default:current_timestamp"`
}

func toMediaModel(m *media.Media) *mediaModel {
	return &mediaModel{
		ID:           m.ID.String(),
		FolderID:     optionalID(m.FolderID),
		Type:         string(m.Type),
		Filename:     m.Filename,
		ContentType:  m.ContentType,
		Size:         m.Size,
		PublicURL:    m.PublicURL,
		Title:        m.Title,
		AltText:      m.AltText,
		Description:  m.Description,
		Created:      m.Created,
		LastModified: m.LastModified,
	}
}

func fromMediaModel(m *mediaModel) (*media.Media, error) {
	parsedID, err := id.ParseMediaID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: parse media id %q: %w", m.ID, err)
	}
	folder, err := parseOptionalID(m.FolderID, id.ParseMediaFolderID)
	if err != nil {
		return nil, fmt.Errorf("piranha/bun: parse media folder id: %w", err)
	}

	return &media.Media{
		Entity:      piranha.Entity{Created: m.Created, LastModified: m.LastModified},
		ID:          parsedID,
		FolderID:    folder,
		Type:        media.Type(m.Type),
		Filename:    m.Filename,
		ContentType: m.ContentType,
		Size:        m.Size,
		PublicURL:   m.PublicURL,
		Title:       m.Title,
		AltText:     m.AltText,
		Description: m.Description,
	}, nil
}
