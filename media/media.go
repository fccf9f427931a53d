// Package media defines the media asset and media folder models and their
// store interfaces. Binary blobs live in external storage; the store keeps
// the metadata and the public URL.
package media

import (
	"context"

	piranha "github.com/hfz-r/piranha.core"
	"github.com/hfz-r/piranha.core/id"
)

// Type classifies a media asset by its content.
type Type string

const (
	TypeImage    Type = "image"
	TypeVideo    Type = "video"
	TypeAudio    Type = "audio"
	TypeDocument Type = "document"
	TypeResource Type = "resource"
)

// Media is the metadata record for an uploaded asset.
type Media struct {
	piranha.Entity

	ID id.MediaID `json:"id"`
	// FolderID is the containing folder; Nil means the media root.
	FolderID    id.MediaFolderID `json:"folder_id,omitempty"`
	Type        Type             `json:"type"`
	Filename    string           `json:"filename"`
	ContentType string           `json:"content_type"`
	Size        int64            `json:"size"`
	PublicURL   string           `json:"public_url,omitempty"`
	Title       string           `json:"title,omitempty"`
	AltText     string           `json:"alt_text,omitempty"`
	Description string           `json:"description,omitempty"`
}

// Folder groups media assets into a hierarchy.
type Folder struct {
	piranha.Entity

	ID id.MediaFolderID `json:"id"`
	// ParentID is the containing folder; Nil means the media root.
	ParentID id.MediaFolderID `json:"parent_id,omitempty"`
	Name     string           `json:"name"`
}

// Store is the persistence interface for media assets and folders.
type Store interface {
	// GetMedia retrieves a media asset by ID.
	GetMedia(ctx context.Context, mediaID id.MediaID) (*Media, error)

	// ListMedia returns the media in a folder ordered by filename.
	// A Nil folderID lists the media root.
	ListMedia(ctx context.Context, folderID id.MediaFolderID) ([]*Media, error)

	// SaveMedia inserts or updates a media asset.
	SaveMedia(ctx context.Context, m *Media) error

	// DeleteMedia removes a media asset by ID.
	DeleteMedia(ctx context.Context, mediaID id.MediaID) error

	// GetFolder retrieves a media folder by ID.
	GetFolder(ctx context.Context, folderID id.MediaFolderID) (*Folder, error)

	// ListFolders returns the folders under a parent ordered by name.
	// A Nil parentID lists the media root.
	ListFolders(ctx context.Context, parentID id.MediaFolderID) ([]*Folder, error)

	// SaveFolder inserts or updates a media folder.
	SaveFolder(ctx context.Context, f *Folder) error

	// DeleteFolder removes a media folder by ID.
	DeleteFolder(ctx context.Context, folderID id.MediaFolderID) error
}
