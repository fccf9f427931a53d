// Package id defines TypeID-based identity types for all Piranha entities.
//
// Every entity uses a single ID struct with a prefix that identifies the
// entity type. IDs are K-sortable (UUIDv7-based), globally unique, and
// URL-safe in the format "prefix_suffix".
package id

import (
	"database/sql/driver"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for all Piranha entity types.
const (
	PrefixAlias       Prefix = "alias"
	PrefixCategory    Prefix = "cat"
	PrefixMedia       Prefix = "media"
	PrefixMediaFolder Prefix = "mfld"
	PrefixParam       Prefix = "param"
	PrefixSite        Prefix = "site"
	PrefixTag         Prefix = "tag"
)

// ID is the primary identifier type for all Piranha entities.
// It wraps a TypeID providing a prefix-qualified, globally unique,
// sortable, URL-safe identifier in the format "prefix_suffix".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "tag_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// ──────────────────────────────────────────────────
// Per-entity aliases
// ──────────────────────────────────────────────────

// AliasID is a type-safe identifier for URL aliases (prefix: "alias").
type AliasID = ID

// CategoryID is a type-safe identifier for categories (prefix: "cat").
type CategoryID = ID

// MediaID is a type-safe identifier for media assets (prefix: "media").
type MediaID = ID

// MediaFolderID is a type-safe identifier for media folders (prefix: "mfld").
type MediaFolderID = ID

// ParamID is a type-safe identifier for system parameters (prefix: "param").
type ParamID = ID

// SiteID is a type-safe identifier for sites (prefix: "site").
type SiteID = ID

// TagID is a type-safe identifier for tags (prefix: "tag").
type TagID = ID

// AnyID is a type alias that accepts any valid prefix.
type AnyID = ID

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

// NewAliasID generates a new unique alias ID.
func NewAliasID() ID { return New(PrefixAlias) }

// NewCategoryID generates a new unique category ID.
func NewCategoryID() ID { return New(PrefixCategory) }

// NewMediaID generates a new unique media ID.
func NewMediaID() ID { return New(PrefixMedia) }

// NewMediaFolderID generates a new unique media folder ID.
func NewMediaFolderID() ID { return New(PrefixMediaFolder) }

// NewParamID generates a new unique param ID.
func NewParamID() ID { return New(PrefixParam) }

// NewSiteID generates a new unique site ID.
func NewSiteID() ID { return New(PrefixSite) }

// NewTagID generates a new unique tag ID.
func NewTagID() ID { return New(PrefixTag) }

// ──────────────────────────────────────────────────
// Convenience parsers
// ──────────────────────────────────────────────────

// ParseAliasID parses a string and validates the "alias" prefix.
func ParseAliasID(s string) (ID, error) { return ParseWithPrefix(s, PrefixAlias) }

// ParseCategoryID parses a string and validates the "cat" prefix.
func ParseCategoryID(s string) (ID, error) { return ParseWithPrefix(s, PrefixCategory) }

// ParseMediaID parses a string and validates the "media" prefix.
func ParseMediaID(s string) (ID, error) { return ParseWithPrefix(s, PrefixMedia) }

// ParseMediaFolderID parses a string and validates the "mfld" prefix.
func ParseMediaFolderID(s string) (ID, error) { return ParseWithPrefix(s, PrefixMediaFolder) }

// ParseParamID parses a string and validates the "param" prefix.
func ParseParamID(s string) (ID, error) { return ParseWithPrefix(s, PrefixParam) }

// ParseSiteID parses a string and validates the "site" prefix.
func ParseSiteID(s string) (ID, error) { return ParseWithPrefix(s, PrefixSite) }

// ParseTagID parses a string and validates the "tag" prefix.
func ParseTagID(s string) (ID, error) { return ParseWithPrefix(s, PrefixTag) }

// ParseAny parses a string into an ID without type checking the prefix.
func ParseAny(s string) (ID, error) { return Parse(s) }

// ──────────────────────────────────────────────────
// ID methods
// ──────────────────────────────────────────────────

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder so IDs survive the cache
// codec, which skips unexported struct fields.
func (i ID) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(i.String())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (i *ID) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}

	return i.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer for database storage.
// Returns nil for the Nil ID so that optional foreign key columns store NULL.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}

	return i.inner.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *ID) Scan(src any) error {
	if src == nil {
		*i = Nil

		return nil
	}

	switch v := src.(type) {
	case string:
		if v == "" {
			*i = Nil

			return nil
		}

		return i.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 0 {
			*i = Nil

			return nil
		}

		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}
