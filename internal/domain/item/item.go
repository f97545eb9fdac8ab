// Package item defines a searchable entity stored in the backend.
package item

import (
	"regexp"
	"slices"
	"strings"

	"github.com/kailas-cloud/frontsearch/internal/domain"
)

// Kind is the type of a searchable item.
type Kind string

const (
	// KindDashboard is a dashboard.
	KindDashboard Kind = "dashboard"
	// KindFolder is a folder.
	KindFolder Kind = "folder"
	// KindPanel is a library panel.
	KindPanel Kind = "panel"
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindDashboard, KindFolder, KindPanel:
		return true
	}
	return false
}

// Field limits.
const (
	MaxUIDLength  = 128
	MaxNameLength = 512
	MaxTags       = 64
)

var uidRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Item is a searchable entity (immutable value object).
type Item struct {
	uid      string
	kind     Kind
	name     string
	url      string
	location string
	tags     []string
	dsUIDs   []string
	starred  bool
}

// New validates and creates an Item. Tags and datasource uids are trimmed, deduplicated and sorted.
func New(uid string, kind Kind, name, url, location string, tags, dsUIDs []string, starred bool) (Item, error) {
	if uid == "" {
		return Item{}, domain.NewFieldError("uid", "is required")
	}
	if len(uid) > MaxUIDLength {
		return Item{}, domain.NewFieldError("uid", "is too long")
	}
	if !uidRegex.MatchString(uid) {
		return Item{}, domain.NewFieldError("uid", "must be alphanumeric with underscores and hyphens")
	}
	if !kind.IsValid() {
		return Item{}, domain.NewFieldError("kind", "must be dashboard, folder or panel")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, domain.NewFieldError("name", "is required")
	}
	if len(name) > MaxNameLength {
		return Item{}, domain.NewFieldError("name", "is too long")
	}
	if len(tags) > MaxTags {
		return Item{}, domain.NewFieldError("tags", "has too many entries")
	}
	tags = normalizeList(tags)
	for _, t := range tags {
		if strings.ContainsRune(t, ',') {
			return Item{}, domain.NewFieldError("tags", "must not contain commas")
		}
	}
	dsUIDs = normalizeList(dsUIDs)
	for _, d := range dsUIDs {
		if !uidRegex.MatchString(d) {
			return Item{}, domain.NewFieldError("ds_uid", "must be alphanumeric with underscores and hyphens")
		}
	}

	return Item{
		uid:      uid,
		kind:     kind,
		name:     name,
		url:      url,
		location: location,
		tags:     tags,
		dsUIDs:   dsUIDs,
		starred:  starred,
	}, nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(uid string, kind Kind, name, url, location string, tags, dsUIDs []string, starred bool) Item {
	return Item{
		uid: uid, kind: kind, name: name, url: url, location: location,
		tags: tags, dsUIDs: dsUIDs, starred: starred,
	}
}

// UID returns the item identifier.
func (i *Item) UID() string { return i.uid }

// Kind returns the item kind.
func (i *Item) Kind() Kind { return i.kind }

// Name returns the display name (the fuzzy haystack).
func (i *Item) Name() string { return i.name }

// URL returns the item link.
func (i *Item) URL() string { return i.url }

// Location returns the parent folder uid, empty for the root.
func (i *Item) Location() string { return i.location }

// Tags returns the item tags.
func (i *Item) Tags() []string { return i.tags }

// DatasourceUIDs returns the datasources the item queries.
func (i *Item) DatasourceUIDs() []string { return i.dsUIDs }

// Starred reports whether the item is starred.
func (i *Item) Starred() bool { return i.starred }

func normalizeList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
