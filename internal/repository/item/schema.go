package item

import (
	"strings"

	"github.com/kailas-cloud/frontsearch/internal/db"
	domitem "github.com/kailas-cloud/frontsearch/internal/domain/item"
)

// Hash field names of a stored item.
const (
	FieldUID      = "uid"
	FieldKind     = "kind"
	FieldName     = "name"
	FieldURL      = "url"
	FieldLocation = "location"
	FieldTags     = "tags"
	FieldDSUID    = "ds_uid"
	FieldStarred  = "starred"
)

const listSeparator = ","

// IndexName returns the FT index covering all items.
func IndexName(prefix string) string {
	return prefix + "items"
}

// KeyPrefix returns the key prefix shared by all item hashes.
func KeyPrefix(prefix string) string {
	return prefix + "item:"
}

// Key returns the hash key of one item.
func Key(prefix, uid string) string {
	return KeyPrefix(prefix) + uid
}

// IndexDefinition returns the FT.CREATE schema for item hashes.
func IndexDefinition(prefix string) (*db.IndexDefinition, error) {
	return db.NewIndex(IndexName(prefix)).
		Prefix(KeyPrefix(prefix)).
		SortableText(FieldName).
		Tag(FieldKind).
		Tag(FieldUID).
		Tag(FieldLocation).
		TagWithOpts(FieldTags, listSeparator, true).
		TagWithOpts(FieldDSUID, listSeparator, true).
		Tag(FieldStarred).
		Build()
}

// ToHash flattens an item into hash fields.
func ToHash(it *domitem.Item) map[string]string {
	return map[string]string{
		FieldUID:      it.UID(),
		FieldKind:     string(it.Kind()),
		FieldName:     it.Name(),
		FieldURL:      it.URL(),
		FieldLocation: it.Location(),
		FieldTags:     strings.Join(it.Tags(), listSeparator),
		FieldDSUID:    strings.Join(it.DatasourceUIDs(), listSeparator),
		FieldStarred:  formatBool(it.Starred()),
	}
}

// FromHash hydrates an item from hash fields. The uid falls back to fallbackUID
// when the hash does not carry one.
func FromHash(fallbackUID string, m map[string]string) domitem.Item {
	uid := m[FieldUID]
	if uid == "" {
		uid = fallbackUID
	}
	return domitem.Reconstruct(
		uid,
		domitem.Kind(m[FieldKind]),
		m[FieldName],
		m[FieldURL],
		m[FieldLocation],
		SplitList(m[FieldTags]),
		SplitList(m[FieldDSUID]),
		m[FieldStarred] == "true",
	)
}

// SplitList decodes a separator-joined list field.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSeparator)
}

// UIDFromKey strips the item key prefix.
func UIDFromKey(prefix, key string) string {
	return strings.TrimPrefix(key, KeyPrefix(prefix))
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
