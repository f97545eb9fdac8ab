package item

import (
	"context"

	domitem "github.com/kailas-cloud/frontsearch/internal/domain/item"
)

// Repository defines the storage contract for items.
type Repository interface {
	Upsert(ctx context.Context, it *domitem.Item) (created bool, err error)
	UpsertMany(ctx context.Context, items []domitem.Item) error
	Get(ctx context.Context, uid string) (domitem.Item, error)
	Delete(ctx context.Context, uid string) error
}

// Invalidator drops cached search datasets after writes.
type Invalidator interface {
	Purge()
}
