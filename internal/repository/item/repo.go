// Package item stores searchable items as Redis hashes under an FT index.
package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/frontsearch/internal/db"
	"github.com/kailas-cloud/frontsearch/internal/domain"
	domitem "github.com/kailas-cloud/frontsearch/internal/domain/item"
)

// store is the consumer interface for items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context, q *db.ListQuery) (int, error)
}

// Repo implements usecase/item.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates an item repository. prefix namespaces every key and the index.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// EnsureIndex creates the item FT index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def, err := IndexDefinition(r.prefix)
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	exists, err := r.store.IndexExists(ctx, def.Name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", def.Name, err)
	}
	if exists {
		return nil
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return nil
}

// IndexReady reports an error unless the item FT index exists.
func (r *Repo) IndexReady(ctx context.Context) error {
	name := IndexName(r.prefix)
	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	if !exists {
		return fmt.Errorf("index %s: %w", name, db.ErrIndexNotFound)
	}
	return nil
}

// Count returns the number of indexed items.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx, &db.ListQuery{IndexName: IndexName(r.prefix)})
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Upsert creates or replaces an item. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, it *domitem.Item) (bool, error) {
	key := Key(r.prefix, it.UID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	// ToHash always writes every field, so HSET fully replaces the old item.
	if err := r.store.HSet(ctx, key, ToHash(it)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	return !exists, nil
}

// UpsertMany writes items in one pipelined round-trip.
func (r *Repo) UpsertMany(ctx context.Context, items []domitem.Item) error {
	batch := make([]db.HashSetItem, len(items))
	for i := range items {
		batch[i] = db.HashSetItem{
			Key:    Key(r.prefix, items[i].UID()),
			Fields: ToHash(&items[i]),
		}
	}
	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("hset %d items: %w", len(items), err)
	}
	return nil
}

// Get returns an item by uid.
func (r *Repo) Get(ctx context.Context, uid string) (domitem.Item, error) {
	key := Key(r.prefix, uid)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domitem.Item{}, domain.ErrNotFound
		}
		return domitem.Item{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	return FromHash(uid, m), nil
}

// Delete removes an item.
func (r *Repo) Delete(ctx context.Context, uid string) error {
	key := Key(r.prefix, uid)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
