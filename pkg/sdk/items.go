package frontsearch

import (
	"context"
	"fmt"
	"time"

	domitem "github.com/kailas-cloud/frontsearch/internal/domain/item"
	itemuc "github.com/kailas-cloud/frontsearch/internal/usecase/item"
)

// ItemService manages searchable items. Every successful write purges the
// client's search cache.
type ItemService struct {
	svc itemUseCase
	obs *observer
}

// Put creates or replaces it under it.UID. Returns true if created.
func (s *ItemService) Put(ctx context.Context, it Item) (_ Item, created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("item_put", start, err) }()

	stored, created, err := s.svc.Put(ctx, it.UID, toInput(&it))
	if err != nil {
		return Item{}, false, fmt.Errorf("put item %s: %w", it.UID, err)
	}
	return fromDomain(&stored), created, nil
}

// Create stores it under a generated uid; it.UID is ignored.
func (s *ItemService) Create(ctx context.Context, it Item) (_ Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("item_create", start, err) }()

	stored, err := s.svc.Create(ctx, toInput(&it))
	if err != nil {
		return Item{}, fmt.Errorf("create item: %w", err)
	}
	return fromDomain(&stored), nil
}

// Import validates all items, then writes them in one batch.
// Items without a UID get a generated one.
func (s *ItemService) Import(ctx context.Context, items []Item) (n int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("item_import", start, err) }()

	uids := make([]string, len(items))
	inputs := make([]itemuc.Input, len(items))
	for i := range items {
		uids[i] = items[i].UID
		inputs[i] = toInput(&items[i])
	}
	n, err = s.svc.Import(ctx, uids, inputs)
	if err != nil {
		return 0, fmt.Errorf("import items: %w", err)
	}
	return n, nil
}

// Get returns an item by uid.
func (s *ItemService) Get(ctx context.Context, uid string) (_ Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("item_get", start, err) }()

	stored, err := s.svc.Get(ctx, uid)
	if err != nil {
		return Item{}, fmt.Errorf("get item %s: %w", uid, err)
	}
	return fromDomain(&stored), nil
}

// Delete removes an item.
func (s *ItemService) Delete(ctx context.Context, uid string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("item_delete", start, err) }()

	if err = s.svc.Delete(ctx, uid); err != nil {
		return fmt.Errorf("delete item %s: %w", uid, err)
	}
	return nil
}

func toInput(it *Item) itemuc.Input {
	return itemuc.Input{
		Kind:           it.Kind,
		Name:           it.Name,
		URL:            it.URL,
		Location:       it.Location,
		Tags:           it.Tags,
		DatasourceUIDs: it.DatasourceUIDs,
		Starred:        it.Starred,
	}
}

func fromDomain(it *domitem.Item) Item {
	return Item{
		UID:            it.UID(),
		Kind:           string(it.Kind()),
		Name:           it.Name(),
		URL:            it.URL(),
		Location:       it.Location(),
		Tags:           it.Tags(),
		DatasourceUIDs: it.DatasourceUIDs(),
		Starred:        it.Starred(),
	}
}
