package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/frontsearch/internal/domain"
	domitem "github.com/kailas-cloud/frontsearch/internal/domain/item"
)

// Input carries the client-supplied attributes of an item.
type Input struct {
	Kind           string
	Name           string
	URL            string
	Location       string
	Tags           []string
	DatasourceUIDs []string
	Starred        bool
}

// Service handles item CRUD and keeps the search cache coherent.
type Service struct {
	repo        Repository
	invalidator Invalidator
	newUID      func() string
}

// New creates an item service.
func New(repo Repository) *Service {
	return &Service{repo: repo, newUID: uuid.NewString}
}

// WithInvalidator purges inv after every write that may have changed the store.
func (s *Service) WithInvalidator(inv Invalidator) *Service {
	s.invalidator = inv
	return s
}

// Put creates or replaces the item stored under uid. Returns true if created.
func (s *Service) Put(ctx context.Context, uid string, in Input) (domitem.Item, bool, error) {
	it, err := build(uid, in)
	if err != nil {
		return domitem.Item{}, false, err
	}
	created, err := s.repo.Upsert(ctx, &it)
	// A failed write may still have reached the store.
	s.purge()
	if err != nil {
		return domitem.Item{}, false, fmt.Errorf("upsert item: %w", err)
	}
	return it, created, nil
}

// Create stores a new item under a generated uid.
func (s *Service) Create(ctx context.Context, in Input) (domitem.Item, error) {
	it, _, err := s.Put(ctx, s.newUID(), in)
	return it, err
}

// Import validates all inputs, then writes them in one batch. A missing uid is generated.
func (s *Service) Import(ctx context.Context, uids []string, inputs []Input) (int, error) {
	if len(uids) != len(inputs) {
		return 0, fmt.Errorf("import: %d uids for %d items", len(uids), len(inputs))
	}
	if len(inputs) == 0 {
		return 0, nil
	}

	items := make([]domitem.Item, len(inputs))
	for i, in := range inputs {
		uid := uids[i]
		if uid == "" {
			uid = s.newUID()
		}
		it, err := build(uid, in)
		if err != nil {
			return 0, fmt.Errorf("item %d: %w", i, err)
		}
		items[i] = it
	}

	// The batch is not atomic: items before a failing one stay written.
	err := s.repo.UpsertMany(ctx, items)
	s.purge()
	if err != nil {
		return 0, fmt.Errorf("import items: %w", err)
	}
	return len(items), nil
}

// Get returns an item by uid.
func (s *Service) Get(ctx context.Context, uid string) (domitem.Item, error) {
	it, err := s.repo.Get(ctx, uid)
	if err != nil {
		return domitem.Item{}, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, uid string) error {
	err := s.repo.Delete(ctx, uid)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete item: %w", err)
	}
	s.purge()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *Service) purge() {
	if s.invalidator != nil {
		s.invalidator.Purge()
	}
}

func build(uid string, in Input) (domitem.Item, error) {
	return domitem.New(uid, domitem.Kind(in.Kind), in.Name, in.URL, in.Location,
		in.Tags, in.DatasourceUIDs, in.Starred)
}
