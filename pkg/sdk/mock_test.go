package frontsearch

import (
	"context"

	"github.com/kailas-cloud/frontsearch/internal/domain"
	domitem "github.com/kailas-cloud/frontsearch/internal/domain/item"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	healthuc "github.com/kailas-cloud/frontsearch/internal/usecase/health"
	itemuc "github.com/kailas-cloud/frontsearch/internal/usecase/item"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, q *query.Search) (response.Response, error)
	starredFn func(ctx context.Context, q *query.Search) (response.Response, error)
	tagsFn    func(ctx context.Context, q *query.Search) ([]response.TermCount, error)
	sortFn    func(ctx context.Context) ([]response.SortOption, error)
}

func (m *mockSearchUC) Search(ctx context.Context, q *query.Search) (response.Response, error) {
	return m.searchFn(ctx, q)
}

func (m *mockSearchUC) Starred(ctx context.Context, q *query.Search) (response.Response, error) {
	return m.starredFn(ctx, q)
}

func (m *mockSearchUC) Tags(ctx context.Context, q *query.Search) ([]response.TermCount, error) {
	return m.tagsFn(ctx, q)
}

func (m *mockSearchUC) SortOptions(ctx context.Context) ([]response.SortOption, error) {
	return m.sortFn(ctx)
}

// --- itemUseCase mock ---

type mockItemUC struct {
	putFn    func(ctx context.Context, uid string, in itemuc.Input) (domitem.Item, bool, error)
	createFn func(ctx context.Context, in itemuc.Input) (domitem.Item, error)
	importFn func(ctx context.Context, uids []string, inputs []itemuc.Input) (int, error)
	getFn    func(ctx context.Context, uid string) (domitem.Item, error)
	deleteFn func(ctx context.Context, uid string) error
}

func (m *mockItemUC) Put(ctx context.Context, uid string, in itemuc.Input) (domitem.Item, bool, error) {
	return m.putFn(ctx, uid, in)
}

func (m *mockItemUC) Create(ctx context.Context, in itemuc.Input) (domitem.Item, error) {
	return m.createFn(ctx, in)
}

func (m *mockItemUC) Import(ctx context.Context, uids []string, inputs []itemuc.Input) (int, error) {
	return m.importFn(ctx, uids, inputs)
}

func (m *mockItemUC) Get(ctx context.Context, uid string) (domitem.Item, error) {
	return m.getFn(ctx, uid)
}

func (m *mockItemUC) Delete(ctx context.Context, uid string) error {
	return m.deleteFn(ctx, uid)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- datasetCache mock ---

type mockCache struct {
	purges int
	size   int
}

func (m *mockCache) Purge() {
	m.purges++
	m.size = 0
}

func (m *mockCache) Len() int { return m.size }

// --- helpers ---

func testClient(searchSvc searchUseCase, itemSvc itemUseCase) *Client {
	return &Client{
		searchSvc: searchSvc,
		itemSvc:   itemSvc,
		pageSize:  defaultPageSize,
		maxRows:   domain.DefaultFetchLimit,
	}
}
