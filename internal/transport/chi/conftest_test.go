package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/frontsearch/internal/domain"
	"github.com/kailas-cloud/frontsearch/internal/domain/dataset"
	"github.com/kailas-cloud/frontsearch/internal/domain/item"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	healthuc "github.com/kailas-cloud/frontsearch/internal/usecase/health"
	itemuc "github.com/kailas-cloud/frontsearch/internal/usecase/item"
)

// --- mock Searcher ---

type mockSearcher struct {
	mu        sync.Mutex
	calls     int
	lastQuery *query.Search

	resp    response.Response
	tags    []response.TermCount
	sorting []response.SortOption
	err     error
}

func (m *mockSearcher) record(q *query.Search) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastQuery = q
}

func (m *mockSearcher) Search(_ context.Context, q *query.Search) (response.Response, error) {
	m.record(q)
	return m.resp, m.err
}

func (m *mockSearcher) Starred(_ context.Context, q *query.Search) (response.Response, error) {
	m.record(q)
	return m.resp, m.err
}

func (m *mockSearcher) Tags(_ context.Context, q *query.Search) ([]response.TermCount, error) {
	m.record(q)
	return m.tags, m.err
}

func (m *mockSearcher) SortOptions(context.Context) ([]response.SortOption, error) {
	m.record(nil)
	return m.sorting, m.err
}

// --- mock ItemService ---

type mockItems struct {
	items   map[string]item.Item
	putErr  error
	lastIn  itemuc.Input
	created string
}

func newMockItems() *mockItems {
	return &mockItems{items: make(map[string]item.Item)}
}

func (m *mockItems) Put(_ context.Context, uid string, in itemuc.Input) (item.Item, bool, error) {
	m.lastIn = in
	if m.putErr != nil {
		return item.Item{}, false, m.putErr
	}
	it, err := item.New(uid, item.Kind(in.Kind), in.Name, in.URL, in.Location, in.Tags, in.DatasourceUIDs, in.Starred)
	if err != nil {
		return item.Item{}, false, err
	}
	_, exists := m.items[uid]
	m.items[uid] = it
	return it, !exists, nil
}

func (m *mockItems) Create(ctx context.Context, in itemuc.Input) (item.Item, error) {
	m.created = "generated-uid"
	it, _, err := m.Put(ctx, m.created, in)
	return it, err
}

func (m *mockItems) Get(_ context.Context, uid string) (item.Item, error) {
	it, ok := m.items[uid]
	if !ok {
		return item.Item{}, domain.ErrNotFound
	}
	return it, nil
}

func (m *mockItems) Delete(_ context.Context, uid string) error {
	if _, ok := m.items[uid]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, uid)
	return nil
}

// --- mock HealthChecker ---

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

// --- mock CachePurger ---

type mockPurger struct {
	purges int
}

func (m *mockPurger) Purge() { m.purges++ }

// --- mock Loader ---

type pagedLoader struct{}

func (pagedLoader) IsItemLoaded(int) bool { return false }

func (pagedLoader) LoadMoreItems(context.Context, int, int) error { return nil }

// --- helpers ---

func testFrame(uids ...string) *dataset.Frame {
	kinds := make([]any, len(uids))
	ids := make([]any, len(uids))
	names := make([]any, len(uids))
	for i, u := range uids {
		kinds[i] = "dashboard"
		ids[i] = u
		names[i] = "Dashboard " + strings.ToUpper(u)
	}
	return dataset.MustNew("search", dataset.NameField,
		dataset.NewField("kind", kinds...),
		dataset.NewField("uid", ids...),
		dataset.NewField(dataset.NameField, names...),
	)
}

type testEnv struct {
	searcher *mockSearcher
	items    *mockItems
	health   *mockHealth
	server   *Server
	router   http.Handler
}

func newTestEnv() *testEnv {
	env := &testEnv{
		searcher: &mockSearcher{},
		items:    newMockItems(),
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}},
	}
	env.server = NewServer(env.searcher, env.items, env.health, zap.NewNop())
	env.rebuild()
	return env
}

func (e *testEnv) rebuild() {
	r := chi.NewRouter()
	e.server.Routes(r)
	e.router = r
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}
