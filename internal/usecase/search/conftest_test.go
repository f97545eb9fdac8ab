package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/frontsearch/internal/domain/dataset"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	"github.com/kailas-cloud/frontsearch/internal/usecase/fuzzy"
)

// --- Mocks ---

type mockBackend struct {
	searchResp  response.Response
	searchErr   error
	starredResp response.Response
	starredErr  error
	tags        []response.TermCount
	tagsErr     error
	sortOpts    []response.SortOption
	sortErr     error

	searchCalls  int
	starredCalls int
	tagsCalls    int
	sortCalls    int
	lastQuery    *query.Search
}

func (m *mockBackend) Search(_ context.Context, q *query.Search) (response.Response, error) {
	m.searchCalls++
	m.lastQuery = q
	return m.searchResp, m.searchErr
}

func (m *mockBackend) Starred(_ context.Context, q *query.Search) (response.Response, error) {
	m.starredCalls++
	m.lastQuery = q
	return m.starredResp, m.starredErr
}

func (m *mockBackend) Tags(_ context.Context, q *query.Search) ([]response.TermCount, error) {
	m.tagsCalls++
	m.lastQuery = q
	return m.tags, m.tagsErr
}

func (m *mockBackend) SortOptions(_ context.Context) ([]response.SortOption, error) {
	m.sortCalls++
	return m.sortOpts, m.sortErr
}

func (m *mockBackend) totalCalls() int {
	return m.searchCalls + m.starredCalls + m.tagsCalls + m.sortCalls
}

type mockResolver struct {
	idx       *fuzzy.Index
	err       error
	calls     int
	lastKinds []string
}

func (m *mockResolver) Resolve(_ context.Context, kinds []string) (*fuzzy.Index, error) {
	m.calls++
	m.lastKinds = kinds
	return m.idx, m.err
}

func testFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	return dataset.MustNew("search", dataset.NameField,
		dataset.NewField("kind", "dashboard", "dashboard", "folder"),
		dataset.NewField("uid", "uid-0", "uid-1", "uid-2"),
		dataset.NewField("name", "Server CPU Dashboard", "CPU Server Overview", "Network Traffic"),
	)
}

func newResolver(t *testing.T) *mockResolver {
	t.Helper()
	return &mockResolver{idx: fuzzy.New(testFrame(t), fuzzy.DefaultOptions())}
}
