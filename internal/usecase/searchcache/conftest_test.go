package searchcache

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/frontsearch/internal/domain/dataset"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	"github.com/kailas-cloud/frontsearch/internal/usecase/fuzzy"
)

// mockFetcher counts backend calls; gate (if set) blocks every call until closed.
type mockFetcher struct {
	mu      sync.Mutex
	calls   int
	queries []query.Search
	errs    []error // consumed per call; nil entries succeed
	gate    chan struct{}
	started chan struct{}
	view    *dataset.Frame
}

func (m *mockFetcher) Search(ctx context.Context, q *query.Search) (response.Response, error) {
	m.mu.Lock()
	m.calls++
	m.queries = append(m.queries, *q)
	var err error
	if len(m.errs) > 0 {
		err = m.errs[0]
		m.errs = m.errs[1:]
	}
	gate, started := m.gate, m.started
	m.mu.Unlock()

	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if gate != nil {
		<-gate
	}
	if ctx.Err() != nil {
		return response.Response{}, ctx.Err()
	}
	if err != nil {
		return response.Response{}, err
	}
	return response.Loaded(m.view), nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// parkedCtx signals parked the first time Done is read, which Resolve does only
// once it waits on a fetch.
type parkedCtx struct {
	context.Context
	once   sync.Once
	parked chan<- struct{}
}

func (c *parkedCtx) Done() <-chan struct{} {
	c.once.Do(func() { c.parked <- struct{}{} })
	return c.Context.Done()
}

func testView(t *testing.T) *dataset.Frame {
	t.Helper()
	return dataset.MustNew("search", dataset.NameField,
		dataset.NewField("kind", "dashboard", "dashboard", "folder"),
		dataset.NewField("name", "Server CPU Dashboard", "CPU Server Overview", "Network Traffic"),
	)
}

func newTestCache(t *testing.T, f *mockFetcher) *Cache {
	t.Helper()
	if f.view == nil {
		f.view = testView(t)
	}
	return New(f, fuzzy.DefaultOptions(), zap.NewNop())
}
