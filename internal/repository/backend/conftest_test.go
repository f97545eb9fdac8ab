package backend

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kailas-cloud/frontsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	queries  []db.ListQuery
}

func (m *mockStore) Search(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	m.queries = append(m.queries, *q)
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

const testPrefix = "fs:"

// corpus serves offset/limit windows over n generated items.
func corpus(n int) func(context.Context, *db.ListQuery) (*db.SearchResult, error) {
	return func(_ context.Context, q *db.ListQuery) (*db.SearchResult, error) {
		res := &db.SearchResult{Total: n}
		for i := q.Offset; i < n && i < q.Offset+q.Limit; i++ {
			res.Entries = append(res.Entries, entry(i))
		}
		return res, nil
	}
}

func entry(i int) db.SearchEntry {
	uid := fmt.Sprintf("uid-%d", i)
	return db.SearchEntry{
		Key: testPrefix + "item:" + uid,
		Fields: map[string]string{
			"uid": uid, "kind": "dashboard", "name": fmt.Sprintf("Dashboard %d", i),
			"url": "/d/" + uid, "location": "", "tags": "a,b", "ds_uid": "",
		},
	}
}

func tagFilter(t *testing.T, q db.ListQuery, field string) string {
	t.Helper()
	for _, f := range q.Tags {
		if f.Field == field {
			return strings.Join(f.Values, ",")
		}
	}
	return ""
}
