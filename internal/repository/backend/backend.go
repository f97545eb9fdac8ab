// Package backend answers search requests straight from the item FT index.
package backend

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/kailas-cloud/frontsearch/internal/db"
	"github.com/kailas-cloud/frontsearch/internal/domain"
	"github.com/kailas-cloud/frontsearch/internal/domain/dataset"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	repoitem "github.com/kailas-cloud/frontsearch/internal/repository/item"
)

// Sort option values.
const (
	SortAlphaAsc  = "alpha-asc"
	SortAlphaDesc = "alpha-desc"
)

const (
	defaultPageSize = 50
	tagScanPageSize = 1000
)

// Columns of every result frame, in order.
var columns = []string{
	repoitem.FieldKind,
	repoitem.FieldUID,
	repoitem.FieldName,
	repoitem.FieldURL,
	repoitem.FieldLocation,
	repoitem.FieldTags,
	repoitem.FieldDSUID,
}

var sortOptions = []response.SortOption{
	{Value: SortAlphaAsc, Label: "Alphabetically (A-Z)", Description: "Sort results in an alphabetically ascending order"},
	{Value: SortAlphaDesc, Label: "Alphabetically (Z-A)", Description: "Sort results in an alphabetically descending order"},
}

// store is the consumer interface for search (ISP).
type store interface {
	Search(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

// Backend implements usecase/search.Backend over the item index.
type Backend struct {
	store    store
	prefix   string
	pageSize int
}

// New creates a backend. prefix must match the item repository's.
func New(s store, prefix string) *Backend {
	return &Backend{store: s, prefix: prefix, pageSize: defaultPageSize}
}

// WithPageSize sets the row count used when a request does not ask for one.
func (b *Backend) WithPageSize(n int) *Backend {
	if n > 0 {
		b.pageSize = n
	}
	return b
}

// Search returns the first page of items matching q plus a loader for the rest.
func (b *Backend) Search(ctx context.Context, q *query.Search) (response.Response, error) {
	lq, err := b.listQuery(q)
	if err != nil {
		return response.Response{}, err
	}

	res, err := b.store.Search(ctx, lq)
	if err != nil {
		return response.Response{}, fmt.Errorf("search items: %w: %w", domain.ErrBackendUnavailable, err)
	}

	view, err := toFrame(b.prefix, res.Entries)
	if err != nil {
		return response.Response{}, err
	}
	return response.Response{
		View:      view,
		TotalRows: res.Total,
		Loader:    newPager(b, lq, res),
	}, nil
}

// Starred is Search restricted to starred items.
func (b *Backend) Starred(ctx context.Context, q *query.Search) (response.Response, error) {
	sq := *q
	sq.Starred = true
	return b.Search(ctx, &sq)
}

// Tags counts tags over every item matching q, most frequent first.
func (b *Backend) Tags(ctx context.Context, q *query.Search) ([]response.TermCount, error) {
	lq, err := b.listQuery(q)
	if err != nil {
		return nil, err
	}
	lq.SortBy = ""
	lq.ReturnFields = []string{repoitem.FieldTags}
	lq.Limit = tagScanPageSize

	counts := make(map[string]int)
	for lq.Offset = 0; ; lq.Offset += tagScanPageSize {
		res, err := b.store.Search(ctx, lq)
		if err != nil {
			return nil, fmt.Errorf("scan tags: %w: %w", domain.ErrBackendUnavailable, err)
		}
		for _, e := range res.Entries {
			for _, t := range repoitem.SplitList(e.Fields[repoitem.FieldTags]) {
				counts[t]++
			}
		}
		if len(res.Entries) < tagScanPageSize || lq.Offset+tagScanPageSize >= res.Total {
			break
		}
	}

	out := make([]response.TermCount, 0, len(counts))
	for term, n := range counts {
		out = append(out, response.TermCount{Term: term, Count: n})
	}
	slices.SortFunc(out, func(a, b response.TermCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Term, b.Term))
	})
	return out, nil
}

// SortOptions lists the supported orderings.
func (b *Backend) SortOptions(context.Context) ([]response.SortOption, error) {
	return slices.Clone(sortOptions), nil
}

func (b *Backend) listQuery(q *query.Search) (*db.ListQuery, error) {
	lq := &db.ListQuery{
		IndexName:    repoitem.IndexName(b.prefix),
		TextField:    repoitem.FieldName,
		ReturnFields: columns,
		Offset:       q.Offset,
		Limit:        q.Limit,
	}
	if lq.Limit <= 0 {
		lq.Limit = b.pageSize
	}
	if !query.IsWildcard(q.Query) {
		lq.Text = q.Query
	}

	lq.Tags = append(lq.Tags,
		db.TagFilter{Field: repoitem.FieldKind, Values: q.Kinds},
		db.TagFilter{Field: repoitem.FieldTags, Values: q.Tags},
		db.TagFilter{Field: repoitem.FieldDSUID, Values: q.DatasourceUIDs},
	)
	if q.Starred {
		lq.Tags = append(lq.Tags, db.TagFilter{Field: repoitem.FieldStarred, Values: []string{"true"}})
	}

	switch q.Sort {
	case "", SortAlphaAsc:
		lq.SortBy = repoitem.FieldName
	case SortAlphaDesc:
		lq.SortBy = repoitem.FieldName
		lq.SortDesc = true
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidQuery, q.Sort)
	}
	return lq, nil
}

// toFrame lays search entries out as columns; list fields become []string.
func toFrame(prefix string, entries []db.SearchEntry) (*dataset.Frame, error) {
	values := make([][]any, len(columns))
	for c := range values {
		values[c] = make([]any, len(entries))
	}
	for r, e := range entries {
		it := repoitem.FromHash(repoitem.UIDFromKey(prefix, e.Key), e.Fields)
		values[0][r] = string(it.Kind())
		values[1][r] = it.UID()
		values[2][r] = it.Name()
		values[3][r] = it.URL()
		values[4][r] = it.Location()
		values[5][r] = it.Tags()
		values[6][r] = it.DatasourceUIDs()
	}

	fields := make([]dataset.Field, len(columns))
	for c, name := range columns {
		fields[c] = dataset.NewField(name, values[c]...)
	}
	f, err := dataset.New("search", repoitem.FieldName, fields...)
	if err != nil {
		return nil, fmt.Errorf("build result frame: %w", err)
	}
	return f, nil
}
