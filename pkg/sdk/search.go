package frontsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/frontsearch/internal/domain/dataset"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	itemrepo "github.com/kailas-cloud/frontsearch/internal/repository/item"
)

// Search returns one page of items matching req.
func (c *Client) Search(ctx context.Context, req SearchRequest) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	q := c.toQuery(&req)
	resp, err := c.searchSvc.Search(ctx, q)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return toResult(resp, q.Offset, q.Limit), nil
}

// pagedLoader is a store-backed Loader that can also hand out its resident rows.
type pagedLoader interface {
	response.Loader
	Total() int
	View() (*dataset.Frame, error)
}

// SearchAll returns every hit matching req from req.Offset on, at most req.Limit
// when set and the fetch limit otherwise. Store-backed results are loaded page by page.
func (c *Client) SearchAll(ctx context.Context, req SearchRequest) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_all", start, err) }()

	want := req.Limit
	if want <= 0 {
		want = c.maxRows
	}
	q := c.toQuery(&req)
	q.Limit = min(c.pageSize, want)

	resp, err := c.searchSvc.Search(ctx, q)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search all: %w", err)
	}
	pl, ok := resp.Loader.(pagedLoader)
	if !ok {
		return toResult(resp, q.Offset, want), nil
	}

	view, err := loadAll(ctx, pl, min(want, pl.Total()), c.pageSize)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search all: %w", err)
	}
	// The loaded view starts at q.Offset; a nil Loader windows it from row 0.
	return toResult(response.Response{View: view, TotalRows: resp.TotalRows}, 0, want), nil
}

// loadAll makes rows [0, n) of pl resident, pageSize rows per round-trip.
func loadAll(ctx context.Context, pl pagedLoader, n, pageSize int) (*dataset.Frame, error) {
	for lo := 0; lo < n; lo += pageSize {
		hi := min(lo+pageSize, n) - 1
		if pl.IsItemLoaded(lo) && pl.IsItemLoaded(hi) {
			continue
		}
		if err := pl.LoadMoreItems(ctx, lo, hi); err != nil {
			return nil, err
		}
	}
	view, err := pl.View()
	if err != nil {
		return nil, fmt.Errorf("assemble rows: %w", err)
	}
	return view, nil
}

// Starred returns one page of starred items matching req.
func (c *Client) Starred(ctx context.Context, req SearchRequest) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("starred", start, err) }()

	q := c.toQuery(&req)
	resp, err := c.searchSvc.Starred(ctx, q)
	if err != nil {
		return SearchResult{}, fmt.Errorf("starred: %w", err)
	}
	return toResult(resp, q.Offset, q.Limit), nil
}

// Tags counts tags over items matching req, most frequent first.
func (c *Client) Tags(ctx context.Context, req SearchRequest) (tags []TermCount, err error) {
	start := time.Now()
	defer func() { c.obs.observe("tags", start, err) }()

	counts, err := c.searchSvc.Tags(ctx, c.toQuery(&req))
	if err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	tags = make([]TermCount, len(counts))
	for i, tc := range counts {
		tags[i] = TermCount{Term: tc.Term, Count: tc.Count}
	}
	return tags, nil
}

// SortOptions lists the orderings the store supports.
func (c *Client) SortOptions(ctx context.Context) (opts []SortOption, err error) {
	start := time.Now()
	defer func() { c.obs.observe("sort_options", start, err) }()

	raw, err := c.searchSvc.SortOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("sort options: %w", err)
	}
	opts = make([]SortOption, len(raw))
	for i, o := range raw {
		opts[i] = SortOption{Value: o.Value, Label: o.Label, Description: o.Description}
	}
	return opts, nil
}

func (c *Client) toQuery(req *SearchRequest) *query.Search {
	limit := req.Limit
	if limit <= 0 {
		limit = c.pageSize
	}
	return &query.Search{
		Kinds:          req.Kinds,
		Query:          req.Query,
		Tags:           req.Tags,
		DatasourceUIDs: req.DatasourceUIDs,
		Sort:           req.Sort,
		Starred:        req.Starred,
		Limit:          limit,
		Offset:         req.Offset,
	}
}

func toResult(resp response.Response, offset, limit int) SearchResult {
	lo, hi := resp.Window(offset, limit)
	res := SearchResult{Total: resp.TotalRows, Hits: make([]Hit, 0, hi-lo)}
	if lo == hi {
		return res
	}

	col := func(name string) func(int) any {
		f, ok := resp.View.FieldByName(name)
		if !ok {
			return func(int) any { return nil }
		}
		return f.At
	}
	kind, uid, name := col(itemrepo.FieldKind), col(itemrepo.FieldUID), col(dataset.NameField)
	url, location := col(itemrepo.FieldURL), col(itemrepo.FieldLocation)
	tags, dsUIDs := col(itemrepo.FieldTags), col(itemrepo.FieldDSUID)

	for i := lo; i < hi; i++ {
		res.Hits = append(res.Hits, Hit{
			Kind:           asString(kind(i)),
			UID:            asString(uid(i)),
			Name:           asString(name(i)),
			URL:            asString(url(i)),
			Location:       asString(location(i)),
			Tags:           asStrings(tags(i)),
			DatasourceUIDs: asStrings(dsUIDs(i)),
		})
	}
	return res
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStrings(v any) []string {
	s, _ := v.([]string)
	return s
}
