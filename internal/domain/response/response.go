// Package response defines what searchers return to callers.
package response

import (
	"context"

	"github.com/kailas-cloud/frontsearch/internal/domain/dataset"
)

// Loader exposes incremental loading of a paginated result.
type Loader interface {
	IsItemLoaded(index int) bool
	LoadMoreItems(ctx context.Context, startIndex, stopIndex int) error
}

// Response is a search result view plus its paging state.
type Response struct {
	View      *dataset.Frame
	TotalRows int
	Loader    Loader
}

// Loaded wraps a fully resident frame: every row is loaded and loading more is a no-op.
func Loaded(view *dataset.Frame) Response {
	return Response{View: view, TotalRows: view.Len(), Loader: FullyLoaded{}}
}

// Window returns the half-open range of View rows answering a request for
// limit rows starting at offset. A fully loaded View holds every match and is
// windowed here; any other View already starts at offset.
func (r Response) Window(offset, limit int) (start, end int) {
	if r.View == nil || limit <= 0 {
		return 0, 0
	}
	n := r.View.Len()
	if _, full := r.Loader.(FullyLoaded); full || r.Loader == nil {
		start = min(max(offset, 0), n)
		return start, min(start+limit, n)
	}
	return 0, min(limit, n)
}

// FullyLoaded is the Loader of an in-memory result.
type FullyLoaded struct{}

// IsItemLoaded always reports true.
func (FullyLoaded) IsItemLoaded(int) bool { return true }

// LoadMoreItems does nothing.
func (FullyLoaded) LoadMoreItems(context.Context, int, int) error { return nil }

// TermCount is a tag and the number of items carrying it.
type TermCount struct {
	Term  string
	Count int
}

// SortOption describes one supported ordering.
type SortOption struct {
	Value       string
	Label       string
	Description string
}
