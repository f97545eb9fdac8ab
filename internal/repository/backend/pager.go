package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/kailas-cloud/frontsearch/internal/db"
	"github.com/kailas-cloud/frontsearch/internal/domain"
	"github.com/kailas-cloud/frontsearch/internal/domain/dataset"
)

// Pager loads further rows of a backend result on demand.
// Row indexes are relative to the first row of the original request.
type Pager struct {
	backend *Backend
	query   db.ListQuery
	base    int

	mu     sync.Mutex
	total  int
	loaded *roaring.Bitmap
	rows   map[int]db.SearchEntry
}

func newPager(b *Backend, lq *db.ListQuery, first *db.SearchResult) *Pager {
	p := &Pager{
		backend: b,
		query:   *lq,
		base:    lq.Offset,
		total:   max(first.Total-lq.Offset, 0),
		loaded:  roaring.New(),
		rows:    make(map[int]db.SearchEntry, len(first.Entries)),
	}
	p.store(0, first.Entries)
	return p
}

// IsItemLoaded reports whether row index is resident.
func (p *Pager) IsItemLoaded(index int) bool {
	if index < 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded.Contains(uint32(index))
}

// LoadMoreItems fetches rows startIndex..stopIndex (inclusive) that are not resident yet.
func (p *Pager) LoadMoreItems(ctx context.Context, startIndex, stopIndex int) error {
	p.mu.Lock()
	startIndex = max(startIndex, 0)
	stopIndex = min(stopIndex, p.total-1)
	for startIndex <= stopIndex && p.loaded.Contains(uint32(startIndex)) {
		startIndex++
	}
	for stopIndex >= startIndex && p.loaded.Contains(uint32(stopIndex)) {
		stopIndex--
	}
	p.mu.Unlock()
	if startIndex > stopIndex {
		return nil
	}

	q := p.query
	q.Offset = p.base + startIndex
	q.Limit = stopIndex - startIndex + 1
	res, err := p.backend.store.Search(ctx, &q)
	if err != nil {
		return fmt.Errorf("load rows %d-%d: %w: %w", startIndex, stopIndex, domain.ErrBackendUnavailable, err)
	}

	p.mu.Lock()
	p.total = max(res.Total-p.base, 0)
	p.store(startIndex, res.Entries)
	p.mu.Unlock()
	return nil
}

// Total returns the row count reported by the latest fetch.
func (p *Pager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// View returns the resident rows in index order.
func (p *Pager) View() (*dataset.Frame, error) {
	p.mu.Lock()
	entries := make([]db.SearchEntry, 0, p.loaded.GetCardinality())
	it := p.loaded.Iterator()
	for it.HasNext() {
		entries = append(entries, p.rows[int(it.Next())])
	}
	p.mu.Unlock()
	return toFrame(p.backend.prefix, entries)
}

// store must be called with mu held (or before the pager is shared).
func (p *Pager) store(start int, entries []db.SearchEntry) {
	for i, e := range entries {
		p.rows[start+i] = e
	}
	if len(entries) > 0 {
		p.loaded.AddRange(uint64(start), uint64(start+len(entries)))
	}
}
