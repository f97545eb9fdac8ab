// Package searchcache keeps one fuzzy index per kind-set in memory.
package searchcache

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/frontsearch/internal/domain"
	"github.com/kailas-cloud/frontsearch/internal/domain/dataset"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/usecase/fuzzy"
)

// Cache maps a kind-set to the fuzzy index of its bulk result set.
//
// Concurrent misses for one key share a single backend fetch. A successful
// fetch stays cached until Purge. A failed fetch is not cached: its waiters
// get an index over an empty dataset and the next Resolve fetches again.
type Cache struct {
	fetcher    Fetcher
	fetchLimit int
	opts       fuzzy.Options
	logger     *zap.Logger

	mu      sync.RWMutex
	entries map[string]*fuzzy.Index
	gen     uint64 // bumped by Purge; fetches started under an older gen are not stored
	group   singleflight.Group

	requests   *prometheus.CounterVec
	fetchTime  *prometheus.HistogramVec
	size       prometheus.Gauge
	truncation prometheus.Counter
}

// New creates an empty cache in front of fetcher.
func New(fetcher Fetcher, opts fuzzy.Options, logger *zap.Logger) *Cache {
	return &Cache{
		fetcher:    fetcher,
		fetchLimit: domain.DefaultFetchLimit,
		opts:       opts,
		logger:     logger,
		entries:    make(map[string]*fuzzy.Index),
	}
}

// WithFetchLimit overrides the number of rows requested per kind-set.
func (c *Cache) WithFetchLimit(limit int) *Cache {
	if limit > 0 {
		c.fetchLimit = limit
	}
	return c
}

// WithMetrics wires Prometheus collectors. Any of them may be nil.
// requests carries label "result" ("hit"/"miss"/"shared"/"error"); fetchTime carries label "status".
func (c *Cache) WithMetrics(
	requests *prometheus.CounterVec,
	fetchTime *prometheus.HistogramVec,
	size prometheus.Gauge,
	truncation prometheus.Counter,
) *Cache {
	c.requests = requests
	c.fetchTime = fetchTime
	c.size = size
	c.truncation = truncation
	return c
}

// Resolve returns the index for kinds, fetching the dataset on first use.
// Backend failures are absorbed: the result is then an index over an empty dataset.
// The only error is ctx's own, when the caller stops waiting for an outstanding fetch;
// the fetch itself carries on and still populates the cache.
func (c *Cache) Resolve(ctx context.Context, kinds []string) (*fuzzy.Index, error) {
	key := query.CacheKey(kinds)

	idx, gen, ok := c.lookup(key)
	if ok {
		c.inc("hit")
		return idx, nil
	}

	kinds = slices.Clone(kinds)
	var leader bool
	flight := key + "@" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(flight, func() (any, error) {
		leader = true
		// A fetch for key may have completed between lookup and DoChan.
		if idx, _, ok := c.lookup(key); ok {
			c.inc("hit")
			return idx, nil
		}
		c.inc("miss")
		return c.fetch(context.WithoutCancel(ctx), key, gen, kinds)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for %q dataset: %w", key, ctx.Err())
	case res := <-ch:
		if !leader {
			c.inc("shared")
		}
		if res.Err != nil {
			return c.newIndex(dataset.Empty("error")), nil
		}
		return res.Val.(*fuzzy.Index), nil //nolint:errcheck // singleflight only yields *fuzzy.Index
	}
}

// Len returns the number of resolved kind-sets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the resolved cache keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	slices.Sort(keys)
	return keys
}

// Purge drops every resolved kind-set. Fetches already in flight still answer
// their waiters but are not stored.
func (c *Cache) Purge() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]*fuzzy.Index)
	c.gen++
	c.mu.Unlock()

	if c.size != nil {
		c.size.Set(0)
	}
	if n > 0 {
		c.logger.Info("Purged search datasets", zap.Int("entries", n))
	}
}

func (c *Cache) lookup(key string) (*fuzzy.Index, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.entries[key]
	return idx, c.gen, ok
}

func (c *Cache) fetch(ctx context.Context, key string, gen uint64, kinds []string) (*fuzzy.Index, error) {
	start := time.Now()
	resp, err := c.fetcher.Search(ctx, &query.Search{Kinds: kinds, Limit: c.fetchLimit})
	if err == nil && resp.View == nil {
		err = fmt.Errorf("backend returned no view")
	}
	if err != nil {
		c.observe("error", start)
		c.inc("error")
		c.logger.Error("Failed to fetch search dataset, serving empty result",
			zap.String("key", key),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch %q dataset: %w", key, err)
	}
	c.observe("ok", start)

	idx := c.newIndex(resp.View)

	c.mu.Lock()
	stale := gen != c.gen
	if !stale {
		c.entries[key] = idx
	}
	n := len(c.entries)
	c.mu.Unlock()

	if stale {
		c.logger.Debug("Discarded search dataset fetched before purge", zap.String("key", key))
		return idx, nil
	}
	if c.size != nil {
		c.size.Set(float64(n))
	}
	c.logger.Info("Cached search dataset",
		zap.String("key", key),
		zap.Int("rows", resp.View.Len()),
		zap.Int("total_rows", resp.TotalRows),
		zap.Duration("elapsed", time.Since(start)),
	)
	if resp.TotalRows > resp.View.Len() {
		c.logger.Warn("Search dataset truncated at fetch limit",
			zap.String("key", key),
			zap.Int("limit", c.fetchLimit),
			zap.Int("total_rows", resp.TotalRows),
		)
	}
	return idx, nil
}

func (c *Cache) newIndex(f *dataset.Frame) *fuzzy.Index {
	idx := fuzzy.New(f, c.opts)
	if c.truncation != nil {
		idx.WithTruncationCounter(c.truncation)
	}
	return idx
}

func (c *Cache) inc(result string) {
	if c.requests != nil {
		c.requests.WithLabelValues(result).Inc()
	}
}

func (c *Cache) observe(status string, start time.Time) {
	if c.fetchTime != nil {
		c.fetchTime.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}
}
