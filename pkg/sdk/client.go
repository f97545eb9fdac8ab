package frontsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/frontsearch/internal/db"
	dbRedis "github.com/kailas-cloud/frontsearch/internal/db/redis"
	"github.com/kailas-cloud/frontsearch/internal/domain"
	domitem "github.com/kailas-cloud/frontsearch/internal/domain/item"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	"github.com/kailas-cloud/frontsearch/internal/repository/backend"
	itemrepo "github.com/kailas-cloud/frontsearch/internal/repository/item"
	"github.com/kailas-cloud/frontsearch/internal/usecase/fuzzy"
	healthuc "github.com/kailas-cloud/frontsearch/internal/usecase/health"
	itemuc "github.com/kailas-cloud/frontsearch/internal/usecase/item"
	searchuc "github.com/kailas-cloud/frontsearch/internal/usecase/search"
	"github.com/kailas-cloud/frontsearch/internal/usecase/searchcache"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultPageSize         = 50
)

// Internal interfaces, substituted in tests.
type searchUseCase interface {
	Search(ctx context.Context, q *query.Search) (response.Response, error)
	Starred(ctx context.Context, q *query.Search) (response.Response, error)
	Tags(ctx context.Context, q *query.Search) ([]response.TermCount, error)
	SortOptions(ctx context.Context) ([]response.SortOption, error)
}

type itemUseCase interface {
	Put(ctx context.Context, uid string, in itemuc.Input) (domitem.Item, bool, error)
	Create(ctx context.Context, in itemuc.Input) (domitem.Item, error)
	Import(ctx context.Context, uids []string, inputs []itemuc.Input) (int, error)
	Get(ctx context.Context, uid string) (domitem.Item, error)
	Delete(ctx context.Context, uid string) error
}

type datasetCache interface {
	Purge()
	Len() int
}

// Client is the frontsearch SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	itemSvc   itemUseCase
	healthSvc healthUseCase
	cache     datasetCache
	pageSize  int
	maxRows   int
	obs       *observer
}

// New creates a Client, connects to the database and ensures the item index exists.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix:       domain.KeyPrefix,
		fetchLimit:      domain.DefaultFetchLimit,
		intraMax:        domain.DefaultIntraMax,
		maxPermuteTerms: domain.DefaultMaxPermuteTerms,
		pageSize:        defaultPageSize,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("frontsearch: database address required (use WithRedis or WithCluster)")
	}
	if cfg.intraMax < 0 {
		return nil, fmt.Errorf("frontsearch: intra max must not be negative, got %d", cfg.intraMax)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("frontsearch: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("frontsearch: database not ready: %w", err)
	}

	c, err := wireClient(ctx, store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	items := itemrepo.New(store, cfg.keyPrefix)
	if err := items.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("frontsearch: ensure index: %w", err)
	}

	searchBackend := backend.New(store, cfg.keyPrefix).WithPageSize(cfg.pageSize)
	cache := searchcache.New(searchBackend, fuzzy.Options{
		IntraMax:        cfg.intraMax,
		MaxPermuteTerms: cfg.maxPermuteTerms,
	}, newZapLogger(cfg.logger)).WithFetchLimit(cfg.fetchLimit)
	if obs.metrics != nil {
		m := obs.metrics
		cache = cache.WithMetrics(m.cacheRequests, m.cacheFetch, m.cacheEntries, m.truncated)
	}

	return &Client{
		store:     store,
		searchSvc: searchuc.New(searchBackend, cache),
		itemSvc:   itemuc.New(items).WithInvalidator(cache),
		healthSvc: healthuc.New(store, items),
		cache:     cache,
		pageSize:  cfg.pageSize,
		maxRows:   cfg.fetchLimit,
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Items returns the item management service.
func (c *Client) Items() *ItemService {
	return &ItemService{svc: c.itemSvc, obs: c.obs}
}

// PurgeCache drops every cached kind-set. Needed only after writes made
// outside this client.
func (c *Client) PurgeCache() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// CachedKindSets returns the number of kind-sets currently held in memory.
func (c *Client) CachedKindSets() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
