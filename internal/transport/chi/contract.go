package chi

import (
	"context"

	"github.com/kailas-cloud/frontsearch/internal/domain/item"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	healthuc "github.com/kailas-cloud/frontsearch/internal/usecase/health"
	itemuc "github.com/kailas-cloud/frontsearch/internal/usecase/item"
)

// Searcher serves search requests.
type Searcher interface {
	Search(ctx context.Context, q *query.Search) (response.Response, error)
	Starred(ctx context.Context, q *query.Search) (response.Response, error)
	Tags(ctx context.Context, q *query.Search) ([]response.TermCount, error)
	SortOptions(ctx context.Context) ([]response.SortOption, error)
}

// ItemService manages stored items.
type ItemService interface {
	Put(ctx context.Context, uid string, in itemuc.Input) (item.Item, bool, error)
	Create(ctx context.Context, in itemuc.Input) (item.Item, error)
	Get(ctx context.Context, uid string) (item.Item, error)
	Delete(ctx context.Context, uid string) error
}

// CachePurger drops every cached dataset.
type CachePurger interface {
	Purge()
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
