package searchcache

import (
	"context"

	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
)

// Fetcher loads a bulk result set from the search backend.
type Fetcher interface {
	Search(ctx context.Context, q *query.Search) (response.Response, error)
}
