package search

import (
	"context"

	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	"github.com/kailas-cloud/frontsearch/internal/usecase/fuzzy"
)

// Backend is the authoritative search engine behind the router.
type Backend interface {
	Search(ctx context.Context, q *query.Search) (response.Response, error)
	Starred(ctx context.Context, q *query.Search) (response.Response, error)
	Tags(ctx context.Context, q *query.Search) ([]response.TermCount, error)
	SortOptions(ctx context.Context) ([]response.SortOption, error)
}

// IndexResolver hands out the fuzzy index for a kind-set.
type IndexResolver interface {
	Resolve(ctx context.Context, kinds []string) (*fuzzy.Index, error)
}
