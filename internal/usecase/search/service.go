package search

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/frontsearch/internal/domain"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
)

// Service routes searches either to the in-memory fuzzy index or to the backend.
type Service struct {
	backend  Backend
	cache    IndexResolver
	duration *prometheus.HistogramVec
}

// New creates a search router.
func New(backend Backend, cache IndexResolver) *Service {
	return &Service{backend: backend, cache: cache}
}

// WithDurationMetric records search latency labelled by path ("cached" / "backend").
func (s *Service) WithDurationMetric(h *prometheus.HistogramVec) *Service {
	s.duration = h
	return s
}

// Search answers q.
//
// Facet requests are rejected before any I/O. Requests filtering by tags,
// datasources or starred go to the backend unchanged, starred ones through
// its Starred path. Everything else is served from the cached index of
// q.Kinds, fully loaded.
func (s *Service) Search(ctx context.Context, q *query.Search) (response.Response, error) {
	if q.HasFacets() {
		return response.Response{}, domain.ErrFacetsNotSupported
	}
	if err := q.Validate(); err != nil {
		return response.Response{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}

	start := time.Now()
	if q.Bypasses() {
		var (
			resp response.Response
			err  error
		)
		if q.Starred {
			resp, err = s.backend.Starred(ctx, q)
		} else {
			resp, err = s.backend.Search(ctx, q)
		}
		if err != nil {
			return response.Response{}, fmt.Errorf("backend search: %w", err)
		}
		s.observe("backend", start)
		return resp, nil
	}

	idx, err := s.cache.Resolve(ctx, q.Kinds)
	if err != nil {
		return response.Response{}, fmt.Errorf("resolve index: %w", err)
	}
	resp := response.Loaded(idx.Search(q.Query))
	s.observe("cached", start)
	return resp, nil
}

// Starred delegates to the backend.
func (s *Service) Starred(ctx context.Context, q *query.Search) (response.Response, error) {
	resp, err := s.backend.Starred(ctx, q)
	if err != nil {
		return response.Response{}, fmt.Errorf("backend starred: %w", err)
	}
	return resp, nil
}

// Tags delegates to the backend.
func (s *Service) Tags(ctx context.Context, q *query.Search) ([]response.TermCount, error) {
	tags, err := s.backend.Tags(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("backend tags: %w", err)
	}
	return tags, nil
}

// SortOptions delegates to the backend.
func (s *Service) SortOptions(ctx context.Context) ([]response.SortOption, error) {
	opts, err := s.backend.SortOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("backend sort options: %w", err)
	}
	return opts, nil
}

func (s *Service) observe(path string, start time.Time) {
	if s.duration != nil {
		s.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}
