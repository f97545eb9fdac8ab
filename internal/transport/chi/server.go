package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/frontsearch/internal/domain"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
	healthuc "github.com/kailas-cloud/frontsearch/internal/usecase/health"
)

// Paging defaults used when WithPageSize is not called.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Server serves the search and item API.
type Server struct {
	search        Searcher
	items         ItemService
	health        HealthChecker
	purger        CachePurger
	logger        *zap.Logger
	pageSize      int
	maxPageSize   int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, items ItemService, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{
		search:        search,
		items:         items,
		health:        health,
		logger:        logger,
		pageSize:      DefaultPageSize,
		maxPageSize:   MaxPageSize,
		errorHandlers: defaultErrorHandlers(),
	}
}

// WithPageSize sets the default and maximum number of hits per response.
func (s *Server) WithPageSize(def, maxSize int) *Server {
	if def > 0 {
		s.pageSize = def
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// WithCachePurger enables DELETE /api/search/cache.
func (s *Server) WithCachePurger(p CachePurger) *Server {
	s.purger = p
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/search", func(r chi.Router) {
		r.Get("/", s.Search)
		r.Get("/starred", s.Starred)
		r.Get("/tags", s.Tags)
		r.Get("/sorting", s.SortOptions)
		if s.purger != nil {
			r.Delete("/cache", s.PurgeCache)
		}
	})
	r.Route("/api/items", func(r chi.Router) {
		r.Post("/", s.CreateItem)
		r.Put("/{uid}", s.PutItem)
		r.Get("/{uid}", s.GetItem)
		r.Delete("/{uid}", s.DeleteItem)
	})
}

// Search handles GET /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseSearch(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchToDTO(resp, q.Offset, q.Limit))
}

// Starred handles GET /api/search/starred.
func (s *Server) Starred(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseSearch(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Starred(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchToDTO(resp, q.Offset, q.Limit))
}

// Tags handles GET /api/search/tags.
func (s *Server) Tags(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseSearch(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	tags, err := s.search.Tags(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tagsToDTO(tags))
}

// SortOptions handles GET /api/search/sorting.
func (s *Server) SortOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.search.SortOptions(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sortOptionsToDTO(opts))
}

// PurgeCache handles DELETE /api/search/cache.
func (s *Server) PurgeCache(w http.ResponseWriter, _ *http.Request) {
	s.purger.Purge()
	w.WriteHeader(http.StatusNoContent)
}

// CreateItem handles POST /api/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, err := s.items.Create(r.Context(), req.toInput())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/items/"+url.PathEscape(it.UID()))
	writeJSON(w, http.StatusCreated, itemToDTO(&it))
}

// PutItem handles PUT /api/items/{uid}.
func (s *Server) PutItem(w http.ResponseWriter, r *http.Request) {
	uid, err := pathUID(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, created, err := s.items.Put(r.Context(), uid, req.toInput())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/api/items/"+url.PathEscape(uid))
	}
	writeJSON(w, status, itemToDTO(&it))
}

// GetItem handles GET /api/items/{uid}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	uid, err := pathUID(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	it, err := s.items.Get(r.Context(), uid)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToDTO(&it))
}

// DeleteItem handles DELETE /api/items/{uid}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	uid, err := pathUID(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.items.Delete(r.Context(), uid); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

type searchParams struct {
	Kinds          []string
	Query          string
	Tags           []string
	DatasourceUIDs []string
	Facets         []string
	Sort           string
	Starred        bool
	Limit          int
	Offset         int
}

// parseSearch binds form-style, exploded query parameters (kind=a&kind=b).
func (s *Server) parseSearch(values url.Values) (*query.Search, error) {
	var p searchParams
	binds := []struct {
		name string
		dest any
	}{
		{"kind", &p.Kinds},
		{"query", &p.Query},
		{"tag", &p.Tags},
		{"ds_uid", &p.DatasourceUIDs},
		{"facet", &p.Facets},
		{"sort", &p.Sort},
		{"starred", &p.Starred},
		{"limit", &p.Limit},
		{"offset", &p.Offset},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, values, b.dest); err != nil {
			return nil, fmt.Errorf("%w: parameter %q: %w", domain.ErrInvalidQuery, b.name, err)
		}
	}
	if p.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", domain.ErrInvalidQuery)
	}

	limit := p.Limit
	switch {
	case limit <= 0:
		limit = s.pageSize
	case limit > s.maxPageSize:
		limit = s.maxPageSize
	}

	return &query.Search{
		Kinds:          p.Kinds,
		Query:          p.Query,
		Tags:           p.Tags,
		DatasourceUIDs: p.DatasourceUIDs,
		Facets:         p.Facets,
		Sort:           p.Sort,
		Starred:        p.Starred,
		Limit:          limit,
		Offset:         p.Offset,
	}, nil
}

func pathUID(r *http.Request) (string, error) {
	var uid string
	err := runtime.BindStyledParameterWithOptions("simple", "uid", chi.URLParam(r, "uid"), &uid,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
	}
	return uid, nil
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
