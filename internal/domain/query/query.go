// Package query defines the search request model shared by the router and the backend.
package query

import (
	"fmt"
	"slices"
	"strings"
)

// Wildcard matches everything: as free text it disables fuzzy filtering, as a cache key it means "no kind filter".
const Wildcard = "*"

// Request limits.
const (
	MaxQueryLength = 1024
	MaxKinds       = 16
)

// Search is a single search request.
type Search struct {
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

// Bypasses reports whether the request must go straight to the backend.
// Cached datasets are keyed by kind-set only, so any other filter bypasses them.
func (s *Search) Bypasses() bool {
	return len(s.Tags) > 0 || len(s.DatasourceUIDs) > 0 || s.Starred
}

// HasFacets reports whether the request asks for facet aggregation.
func (s *Search) HasFacets() bool {
	return len(s.Facets) > 0
}

// Validate checks request bounds. It does not reject facets; the router decides on those.
func (s *Search) Validate() error {
	if len(s.Query) > MaxQueryLength {
		return fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if len(s.Kinds) > MaxKinds {
		return fmt.Errorf("too many kinds (max %d)", MaxKinds)
	}
	if s.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	if s.Offset < 0 {
		return fmt.Errorf("offset must not be negative")
	}
	return nil
}

// IsWildcard reports whether free text matches everything.
func IsWildcard(text string) bool {
	return text == "" || text == Wildcard
}

// CacheKey derives the canonical cache key of a kind-set.
// Any permutation of the same kinds yields the same key; nil or empty kinds yield Wildcard.
// The input slice is not modified.
func CacheKey(kinds []string) string {
	if len(kinds) == 0 {
		return Wildcard
	}
	sorted := slices.Clone(kinds)
	slices.Sort(sorted)
	return strings.Join(sorted, ",")
}
