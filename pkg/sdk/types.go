package frontsearch

// Item kinds.
const (
	KindDashboard = "dashboard"
	KindFolder    = "folder"
	KindPanel     = "panel"
)

// Sort options understood by the store.
const (
	SortAlphaAsc  = "alpha-asc"
	SortAlphaDesc = "alpha-desc"
)

// Item is a searchable entry.
type Item struct {
	UID            string
	Kind           string
	Name           string
	URL            string
	Location       string
	Tags           []string
	DatasourceUIDs []string
	Starred        bool
}

// SearchRequest selects items.
// Tags, DatasourceUIDs or Starred send the request to the store; otherwise the cached
// kind-set answers it and Sort does not apply.
type SearchRequest struct {
	Kinds          []string
	Query          string
	Tags           []string
	DatasourceUIDs []string
	Sort           string
	Starred        bool
	Limit          int
	Offset         int
}

// Hit is one search result row.
type Hit struct {
	Kind           string
	UID            string
	Name           string
	URL            string
	Location       string
	Tags           []string
	DatasourceUIDs []string
}

// SearchResult is one page of hits.
type SearchResult struct {
	Hits  []Hit
	Total int
}

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
