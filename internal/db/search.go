package db

import "errors"

// TagFilter matches documents whose tag field holds any of Values.
type TagFilter struct {
	Field  string
	Values []string
}

// ListQuery is the input for filtered, sorted, paginated FT.SEARCH.
//
// Tag filters are ANDed; values inside one filter are ORed. Text is matched
// as a prefix per whitespace-separated term against TextField. Filters
// without values constrain nothing.
type ListQuery struct {
	IndexName    string
	Tags         []TagFilter
	TextField    string
	Text         string
	SortBy       string
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// Validate checks that the query is well-formed.
func (q *ListQuery) Validate() error {
	if q.IndexName == "" {
		return errors.New("index name is required")
	}
	if q.Offset < 0 {
		return errors.New("offset must not be negative")
	}
	if q.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	if q.Text != "" && q.TextField == "" {
		return errors.New("text field is required for text match")
	}
	for _, f := range q.Tags {
		if f.Field == "" {
			return errors.New("tag filter field is required")
		}
	}
	return nil
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
