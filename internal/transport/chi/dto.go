package chi

import (
	"github.com/kailas-cloud/frontsearch/internal/domain/item"
	"github.com/kailas-cloud/frontsearch/internal/domain/response"
	itemuc "github.com/kailas-cloud/frontsearch/internal/usecase/item"
)

type searchResponse struct {
	TotalRows int              `json:"totalRows"`
	Offset    int              `json:"offset"`
	HasMore   bool             `json:"hasMore"`
	Fields    []string         `json:"fields"`
	Hits      []map[string]any `json:"hits"`
}

type termCountDTO struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type tagsResponse struct {
	Tags []termCountDTO `json:"tags"`
}

type sortOptionDTO struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type sortOptionsResponse struct {
	SortOptions []sortOptionDTO `json:"sortOptions"`
}

type itemRequest struct {
	Kind           string   `json:"kind"`
	Name           string   `json:"name"`
	URL            string   `json:"url,omitempty"`
	Location       string   `json:"location,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	DatasourceUIDs []string `json:"ds_uid,omitempty"`
	Starred        bool     `json:"starred,omitempty"`
}

type itemResponse struct {
	UID            string   `json:"uid"`
	Kind           string   `json:"kind"`
	Name           string   `json:"name"`
	URL            string   `json:"url,omitempty"`
	Location       string   `json:"location,omitempty"`
	Tags           []string `json:"tags"`
	DatasourceUIDs []string `json:"ds_uid"`
	Starred        bool     `json:"starred"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (r itemRequest) toInput() itemuc.Input {
	return itemuc.Input{
		Kind:           r.Kind,
		Name:           r.Name,
		URL:            r.URL,
		Location:       r.Location,
		Tags:           r.Tags,
		DatasourceUIDs: r.DatasourceUIDs,
		Starred:        r.Starred,
	}
}

func itemToDTO(it *item.Item) itemResponse {
	return itemResponse{
		UID:            it.UID(),
		Kind:           string(it.Kind()),
		Name:           it.Name(),
		URL:            it.URL(),
		Location:       it.Location(),
		Tags:           nonNil(it.Tags()),
		DatasourceUIDs: nonNil(it.DatasourceUIDs()),
		Starred:        it.Starred(),
	}
}

// searchToDTO renders the requested window of resp.
func searchToDTO(resp response.Response, offset, limit int) searchResponse {
	lo, hi := resp.Window(offset, limit)

	var names []string
	hits := make([]map[string]any, 0, hi-lo)
	if resp.View != nil {
		names = resp.View.FieldNames()
		for i := lo; i < hi; i++ {
			row := resp.View.Row(i)
			hit := make(map[string]any, len(names))
			for c, name := range names {
				hit[name] = row[c]
			}
			hits = append(hits, hit)
		}
	}

	return searchResponse{
		TotalRows: resp.TotalRows,
		Offset:    offset,
		HasMore:   offset+len(hits) < resp.TotalRows,
		Fields:    nonNil(names),
		Hits:      hits,
	}
}

func tagsToDTO(tags []response.TermCount) tagsResponse {
	out := make([]termCountDTO, len(tags))
	for i, t := range tags {
		out[i] = termCountDTO{Term: t.Term, Count: t.Count}
	}
	return tagsResponse{Tags: out}
}

func sortOptionsToDTO(opts []response.SortOption) sortOptionsResponse {
	out := make([]sortOptionDTO, len(opts))
	for i, o := range opts {
		out[i] = sortOptionDTO{Value: o.Value, Label: o.Label, Description: o.Description}
	}
	return sortOptionsResponse{SortOptions: out}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
