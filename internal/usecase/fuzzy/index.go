package fuzzy

import (
	"cmp"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/frontsearch/internal/domain"
	"github.com/kailas-cloud/frontsearch/internal/domain/dataset"
	"github.com/kailas-cloud/frontsearch/internal/domain/query"
)

// Options configures matching.
type Options struct {
	// IntraMax is the number of extra runes tolerated between consecutive characters of a term.
	IntraMax int
	// MaxPermuteTerms bounds out-of-order expansion. Zero or less disables the cap.
	MaxPermuteTerms int
}

// DefaultOptions returns the production matching settings.
func DefaultOptions() Options {
	return Options{
		IntraMax:        domain.DefaultIntraMax,
		MaxPermuteTerms: domain.DefaultMaxPermuteTerms,
	}
}

// Index answers free-text queries over one immutable dataset.
// It is safe for concurrent use: Search only reads shared state.
type Index struct {
	frame     *dataset.Frame
	haystack  []haystackEntry
	names     []string
	opts      Options
	truncated prometheus.Counter
}

// New prepares an index over frame.
func New(frame *dataset.Frame, opts Options) *Index {
	if opts.IntraMax < 0 {
		opts.IntraMax = 0
	}
	names := frame.Names()
	hay := make([]haystackEntry, len(names))
	for i, n := range names {
		hay[i] = newHaystackEntry(n)
	}
	return &Index{frame: frame, haystack: hay, names: names, opts: opts}
}

// WithTruncationCounter counts queries whose permutation expansion was capped.
func (x *Index) WithTruncationCounter(c prometheus.Counter) *Index {
	x.truncated = c
	return x
}

// Dataset returns the wrapped frame.
func (x *Index) Dataset() *dataset.Frame { return x.frame }

// Search returns the rows matching text, ranked, each row at most once.
// Wildcard text (and text without any letter or digit) returns the wrapped frame itself.
// Any other result is a new frame with the same columns.
func (x *Index) Search(text string) *dataset.Frame {
	if query.IsWildcard(text) {
		return x.frame
	}
	terms := Terms(text)
	if len(terms) == 0 {
		return x.frame
	}

	needles, truncated := Needles(terms, x.opts.MaxPermuteTerms)
	if truncated && x.truncated != nil {
		x.truncated.Inc()
	}

	accepted := roaring.New()
	out := dataset.NewBuilder(x.frame, 0)
	rows := x.candidates(compileNeedle(strings.Join(terms, " ")))
	if len(rows) == 0 {
		return out.Frame()
	}
	for _, needle := range needles {
		for _, info := range x.rank(compileNeedle(needle), rows) {
			if accepted.CheckedAdd(uint32(info.idx)) { //nolint:gosec // row count is capped by the fetch limit
				out.Append(info.idx)
			}
		}
	}
	return out.Frame()
}

// candidates returns the rows in which every term matches on its own.
// No ordering of the terms can match a row outside this set.
func (x *Index) candidates(terms [][]rune) []int {
	var rows []int
	for i, h := range x.haystack {
		if matchesEach(h, terms, x.opts.IntraMax) {
			rows = append(rows, i)
		}
	}
	return rows
}

// rank filters rows by one needle and orders the matches.
func (x *Index) rank(terms [][]rune, rows []int) []matchInfo {
	var infos []matchInfo
	for _, i := range rows {
		h := x.haystack[i]
		spans := match(h, terms, x.opts.IntraMax)
		if spans == nil {
			continue
		}
		infos = append(infos, describe(i, h, terms, spans))
	}

	slices.SortFunc(infos, func(a, b matchInfo) int {
		return cmp.Or(
			cmp.Compare(a.intraIns, b.intraIns),
			cmp.Compare(b.wholeWord, a.wholeWord),
			cmp.Compare(b.prefixes, a.prefixes),
			cmp.Compare(a.interIns, b.interIns),
			cmp.Compare(a.start, b.start),
			cmp.Compare(len(x.haystack[a.idx].original), len(x.haystack[b.idx].original)),
			cmp.Compare(x.names[a.idx], x.names[b.idx]),
			cmp.Compare(a.idx, b.idx),
		)
	})
	return infos
}
