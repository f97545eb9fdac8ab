package fuzzy

import (
	"strings"
	"unicode"
)

// haystackEntry is a row name prepared for matching.
type haystackEntry struct {
	original []rune
	folded   []rune
}

func newHaystackEntry(name string) haystackEntry {
	original := []rune(name)
	folded := make([]rune, len(original))
	for i, r := range original {
		folded[i] = unicode.ToLower(r)
	}
	return haystackEntry{original: original, folded: folded}
}

// compileNeedle splits a needle on spaces into folded terms.
func compileNeedle(needle string) [][]rune {
	fields := strings.Fields(needle)
	terms := make([][]rune, len(fields))
	for i, f := range fields {
		rs := []rune(f)
		for j, r := range rs {
			rs[j] = unicode.ToLower(r)
		}
		terms[i] = rs
	}
	return terms
}

// termSpan is where one term matched: first and last matched rune.
type termSpan struct {
	start int
	end   int
}

// matchInfo summarises how a needle matched one row.
type matchInfo struct {
	idx       int
	start     int
	intraIns  int
	interIns  int
	prefixes  int
	wholeWord int
}

// match finds the leftmost placement of terms in h, each term matched with the
// earliest possible end. It returns nil if the needle does not match.
func match(h haystackEntry, terms [][]rune, intraMax int) []termSpan {
	if len(terms) == 0 {
		return nil
	}
	spans := make([]termSpan, len(terms))
	// failFrom[t]: terms[t:] cannot be placed at or after this position.
	failFrom := make([]int, len(terms))
	for i := range failFrom {
		failFrom[i] = len(h.folded) + 1
	}

	var place func(t, from int) bool
	place = func(t, from int) bool {
		if t == len(terms) {
			return true
		}
		if from >= failFrom[t] {
			return false
		}
		term := terms[t]
		for start := from; start+len(term) <= len(h.folded); start++ {
			end, ok := matchTerm(h.folded, term, start, intraMax)
			if !ok {
				continue
			}
			if place(t+1, end+1) {
				spans[t] = termSpan{start: start, end: end}
				return true
			}
		}
		failFrom[t] = from
		return false
	}

	if !place(0, 0) {
		return nil
	}
	return spans
}

// matchesEach reports whether every term matches somewhere in h, each on its own.
func matchesEach(h haystackEntry, terms [][]rune, intraMax int) bool {
	for _, term := range terms {
		found := false
		for start := 0; start+len(term) <= len(h.folded); start++ {
			if _, ok := matchTerm(h.folded, term, start, intraMax); ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchTerm matches term starting exactly at start, allowing up to intraMax
// extra runes between consecutive term runes. It returns the smallest end.
func matchTerm(h, term []rune, start, intraMax int) (int, bool) {
	if h[start] != term[0] {
		return 0, false
	}
	reach := []int{start}
	for j := 1; j < len(term); j++ {
		var next []int
		for _, p := range reach {
			for q := p + 1; q <= p+1+intraMax && q < len(h); q++ {
				if h[q] == term[j] && !containsInt(next, q) {
					next = append(next, q)
				}
			}
		}
		if len(next) == 0 {
			return 0, false
		}
		reach = next
	}

	end := reach[0]
	for _, p := range reach[1:] {
		end = min(end, p)
	}
	return end, true
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// describe computes ranking signals for a successful match.
func describe(idx int, h haystackEntry, terms [][]rune, spans []termSpan) matchInfo {
	info := matchInfo{idx: idx, start: spans[0].start}
	for t, sp := range spans {
		ins := sp.end - sp.start - (len(terms[t]) - 1)
		info.intraIns += ins
		if t > 0 {
			info.interIns += sp.start - spans[t-1].end - 1
		}
		if isWordBoundary(h.original, sp.start) {
			info.prefixes++
			if ins == 0 && isWordEnd(h.original, sp.end) {
				info.wholeWord++
			}
		}
	}
	return info
}

// isWordBoundary reports whether the rune at idx starts a word.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, curr := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) || unicode.IsSymbol(prev) {
		return true
	}
	// camelCase
	if unicode.IsLower(prev) && unicode.IsUpper(curr) {
		return true
	}
	return unicode.IsLetter(prev) != unicode.IsLetter(curr) && (unicode.IsDigit(prev) || unicode.IsDigit(curr))
}

// isWordEnd reports whether the rune at idx ends a word.
func isWordEnd(runes []rune, idx int) bool {
	return idx == len(runes)-1 || isWordBoundary(runes, idx+1)
}
