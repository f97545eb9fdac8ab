package fuzzy

import (
	"slices"
	"strings"
	"unicode"
)

// Terms splits text into runs of letters and digits. Order and casing are kept.
func Terms(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Permutations returns every ordering of terms using Heap's algorithm.
// The first permutation is terms itself. The input is not modified.
func Permutations(terms []string) [][]string {
	arr := slices.Clone(terms)
	out := [][]string{slices.Clone(arr)}
	c := make([]int, len(arr))

	for i := 1; i < len(arr); {
		if c[i] < i {
			k := 0
			if i%2 == 1 {
				k = c[i]
			}
			arr[i], arr[k] = arr[k], arr[i]
			c[i]++
			i = 1
			out = append(out, slices.Clone(arr))
		} else {
			c[i] = 0
			i++
		}
	}
	return out
}

// Needles builds one space-joined needle per permutation of terms.
// With maxTerms > 0 only the first maxTerms terms are permuted and truncated is true
// when terms had to be cut.
func Needles(terms []string, maxTerms int) (needles []string, truncated bool) {
	head, tail := terms, []string(nil)
	if maxTerms > 0 && len(terms) > maxTerms {
		head, tail = terms[:maxTerms], terms[maxTerms:]
		truncated = true
	}

	perms := Permutations(head)
	needles = make([]string, len(perms))
	for i, p := range perms {
		needles[i] = strings.Join(append(p, tail...), " ")
	}
	return needles, truncated
}
