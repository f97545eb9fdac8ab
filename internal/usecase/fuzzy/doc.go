// Package fuzzy ranks the rows of a cached dataset against free text.
//
// Matching is per term and case-insensitive: every character of a term must
// appear in the row name, in order, with at most IntraMax extra characters
// between consecutive matched characters. Terms must appear in needle order
// with any gap between them.
//
// To find names that contain the query terms in a different order, the index
// tries every permutation of the terms (Heap's algorithm, original order
// first) and unions the ranked matches. A row keeps the position given by the
// first permutation that found it. Expansion is factorial, so only the first
// MaxPermuteTerms terms are permuted; the rest stay in query order after each
// permuted prefix.
//
// Ranking within one needle prefers, in order:
//
//	fewer characters inserted inside terms
//	more terms matched as whole words
//	more terms starting at a word boundary
//	fewer characters between terms
//	an earlier first match
//	a shorter name
//	lexical order of the name, then row order
package fuzzy
