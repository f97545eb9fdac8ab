package domain

// KeyPrefix namespaces every key frontsearch writes to the store.
const KeyPrefix = "frontsearch:"

// Default search tuning, overridable through config.
const (
	// DefaultFetchLimit caps the rows pulled from the backend per kind-set.
	DefaultFetchLimit = 5000
	// DefaultIntraMax is the number of extra characters tolerated between matched term characters.
	DefaultIntraMax = 1
	// DefaultMaxPermuteTerms bounds out-of-order expansion to 5! needles.
	DefaultMaxPermuteTerms = 5
)
