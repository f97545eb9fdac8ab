package frontsearch

import "github.com/kailas-cloud/frontsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrInvalidItem        = domain.ErrInvalidItem
	ErrInvalidQuery       = domain.ErrInvalidQuery
	ErrFacetsNotSupported = domain.ErrFacetsNotSupported
	ErrBackendUnavailable = domain.ErrBackendUnavailable
)
