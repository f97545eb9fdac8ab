package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker checks that the search index is in place.
type IndexChecker interface {
	IndexReady(ctx context.Context) error
}
