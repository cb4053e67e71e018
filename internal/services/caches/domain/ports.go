package domain

import (
	"context"

	"cgeo/internal/core/cache"
)

// StorePort is the service contract other modules use
type StorePort interface {
	Upsert(ctx context.Context, c cache.Geocache) (UpsertResult, error)
	Get(ctx context.Context, geocode string) (cache.Geocache, error)
	List(ctx context.Context, in ListInput) ([]cache.Geocache, error)
	// History is the newest first change log of one cache
	History(ctx context.Context, geocode string, limit int) ([]TextChange, error)
}

// ChangeSink records text change events and reads them back newest first
// implementations must be safe for concurrent use
type ChangeSink interface {
	RecordTextChanges(ctx context.Context, xs []TextChange) error
	TextChanges(ctx context.Context, geocode string, limit int) ([]TextChange, error)
}
