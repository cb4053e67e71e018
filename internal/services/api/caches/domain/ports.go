package domain

import "context"

// ServicePort is the caches API contract
type ServicePort interface {
	List(ctx context.Context, in ListInput) (ListOutput, error)
	Get(ctx context.Context, geocode string) (CacheView, error)
	Upsert(ctx context.Context, in UpsertInput) (UpsertOutput, error)
	History(ctx context.Context, geocode string, limit int) (HistoryOutput, error)
}
