package domain

import "context"

// ServicePort defines the service contract for text operations
type ServicePort interface {
	Match(ctx context.Context, in MatchInput) (MatchOutput, error)
	Normalize(ctx context.Context, in NormalizeInput) (NormalizeOutput, error)
	Inspect(ctx context.Context, in InspectInput) (InspectOutput, error)
	Sort(ctx context.Context, in SortInput) (SortOutput, error)
}
