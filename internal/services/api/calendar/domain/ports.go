package domain

import "context"

// ServicePort is the calendar API contract
type ServicePort interface {
	Event(ctx context.Context, in EventInput) (EventOutput, error)
}
