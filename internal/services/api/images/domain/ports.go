package domain

import "context"

// ServicePort is the images API contract
type ServicePort interface {
	Locate(ctx context.Context, in LocateInput) (LocateOutput, error)
	Describe(ctx context.Context, in DescribeInput) (DescribeOutput, error)
}
