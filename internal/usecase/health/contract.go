package health

import "context"

// StorePinger checks vector store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// SearchAPIChecker checks that the search service answers.
type SearchAPIChecker interface {
	HealthCheck(ctx context.Context) error
}
