package search

import (
	"context"

	"github.com/kailas-cloud/reviewsearch/internal/domain/search/request"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/result"
)

// Searcher runs one search against the external review search service.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
}
