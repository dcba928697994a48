package request

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/kailas-cloud/reviewsearch/internal/domain"
)

// DefaultLimit is the fixed result cap sent with every search.
const DefaultLimit = 100

// Request is a validated search query.
type Request struct {
	query string
	limit int
}

// New validates a free-text query. Only the emptiness check trims; the query
// is otherwise sent as typed (NFC-normalised).
func New(query string) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("new request: %w", domain.ErrEmptyQuery)
	}
	return Request{
		query: norm.NFC.String(query),
		limit: DefaultLimit,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Limit returns the maximum number of results requested.
func (r *Request) Limit() int { return r.limit }
