package result

// Result is a single review hit returned by the search service.
type Result struct {
	comment    string
	rating     float64
	productID  int64
	similarity float64
}

// New creates a search result.
func New(comment string, rating float64, productID int64, similarity float64) Result {
	return Result{
		comment:    comment,
		rating:     rating,
		productID:  productID,
		similarity: similarity,
	}
}

// Comment returns the review text.
func (r *Result) Comment() string { return r.comment }

// Rating returns the review score, nominally 0-5.
func (r *Result) Rating() float64 { return r.rating }

// ProductID returns the reviewed product. Not unique within a result list.
func (r *Result) ProductID() int64 { return r.productID }

// Similarity returns the relevance score in [0,1], higher is closer.
func (r *Result) Similarity() float64 { return r.similarity }
