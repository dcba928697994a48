package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank search query. Submitting one is a silent no-op.
	ErrEmptyQuery = errors.New("empty query")
	// ErrSearchFailed signals that the search service call did not produce results.
	ErrSearchFailed = errors.New("search failed")
	// ErrSuperseded signals that a newer submit replaced this one before it settled.
	ErrSuperseded = errors.New("search superseded")
	// ErrViewClosed signals a submit against a torn-down search view.
	ErrViewClosed = errors.New("search view closed")
	// ErrRateLimited signals too many submits in a short period.
	ErrRateLimited = errors.New("rate limited")
)
