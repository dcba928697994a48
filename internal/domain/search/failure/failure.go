// Package failure tags search service errors by cause while keeping a single
// user-facing message for all of them.
package failure

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/reviewsearch/internal/domain"
)

// Kind classifies why a search call failed.
type Kind string

// Failure kinds.
const (
	KindNetwork    Kind = "network"
	KindHTTPStatus Kind = "http_status"
	KindParse      Kind = "parse"
)

// MessageKey is the catalog key every failure kind is shown with.
const MessageKey = "search.failed"

// Error is a tagged search failure. StatusCode is set only for KindHTTPStatus.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("search api returned status %d", e.StatusCode)
	case KindParse:
		return "search api response: " + errString(e.Err)
	default:
		return "search api request: " + errString(e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every failure match domain.ErrSearchFailed.
func (e *Error) Is(target error) bool { return target == domain.ErrSearchFailed }

// MessageKey returns the catalog key for the user-facing message.
func (e *Error) MessageKey() string { return MessageKey }

// Network wraps a transport error.
func Network(err error) *Error { return &Error{Kind: KindNetwork, Err: err} }

// HTTPStatus reports a non-2xx response.
func HTTPStatus(code int) *Error { return &Error{Kind: KindHTTPStatus, StatusCode: code} }

// Parse wraps a response decoding error.
func Parse(err error) *Error { return &Error{Kind: KindParse, Err: err} }

// From converts any error into a tagged failure. Untagged errors are treated
// as network failures.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return Network(err)
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
