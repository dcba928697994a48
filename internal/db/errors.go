package db

import "errors"

// Sentinel errors for connector construction.
var (
	ErrAddressRequired = errors.New("db: address is required")
	ErrUnknownDriver   = errors.New("db: unknown driver")
	ErrAuth            = errors.New("db: authentication failed")
)

// Op names used for error context.
const (
	OpConnect     = "CONNECT"
	OpPing        = "PING"
	OpHealthCheck = "HealthCheck"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
