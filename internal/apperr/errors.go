// Package apperr defines the error taxonomy shared by the store, session and
// gateway layers. Callers branch on these with errors.Is / errors.As; the
// layers themselves never retry.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups that found no matching record.
var ErrNotFound = errors.New("record not found")

// ValidationError reports malformed input to a store operation. For bulk
// operations it is only returned when no record in the batch validated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

// StorageError wraps a failure of the underlying persistence engine.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// GatewayError wraps a failed generation or grading call: bad credentials,
// transport failure, or a response that does not parse as the expected shape.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// HydrationError reports that persisted session state could not be read at
// startup. It is logged and swallowed by the session store, never surfaced as
// a blocking failure.
type HydrationError struct {
	Err error
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("session hydration: %v", e.Err)
}

func (e *HydrationError) Unwrap() error { return e.Err }

// Storage is a convenience constructor used by the repositories.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Gateway is a convenience constructor used by the Gemini gateway.
func Gateway(op string, err error) error {
	if err == nil {
		return nil
	}
	return &GatewayError{Op: op, Err: err}
}
