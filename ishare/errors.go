package ishare

import (
	"errors"
	"fmt"
)

// ErrNotFound marks an empty result set at either stage of a lookup.
// resolve and the cmd layer wrap it with context.
var ErrNotFound = errors.New("ishare: not found")

// ConnectionError is a transport-level failure: DNS, refused connection,
// or a non-2xx HTTP status.
type ConnectionError struct {
	StatusCode int
	Err        error
}

func (e *ConnectionError) Error() string {
	if e == nil {
		return "ishare: connection error"
	}
	if e.Err != nil {
		return "ishare: " + e.Err.Error()
	}
	return fmt.Sprintf("ishare: http status %d", e.StatusCode)
}

func (e *ConnectionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ParseError means the response body was not valid JSON. The declared
// content-type never triggers it; only the body does.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e == nil || e.Err == nil {
		return "ishare: invalid JSON body"
	}
	return "ishare: invalid JSON body: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
