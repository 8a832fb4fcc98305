// Package errs contains sentinel errors and classifiers used across layers
// for stable error mapping.
package errs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured indicates a missing/invalid gateway base URL or anon key.
	ErrNotConfigured = errors.New("gateway not configured")

	// ErrNotSignedIn indicates no usable session at call time.
	ErrNotSignedIn = errors.New("not signed in")
)

// APIError is a non-2xx application response from the gateway.
type APIError struct {
	Status  int
	Message string
	Preview string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Preview != "" {
		return e.Preview
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// ShapeError is a 2xx response whose body could not be decoded as the JSON
// the caller expected. It is never downgraded to soft absence.
type ShapeError struct {
	Path string
	Err  error
}

func (e *ShapeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unexpected response shape from %s", e.Path)
	}
	return fmt.Sprintf("expected JSON from %s: %v", e.Path, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }

// IsShape reports whether err is an unexpected-response-shape failure.
func IsShape(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

// IsAborted reports whether err was caused by cancellation or timeout rather
// than a server rejection, so callers can discard superseded requests without
// surfacing a failure.
func IsAborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// softAbsenceMarkers are the textual fragments the backend emits for
// endpoints that are not deployed yet. Matching is case-insensitive over the
// whole error text.
var softAbsenceMarkers = []string{
	"unknown action",
	"not implemented",
	"not found",
}

// IsSoftAbsence reports whether err means "endpoint not available", which
// optional operations treat as absent data instead of a failure.
func IsSoftAbsence(err error) bool {
	if err == nil {
		return false
	}
	var ae *APIError
	if errors.As(err, &ae) && ae.Status == 404 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range softAbsenceMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return strings.Contains(msg, "route") && strings.Contains(msg, "not")
}
