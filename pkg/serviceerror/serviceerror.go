// Package serviceerror defines the error taxonomy for outbound collaborator
// calls (document analyzer, SQL database, cache, broker).
//
// Infrastructure layers classify their native failures into one of these
// categories at the boundary and services propagate them untouched. The
// engine never retries; the caller owns retry policy and rendering.
package serviceerror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// Category labels the failure mode of a collaborator call.
type Category string

const (
	// CategoryConfiguration marks missing or invalid collaborator
	// configuration. Reported directly to the caller, never retried and
	// never treated as fraud.
	CategoryConfiguration Category = "configuration"
	// CategoryTimeout marks a call that exceeded its deadline.
	CategoryTimeout Category = "timeout"
	// CategoryConnection marks a failure to reach the collaborator at all.
	CategoryConnection Category = "connection"
	// CategoryCall marks any other failed call (bad response, driver error).
	CategoryCall Category = "call"
)

// Error is a categorized failure from a named collaborator.
type Error struct {
	Service  string
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Service, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Service, e.Err)
	}
	return e.Service
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a categorized error with an explicit message.
func New(service string, category Category, message string) *Error {
	return &Error{Service: service, Category: category, Message: message}
}

// Configuration reports missing required collaborator configuration.
func Configuration(service, message string) *Error {
	return New(service, CategoryConfiguration, message)
}

// Timeout reports a call that gave up after the given duration.
func Timeout(service string, after time.Duration) *Error {
	return &Error{
		Service:  service,
		Category: CategoryTimeout,
		Message:  fmt.Sprintf("service call timed out after %s", after),
	}
}

// Connection reports a failure to reach the collaborator.
func Connection(service string, err error) *Error {
	return &Error{
		Service:  service,
		Category: CategoryConnection,
		Message:  fmt.Sprintf("failed to connect to service: %v", err),
		Err:      err,
	}
}

// Call reports any other failed collaborator call.
func Call(service string, err error) *Error {
	return &Error{Service: service, Category: CategoryCall, Err: err}
}

// Classify converts a native failure into a categorized error. Already
// categorized errors pass through unchanged so boundaries can be layered.
func Classify(service string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Service: service, Category: CategoryTimeout, Message: "service call timed out", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Service: service, Category: CategoryTimeout, Message: "service call timed out", Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Connection(service, err)
	}
	// Driver errors rarely expose typed causes; fall back to message sniffing
	// the way the collaborators report them.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return &Error{Service: service, Category: CategoryTimeout, Message: "service call timed out", Err: err}
	case strings.Contains(msg, "connection") || strings.Contains(msg, "connect") || strings.Contains(msg, "network"):
		return Connection(service, err)
	default:
		return Call(service, err)
	}
}

// CategoryOf extracts the category from an error chain.
// The second return is false when the error is not a serviceerror.
func CategoryOf(err error) (Category, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Category, true
	}
	return "", false
}

// Is reports whether err carries the given category.
func Is(err error, category Category) bool {
	got, ok := CategoryOf(err)
	return ok && got == category
}
