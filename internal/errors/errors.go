package errors

import (
	"errors"
	"fmt"
)

// Common error types surfaced by the meetings client
var (
	// Authentication errors
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Lookup errors
	ErrNotFound = errors.New("not found")

	// Session errors
	ErrNoCredential = errors.New("no credential stored")
)

// NetworkError reports a transport-level failure: the request never produced
// a response (connection refused, DNS failure, timeout, cancelled context).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError reports a non-2xx response from the API. NotFound and
// authentication rejections are translated to their sentinels by the callers
// that know the endpoint semantics; everything else stays a ServerError.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned HTTP %d: %s", e.StatusCode, e.Body)
}

// ValidationError collects field-level problems detected before a request is
// sent or when a response is missing required fields.
type ValidationError struct {
	FieldErrors map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.FieldErrors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed on %d field(s)", len(e.FieldErrors))
}

// Add records a field-level validation problem.
func (e *ValidationError) Add(field, message string) {
	if e.FieldErrors == nil {
		e.FieldErrors = make(map[string]string)
	}
	e.FieldErrors[field] = message
}

// HasErrors reports whether any field problem was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.FieldErrors) > 0
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
