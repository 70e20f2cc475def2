package helpers

import "fmt"

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type RelayError struct {
	Message string
	Cause   error
}

func (e *RelayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RelayError) Unwrap() error {
	return e.Cause
}

// FetchError is the single opaque failure the dispatcher sees from the rate
// source. Connection-level and HTTP-status failures both collapse into it.
type FetchError struct{ RelayError }

func NewFetchError(message string, cause error) *FetchError {
	return &FetchError{RelayError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------

// StatusError reports a non-2xx response from the upstream provider.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("error status: %d for %s", e.Code, e.URL)
}
