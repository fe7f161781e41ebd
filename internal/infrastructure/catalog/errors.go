package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks transport failures (DNS, refused, reset, timeout).
	ErrNetwork = errors.New("network error")
	// ErrCircuitOpen is returned while the upstream breaker refuses calls.
	ErrCircuitOpen = errors.New("product service unavailable")
)

// HTTPStatusError is a non-2xx response from the upstream API.
type HTTPStatusError struct {
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP error: %s", e.Status)
}

// MalformedDataError is a response body that is not the expected JSON. Not retried.
type MalformedDataError struct {
	Err error
}

func (e *MalformedDataError) Error() string {
	return "malformed product data: " + e.Err.Error()
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

// FetchError is the terminal failure after the last attempt.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Attempts == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("fetch failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
