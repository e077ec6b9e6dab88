package core

import (
	"errors"
	"fmt"
)

// FetchError represents a failed lookup against an external data provider.
// StatusCode is zero when the request never produced a response.
type FetchError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch from %s failed with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch from %s failed: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError checks if an error is an enrichment provider failure
func IsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}

// ErrUnexpectedPayload is wrapped by FetchError when a provider answers with a body we cannot read
var ErrUnexpectedPayload = errors.New("unexpected payload shape")

// HandlerPanicError wraps a value recovered from a panicking command handler
type HandlerPanicError struct {
	Command string
	Value   any
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("command %s panicked: %v", e.Command, e.Value)
}
