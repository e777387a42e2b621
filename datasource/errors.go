package datasource

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationNotFound is returned when the provider answers with a non-OK status
	ErrLocationNotFound = errors.New("location not found")

	// ErrMalformedPayload is returned when an OK response lacks the expected fields
	ErrMalformedPayload = errors.New("malformed payload")
)

// StatusError describes a non-OK response from a provider
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrLocationNotFound
}

// IsUnavailable reports whether err means the provider responded but had no
// usable data, as opposed to the request itself failing.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrLocationNotFound) || errors.Is(err, ErrMalformedPayload)
}
