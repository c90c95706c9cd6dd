package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownModel means the requested model id is absent from the
	// configuration table.
	ErrUnknownModel = errors.New("unknown model id")

	// ErrEmptyTranscript means the transcript was empty or whitespace-only
	// and was dropped without a provider call.
	ErrEmptyTranscript = errors.New("empty transcript")

	// ErrInvalidPreferences means a load-context payload was not an object.
	ErrInvalidPreferences = errors.New("context payload must be an object")
)

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	// KindRateLimited: upstream returned a rate-limit signal.
	KindRateLimited ErrorKind = "rate_limited"
	// KindConnectionRefused: upstream unreachable.
	KindConnectionRefused ErrorKind = "connection_refused"
	// KindMalformedResponse: upstream payload missing expected fields, or
	// any other upstream failure treated as a generic internal error.
	KindMalformedResponse ErrorKind = "malformed_response"
)

// ProviderError wraps a failure from a completion provider with a uniform
// classification. Raw upstream error text is kept for server-side logs only.
type ProviderError struct {
	Kind     ErrorKind
	Provider ProviderID
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
