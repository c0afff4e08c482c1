package services

import (
	"errors"
	"fmt"
	"net"
	"os"
)

// ErrorKind classifies how an external provider call failed, so callers
// can pick a fallback per failure mode instead of one generic catch.
type ErrorKind string

const (
	ErrKindTimeout   ErrorKind = "timeout"
	ErrKindStatus    ErrorKind = "status"
	ErrKindDecode    ErrorKind = "decode"
	ErrKindTransport ErrorKind = "transport"
)

// ProviderError is the typed failure returned by every external client
// (weather, places, routing, ai, mail).
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Status   int // HTTP status for ErrKindStatus, zero otherwise
	Err      error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case ErrKindStatus:
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.Status)
	case ErrKindTimeout:
		return fmt.Sprintf("%s: request timed out: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// statusError reports a non-2xx response.
func statusError(provider string, status int) *ProviderError {
	return &ProviderError{Provider: provider, Kind: ErrKindStatus, Status: status}
}

// decodeError reports a malformed provider response body.
func decodeError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: ErrKindDecode, Err: err}
}

// transportError classifies a transport-level failure, separating
// timeouts from other network errors.
func transportError(provider string, err error) *ProviderError {
	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || os.IsTimeout(err) {
		return &ProviderError{Provider: provider, Kind: ErrKindTimeout, Err: err}
	}
	return &ProviderError{Provider: provider, Kind: ErrKindTransport, Err: err}
}
