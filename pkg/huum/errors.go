package huum

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned by NewClient when the username or
// password is empty. Credentials are required at construction time, not
// deferred to the first call.
var ErrMissingCredentials = errors.New("huum: username and password are required")

// ValidationError reports a caller-supplied argument that violates a
// precondition. Nothing is sent over the wire.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("huum: validation failed: %s", e.Message)
}

// SafetyError reports a guarded precondition about physical device state
// that was not met. The command was not issued.
type SafetyError struct {
	Reason string
}

func (e *SafetyError) Error() string {
	return fmt.Sprintf("huum: safety check failed: %s", e.Reason)
}

// AuthError reports that the remote service rejected the stored credentials.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("huum: authentication rejected (HTTP %d)", e.StatusCode)
}

// TransportError reports a connectivity failure or a non-2xx response.
// StatusCode is zero when no HTTP response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("huum: request failed (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("huum: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a response body that did not match the expected
// schema. This indicates a remote API change or corruption and is not
// retryable without investigation.
type ProtocolError struct {
	Message string
	Err     error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("huum: unexpected response: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("huum: unexpected response: %s", e.Message)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
