package predict

import (
	"fmt"
	"strings"
)

// MissingCredentialError is returned before any network call when the API
// key for remote prediction is not configured.
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing credential: set %s to use remote prediction", e.Name)
}

// AuthError is returned when the identity provider rejects the API key or
// cannot be reached. StatusCode is zero for transport failures.
type AuthError struct {
	Err        error
	Body       string
	StatusCode int
}

func (e *AuthError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, strings.TrimSpace(e.Body))
	case e.Err != nil:
		return fmt.Sprintf("authentication failed: %v", e.Err)
	default:
		return "authentication failed"
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// RemoteInvocationError covers every scoring failure after a token was
// obtained. Body holds the raw response when one was received.
type RemoteInvocationError struct {
	Err        error
	Body       string
	StatusCode int
}

func (e *RemoteInvocationError) Error() string {
	msg := "remote prediction failed"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		msg = fmt.Sprintf("%s: %s", msg, body)
	}
	return msg
}

func (e *RemoteInvocationError) Unwrap() error {
	return e.Err
}
