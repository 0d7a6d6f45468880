package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNoToken          = errors.New("no stored token")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrFetchInFlight    = errors.New("fetch already in flight")
	ErrNoSnapshot       = errors.New("no snapshot loaded")
)

// AuthError covers rejected credentials and invalid or expired tokens.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// ValidationError carries the server's rejection detail verbatim so forms
// can show it next to the offending input.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return "invalid input"
	}
	return e.Detail
}

// NetworkError wraps transport-level failures (unreachable host, timeout,
// unexpected status). Op identifies the request, e.g. "GET /dashboard".
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RecommendationError isolates regeneration failures to the recommendation
// widget; it never blocks the rest of the dashboard.
type RecommendationError struct {
	Err error
}

func (e *RecommendationError) Error() string {
	return "recommendation: " + e.Err.Error()
}

func (e *RecommendationError) Unwrap() error { return e.Err }

// IsAuth reports whether err has an AuthError anywhere in its chain.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsValidation reports whether err has a ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
