package iracing

import (
	"errors"
	"fmt"
)

// ErrAuthenticationFailed matches every AuthenticationError via errors.Is.
var ErrAuthenticationFailed = errors.New("authentication failed")

// AuthenticationError represents a rejected or missing member login
type AuthenticationError struct {
	Message string
	Cause   error
}

func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Authentication error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("Authentication error: %s", e.Message)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Cause
}

// Is reports any AuthenticationError as ErrAuthenticationFailed.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// APIError represents an unexpected response from the stats site
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("iRacing API error: %s (endpoint: %s, status: %d)", e.Message, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("iRacing API error: %s (endpoint: %s)", e.Message, e.Endpoint)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string, cause error) *AuthenticationError {
	return &AuthenticationError{
		Message: message,
		Cause:   cause,
	}
}

// NewAPIError creates a new API error
func NewAPIError(endpoint string, statusCode int, message string, cause error) *APIError {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}
