package acapi

import (
	"fmt"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeConnectivity indicates the server could not be reached or answered
	// with a non-200 HTTP status, or an authenticated call was made while no
	// session token is held
	ErrTypeConnectivity ErrorType = iota
	// ErrTypeAuth indicates the login endpoint rejected the credentials
	ErrTypeAuth
	// ErrTypeRequest indicates a non-login endpoint answered with an
	// application-level failure code
	ErrTypeRequest
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeConnectivity:
		return "Connectivity Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeRequest:
		return "Request Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError represents an error that occurred while talking to the AC Infinity API
type APIError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Code       int       // Application-level response code (if applicable)
	Endpoint   string    // API endpoint path (for context)
	Raw        string    // Raw response body (for diagnostics)
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the error is retryable
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewConnectivityError creates a connectivity error (network failure or
// non-200 HTTP status)
func NewConnectivityError(message string, err error) *APIError {
	return &APIError{
		Type:      ErrTypeConnectivity,
		Message:   message,
		Err:       err,
		Retryable: true,
	}
}

// NewHTTPError creates a connectivity error carrying the offending HTTP status
func NewHTTPError(endpoint string, statusCode int) *APIError {
	return &APIError{
		Type:       ErrTypeConnectivity,
		Message:    fmt.Sprintf("unexpected HTTP status %d from %s", statusCode, endpoint),
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Retryable:  true,
	}
}

// NewNotLoggedInError creates the pre-flight guard error raised when an
// authenticated call is attempted without a session token. No network round
// trip has happened when this is returned.
func NewNotLoggedInError(endpoint string) *APIError {
	return &APIError{
		Type:      ErrTypeConnectivity,
		Message:   "not logged in",
		Endpoint:  endpoint,
		Retryable: true,
	}
}

// NewAuthError creates an authentication error from the login endpoint
func NewAuthError(code int, raw string) *APIError {
	return &APIError{
		Type:      ErrTypeAuth,
		Message:   fmt.Sprintf("login rejected with code %d", code),
		Code:      code,
		Endpoint:  apiURLLogin,
		Raw:       raw,
		Retryable: false,
	}
}

// NewRequestError creates a request error for an application-level failure
// code from a non-login endpoint
func NewRequestError(endpoint string, code int, raw string) *APIError {
	return &APIError{
		Type:      ErrTypeRequest,
		Message:   fmt.Sprintf("request to %s failed with code %d", endpoint, code),
		Code:      code,
		Endpoint:  endpoint,
		Raw:       raw,
		Retryable: true,
	}
}

// NewParseError creates a connectivity error for an unparseable response body.
// The server answered, but not with the JSON envelope the API promises.
func NewParseError(endpoint string, err error) *APIError {
	return &APIError{
		Type:      ErrTypeConnectivity,
		Message:   fmt.Sprintf("failed to parse response from %s", endpoint),
		Endpoint:  endpoint,
		Err:       err,
		Retryable: true,
	}
}

// IsConnectivityError checks if an error is a connectivity error
func IsConnectivityError(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Type == ErrTypeConnectivity
	}
	return false
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Type == ErrTypeAuth
	}
	return false
}

// IsRequestError checks if an error is a request error
func IsRequestError(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Type == ErrTypeRequest
	}
	return false
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}
