package unsplash

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes client errors
type ErrorType string

const (
	// ErrTypeNetwork indicates transport failures and timeouts
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeAuthentication indicates a missing or rejected access key
	ErrTypeAuthentication ErrorType = "authentication"

	// ErrTypeRateLimit indicates the hourly request quota is used up
	ErrTypeRateLimit ErrorType = "rate_limit"

	// ErrTypeNotFound indicates a missing resource
	ErrTypeNotFound ErrorType = "not_found"

	// ErrTypeDecode indicates a response body that could not be parsed
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeValidation indicates bad input, either ours or reported by the API
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeConfiguration indicates an unusable client configuration
	ErrTypeConfiguration ErrorType = "configuration"

	// ErrTypeAPI indicates any other non-success response
	ErrTypeAPI ErrorType = "api"
)

// APIError is returned by every Client method
type APIError struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message provides human-readable error description
	Message string `json:"message"`

	// StatusCode for HTTP-related errors
	StatusCode int `json:"status_code,omitempty"`

	// Field names the offending config field for configuration errors
	Field string `json:"field,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	parts := []string{"unsplash", fmt.Sprintf("type=%s", e.Type)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is matches any *APIError of the same type
func (e *APIError) Is(target error) bool {
	if ae, ok := target.(*APIError); ok {
		return e.Type == ae.Type
	}
	return false
}

// NewError creates a new API error
func NewError(errType ErrorType, message string) *APIError {
	return &APIError{Type: errType, Message: message}
}

// NewErrorWithCause creates an API error with an underlying cause
func NewErrorWithCause(errType ErrorType, message string, cause error) *APIError {
	return &APIError{Type: errType, Message: message, Cause: cause}
}

// NewStatusError creates an API error for a non-success HTTP response
func NewStatusError(errType ErrorType, status int, message string) *APIError {
	return &APIError{Type: errType, Message: message, StatusCode: status}
}

// NewConfigurationError creates a configuration error for field
func NewConfigurationError(field, message string) *APIError {
	return &APIError{Type: ErrTypeConfiguration, Field: field, Message: message}
}

// NewValidationError creates an input validation error
func NewValidationError(message string) *APIError {
	return &APIError{Type: ErrTypeValidation, Message: message}
}

func hasType(err error, t ErrorType) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Type == t
	}
	return false
}

// IsRateLimitError checks if an error is a rate limit error
func IsRateLimitError(err error) bool {
	return hasType(err, ErrTypeRateLimit)
}

// IsAuthenticationError checks if an error is an authentication error
func IsAuthenticationError(err error) bool {
	return hasType(err, ErrTypeAuthentication)
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	return hasType(err, ErrTypeConfiguration)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrTypeNotFound)
}
