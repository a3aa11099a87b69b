// Package apierrors contains the error types exchanged between services and
// HTTP handlers.
package apierrors

import "fmt"

// APIError represents a business error with an associated HTTP status code.
type APIError struct {
	Detail string `json:"detail"`
	Status int    `json:"-"`
}

// APIErrorOption determines the Functional Options used to create a new APIError.
type APIErrorOption func(apiError *APIError)

// NewAPIError creates a new APIError using the given options.
func NewAPIError(opts ...APIErrorOption) *APIError {
	apiError := &APIError{}
	for _, opt := range opts {
		opt(apiError)
	}
	return apiError
}

// WithDetail determines the error detail message.
func WithDetail(detail string) APIErrorOption {
	return func(apiError *APIError) {
		apiError.Detail = detail
	}
}

// WithHTTPStatusCode determines the HTTP status code associated to the error.
func WithHTTPStatusCode(status int) APIErrorOption {
	return func(apiError *APIError) {
		apiError.Status = status
	}
}

// HTTPStatusCode gets the HTTP status code associated to the error.
func (a APIError) HTTPStatusCode() int {
	return a.Status
}

func (a APIError) Error() string {
	return a.Detail
}

// ValidationError represents a field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field string, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}
