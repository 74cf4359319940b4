package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the tagged failure every component returns. Callers branch on
// Code; the original cause stays reachable through Unwrap for logging.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Op      string    `json:"-"`
	Status  int       `json:"-"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: %s (field: %s)", e.Code, e.Message, e.Field)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap exposes the underlying cause to errors.Is/As
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two APIErrors by code
func (e *APIError) Is(target error) bool {
	var apiErr *APIError
	if errors.As(target, &apiErr) {
		return e.Code == apiErr.Code
	}
	return false
}

// NotFound creates a NOT_FOUND error
func NotFound(resource string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
	}
}

// Unauthorized creates an UNAUTHORIZED error
func Unauthorized(message string) *APIError {
	return &APIError{
		Code:    ErrUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// ValidationError creates a VALIDATION_ERROR
func ValidationError(field, message string) *APIError {
	return &APIError{
		Code:    ErrValidation,
		Message: message,
		Field:   field,
		Status:  http.StatusUnprocessableEntity,
	}
}

// BadRequest creates a BAD_REQUEST error
func BadRequest(message string) *APIError {
	return &APIError{
		Code:    ErrBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// InternalError creates an INTERNAL_ERROR
func InternalError(message string) *APIError {
	return &APIError{
		Code:    ErrInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// StoreFailure wraps a backing-store error with the logical operation that
// was attempted. Retry policy is the caller's concern.
func StoreFailure(op string, err error) *APIError {
	return &APIError{
		Code:    ErrStoreFailure,
		Message: fmt.Sprintf("%s failed", op),
		Op:      op,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Timeout wraps a store deadline-exceeded error, kept distinct from other
// store failures so callers can branch on transience.
func Timeout(op string, err error) *APIError {
	return &APIError{
		Code:    ErrTimeout,
		Message: fmt.Sprintf("%s timed out", op),
		Op:      op,
		Status:  http.StatusGatewayTimeout,
		Err:     err,
	}
}
