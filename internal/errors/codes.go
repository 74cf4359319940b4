package errors

import "net/http"

// ErrorCode represents the kind of failure
type ErrorCode string

const (
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrBadRequest   ErrorCode = "BAD_REQUEST"
	ErrStoreFailure ErrorCode = "STORE_ERROR"
	ErrTimeout      ErrorCode = "TIMEOUT"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
)

// StatusCodeMap maps ErrorCode to HTTP status code
var StatusCodeMap = map[ErrorCode]int{
	ErrNotFound:     http.StatusNotFound,
	ErrUnauthorized: http.StatusUnauthorized,
	ErrValidation:   http.StatusUnprocessableEntity,
	ErrBadRequest:   http.StatusBadRequest,
	ErrStoreFailure: http.StatusInternalServerError,
	ErrTimeout:      http.StatusGatewayTimeout,
	ErrInternal:     http.StatusInternalServerError,
}

// StatusCode returns the HTTP status code for this error code
func (e ErrorCode) StatusCode() int {
	if code, ok := StatusCodeMap[e]; ok {
		return code
	}
	return http.StatusInternalServerError
}
