package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/jeroginaca/threads/internal/errors"
	"github.com/jeroginaca/threads/internal/logger"
)

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// RespondWithAPIError sends a structured error response and logs it at a
// severity matching the status class.
func RespondWithAPIError(c *gin.Context, apiErr *apierrors.APIError) {
	status := apiErr.Status
	if status == 0 {
		status = apiErr.Code.StatusCode()
	}

	fields := []zap.Field{
		zap.String("code", string(apiErr.Code)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", status),
	}
	if apiErr.Op != "" {
		fields = append(fields, zap.String("op", apiErr.Op))
	}
	if apiErr.Err != nil {
		fields = append(fields, zap.Error(apiErr.Err))
	}

	if status >= http.StatusInternalServerError {
		logger.Log.Error("request failed", fields...)
	} else {
		logger.Log.Warn("request rejected", fields...)
	}

	c.JSON(status, ErrorResponse{
		Error: apiErr.Message,
		Code:  string(apiErr.Code),
		Field: apiErr.Field,
	})
}

// RespondError maps any error to the envelope. Unknown errors become opaque
// internal errors so causes never leak to clients.
func RespondError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		RespondWithAPIError(c, apiErr)
		return
	}

	logger.Log.Error("unexpected error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	RespondWithAPIError(c, apierrors.InternalError("internal server error"))
}

// RespondNotFound sends a 404 for the named resource
func RespondNotFound(c *gin.Context, resource string) {
	RespondWithAPIError(c, apierrors.NotFound(resource))
}

// RespondBadRequest sends a 400 with a message
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithAPIError(c, apierrors.BadRequest(message))
}

// RespondUnauthorized sends a 401 with a message
func RespondUnauthorized(c *gin.Context, message string) {
	RespondWithAPIError(c, apierrors.Unauthorized(message))
}

// RespondValidationError sends a 422 for a specific field
func RespondValidationError(c *gin.Context, field, message string) {
	RespondWithAPIError(c, apierrors.ValidationError(field, message))
}
