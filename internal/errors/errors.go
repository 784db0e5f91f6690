package errors

import (
	"net/http"
	"os"
	"strings"

	"codeberg.org/codescribe/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.BadRequest(), errors.InternalError(), etc. for every caller-visible error.
//     These functions write the response (and log, for 5xx) in one step.
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error.
//
// For WebSocket handlers:
//   - Send an error message on the connection; log only transport failures.
//
// For services and internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err).
//   - Let the caller decide how to log and respond.

// standardized error envelope, shared with the success shape {"ok": true, ...}
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`             // user-facing message
	Code    string `json:"code,omitempty"`    // machine-readable code
	Details string `json:"details,omitempty"` // sanitized in production
}

// standard error codes
const (
	CodeBadRequest      = "bad_request"
	CodeValidationError = "validation_error"
	CodeUnknownAction   = "unknown_action"
	CodeTooManyRequests = "too_many_requests"
	CodeServerError     = "server_error"
)

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error: message,
		Code:  CodeBadRequest,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

// returns a 400 for input the dispatcher rejected
func ValidationError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: message,
		Code:  CodeValidationError,
	})
}

// returns a 400 for an unrecognized action
func UnknownAction(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: message,
		Code:  CodeUnknownAction,
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		Error: message,
		Code:  CodeTooManyRequests,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   message,
		Code:    CodeServerError,
		Details: sanitizeError(err),
	})
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()

	if os.Getenv("ENVIRONMENT") != "production" {
		return errMsg
	}

	lower := strings.ToLower(errMsg)

	if strings.Contains(lower, "connection") || strings.Contains(lower, "network") {
		return "connection error occurred"
	}

	if strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline") {
		return "request timed out"
	}

	if strings.Contains(lower, "json") || strings.Contains(lower, "unexpected eof") {
		return "malformed request body"
	}

	return "an error occurred"
}
