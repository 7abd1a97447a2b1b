package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/smartexam/backend/internal/app/models/dto"
	"github.com/smartexam/backend/internal/pkg/apperrors"
	"github.com/smartexam/backend/internal/pkg/logger"
)

// includeStack controls whether HandleAPIError attaches debug stacks to
// error responses. Disabled in production.
var includeStack = true

// SetIncludeStack toggles stack traces in error responses
func SetIncludeStack(enabled bool) {
	includeStack = enabled
}

// statusForError maps a known application error to an HTTP status code.
// Unknown errors map to 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrRoleMismatch),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrExamNotFound),
		errors.Is(err, apperrors.ErrSubmissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrSessionActive):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError writes the uniform error envelope for an application error
func HandleAPIError(c *gin.Context, err error) {
	status := statusForError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		// Generation failures keep their message so clients can tell a
		// provider problem apart from an unexpected crash.
		if !errors.Is(err, apperrors.ErrGenerationFailed) {
			message = "Internal server error"
		}
	}

	resp := dto.NewErrorResponse(message)
	if includeStack {
		resp = resp.WithStack(err.Error() + "\n" + string(debug.Stack()))
	}

	c.JSON(status, resp)
}

// HandleValidationError writes a 400 envelope for request binding failures.
// Bodies that blow past the size limit while being read (no Content-Length
// declared) surface here as a MaxBytesError and get a 413 instead.
func HandleValidationError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse("Request body too large"))
		return
	}

	resp := dto.NewErrorResponse("Validation failed", err.Error())
	if includeStack {
		resp = resp.WithStack(err.Error())
	}
	c.JSON(http.StatusBadRequest, resp)
}
