// Package apierr renders the error taxonomy as HTTP responses.
package apierr

import (
	"errors"
	"net/http"

	"course-gate/internal/domain/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Status maps an error to its HTTP status. Unknown errors are 500: a failure
// to check policy is never reported as a policy answer.
func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

var publicMessage = map[int]string{
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Access denied",
	http.StatusNotFound:            "Not found",
	http.StatusServiceUnavailable:  "Service temporarily unavailable",
	http.StatusInternalServerError: "Internal server error",
}

// Abort writes {"error": ...} and stops the handler chain. Client errors echo
// the validation message; everything else gets a fixed message, and server
// errors are logged.
func Abort(c *gin.Context, log *zap.Logger, err error) {
	status := Status(err)

	msg := err.Error()
	if status != http.StatusBadRequest {
		msg = publicMessage[status]
	}

	if status >= http.StatusInternalServerError {
		log.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
