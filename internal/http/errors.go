package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"item-store/internal/auth"
	"item-store/internal/repository"
	"item-store/internal/service"
)

// failValidation rejects a request listing every violated constraint.
func failValidation(c *gin.Context, violations []string) {
	c.JSON(http.StatusBadRequest, envelope{
		Success: false,
		Message: "validation failed: " + strings.Join(violations, "; "),
	})
}

// abortWithError maps err to a status code, logs it with request context and
// writes the failure envelope. Used by middleware and handlers alike.
func (h *Handler) abortWithError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)

	entry := h.logger.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		entry.Errorf("request failed: %v", err)
	} else {
		entry.Warnf("request rejected: %v", err)
	}

	message := err.Error()
	if status >= http.StatusInternalServerError && h.production {
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, service.ErrEmptyPatch),
		errors.Is(err, service.ErrNegativePrice):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, errNoToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
