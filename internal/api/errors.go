package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/cookatlas/backend/internal/middleware"
	"github.com/cookatlas/backend/internal/search"
	"github.com/cookatlas/backend/internal/service"
)

func errorJSON(c *gin.Context, status int, message string, err error) {
	body := middleware.ErrorResponse{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(status, body)
}

// respondError maps service errors onto HTTP statuses. notFound is the
// message for ErrNotFound, fallback the one for unexpected errors.
func respondError(c *gin.Context, logger *zap.Logger, err error, notFound, fallback string) {
	var invalid *search.InvalidParamError
	switch {
	case errors.Is(err, service.ErrNotFound):
		errorJSON(c, http.StatusNotFound, notFound, nil)
	case errors.Is(err, service.ErrEmailInUse):
		errorJSON(c, http.StatusBadRequest, "Email already in use", nil)
	case errors.Is(err, service.ErrUsernameInUse):
		errorJSON(c, http.StatusBadRequest, "Username already in use", nil)
	case errors.Is(err, service.ErrAlreadyBookmarked):
		errorJSON(c, http.StatusBadRequest, "Recipe already bookmarked", nil)
	case errors.Is(err, service.ErrAlreadyExists):
		errorJSON(c, http.StatusBadRequest, "Already exists", nil)
	case errors.Is(err, service.ErrWeakPassword):
		errorJSON(c, http.StatusBadRequest, "Password must be at least 8 characters and contain both letters and numbers", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		errorJSON(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, service.ErrInvalidResetToken):
		errorJSON(c, http.StatusBadRequest, "Invalid or expired reset token", nil)
	case errors.Is(err, service.ErrResetTokenExpired):
		errorJSON(c, http.StatusBadRequest, "Reset token has expired", nil)
	case errors.Is(err, service.ErrInvalidField), errors.Is(err, service.ErrInvalidImage):
		errorJSON(c, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, service.ErrStorageUnavailable):
		errorJSON(c, http.StatusServiceUnavailable, "Image storage is not available", nil)
	case errors.As(err, &invalid):
		errorJSON(c, http.StatusBadRequest, "Invalid search parameter", err)
	case errors.Is(err, search.ErrSearchFailed):
		logger.Error(fallback, zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, "Search failed", err)
	default:
		logger.Error(fallback, zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, fallback, err)
	}
}

// bindJSON reads the request body through gin's body cache, which Identify
// may already have filled.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindBodyWith(obj, binding.JSON); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}
