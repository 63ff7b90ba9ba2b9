package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"graspnest.app/api-server/internal/http/dto"
	"graspnest.app/api-server/internal/service"
	"graspnest.app/api-server/internal/store"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Expected failures carry their message to the caller; anything else,
// including a detected cross-system divergence, is logged in full and
// answered generically.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, dto.Fail(err.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.Fail(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.Fail(err.Error()))
	case errors.Is(err, service.ErrProvisioningFailed):
		c.JSON(http.StatusBadGateway, dto.Fail(err.Error()))
	default:
		slog.ErrorContext(c.Request.Context(), "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail("operation failed"))
	}
}

func respondBadRequest(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "invalid request body", "error", err)
	c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
}
