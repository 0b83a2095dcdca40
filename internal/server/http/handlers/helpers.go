package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cleanorder/internal/adapter/api"
	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/server/http/dto"
)

// writeError maps domain and transport errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	var serverErr api.ServerError
	var netErr api.NetworkError

	switch {
	case errors.Is(err, domainErrors.ErrValidation),
		errors.Is(err, domainErrors.ErrInvalidPreference),
		errors.Is(err, domainErrors.ErrUnknownService):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidCredentials),
		errors.Is(err, domainErrors.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrDraftClosed):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &serverErr):
		status := http.StatusBadGateway
		switch serverErr.Status {
		case http.StatusUnauthorized, http.StatusNotFound:
			status = serverErr.Status
		}
		c.JSON(status, dto.ErrorResponse{Message: serverErr.Message})
	case errors.As(err, &netErr):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: netErr.Err.Error()})
	case errors.Is(err, domainErrors.ErrEmptyResponse):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error"})
	}
}
