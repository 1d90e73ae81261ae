package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talkboard/board-service/internal/domain"
	"github.com/talkboard/board-service/internal/dto"
)

// respondError translates a domain error kind into the transport status.
// This is the only place HTTP codes meet business errors; services stay
// transport-free.
func respondError(c *gin.Context, err error) {
	status, label := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Do not leak internals to clients
		message = "unexpected error"
	}

	c.JSON(status, dto.ErrorResponse{
		Error:   label,
		Message: message,
	})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest, "Bad request"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Conflict"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}
