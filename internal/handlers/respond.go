package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devnandu/festserver/internal/models"
)

// respondError maps service errors onto the HTTP status taxonomy. Unknown
// errors stay opaque 500s so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidID):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(err))
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse(err))
	case errors.Is(err, models.ErrEventNotFound), errors.Is(err, models.ErrRegistrationNotFound),
		errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err))
	case errors.Is(err, models.ErrAlreadyRegistered), errors.Is(err, models.ErrAlreadyParticipated):
		c.JSON(http.StatusConflict, models.ErrorResponse(err))
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(errors.New("internal server error")))
	}
}
