package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devnandu/festserver/internal/middleware"
	"github.com/devnandu/festserver/internal/models"
	"github.com/devnandu/festserver/internal/services"
)

// RegisterForEvent submits a participant registration for the signed-in
// user.
func RegisterForEvent(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.CtxUserID)

		var input models.RegistrationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		reg, err := rs.Register(c.Request.Context(), userID, &input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{
			"registration": reg,
			"uniqueCode":   reg.UniqueCode,
		}, "registration successful"))
	}
}

// ListMyRegistrations returns the caller's registrations, newest first.
func ListMyRegistrations(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.CtxUserID)

		regs, err := rs.ListByUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(regs, len(regs)))
	}
}

// ListPublicMainEvents is the unauthenticated fest landing-page listing.
func ListPublicMainEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.ListPublicCommonEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(events, len(events)))
	}
}

// GetEventForm serves the projection the public registration form needs.
func GetEventForm(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := es.GetEventForm(c.Request.Context(), c.Param("eventId"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(form, ""))
	}
}
