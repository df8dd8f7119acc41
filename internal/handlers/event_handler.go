package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devnandu/festserver/internal/middleware"
	"github.com/devnandu/festserver/internal/models"
	"github.com/devnandu/festserver/internal/services"
)

// CreateDepartmentEvent creates an event owned by the department in the
// admin token. The poster is an optional base64 data URI.
func CreateDepartmentEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		department := c.GetString(middleware.CtxDepartment)

		var input models.EventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		event, err := es.CreateDepartmentEvent(c.Request.Context(), &input, department)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(event, "event created"))
	}
}

// UpdateDepartmentEvent applies a partial update to an owned event.
func UpdateDepartmentEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		department := c.GetString(middleware.CtxDepartment)

		var upd models.EventUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		event, err := es.UpdateDepartmentEvent(c.Request.Context(), department, &upd)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "event updated"))
	}
}

type deleteEventRequest struct {
	EventID string `json:"eventId" binding:"required"`
}

// DeleteDepartmentEvent removes an owned event together with its
// registrations.
func DeleteDepartmentEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		department := c.GetString(middleware.CtxDepartment)

		var req deleteEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		removed, err := es.DeleteDepartmentEvent(c.Request.Context(), department, req.EventID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"deletedRegistrations": removed,
		}, "event deleted"))
	}
}

// GetDepartmentEvent returns a single event owned by the caller's
// department.
func GetDepartmentEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		department := c.GetString(middleware.CtxDepartment)

		event, err := es.GetDepartmentEvent(c.Request.Context(), department, c.Param("eventId"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

// ListDepartmentEvents lists the events of the department named in the
// path. The path segment must match the token's department claim.
func ListDepartmentEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		department := c.GetString(middleware.CtxDepartment)
		if c.Param("dept") != department {
			respondError(c, models.ErrForbidden)
			return
		}

		events, err := es.ListDepartmentEvents(c.Request.Context(), department)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(events, len(events)))
	}
}

// ListDepartmentRegistrations returns every registration across the
// department's events.
func ListDepartmentRegistrations(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		department := c.GetString(middleware.CtxDepartment)

		regs, err := rs.ListForDepartment(c.Request.Context(), department)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(regs, len(regs)))
	}
}

type verifyCodeRequest struct {
	UniqueCode string `json:"uniqueCode" binding:"required"`
}

// VerifyParticipation resolves a unique entry code and marks the bearer
// as having participated.
func VerifyParticipation(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		result, err := rs.VerifyParticipation(c.Request.Context(), req.UniqueCode)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, "participation recorded"))
	}
}
