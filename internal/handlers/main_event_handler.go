package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devnandu/festserver/internal/models"
	"github.com/devnandu/festserver/internal/services"
)

// parseRules accepts rules either as repeated form values or as a single
// JSON array, which is what browser FormData submissions produce.
func parseRules(values []string) []string {
	if len(values) == 1 {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err == nil {
			return decoded
		}
	}
	return values
}

func parseFormTime(c *gin.Context, field string) (time.Time, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", models.ErrValidation, field)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be RFC3339", models.ErrValidation, field)
	}
	return t, nil
}

func eventInputFromForm(c *gin.Context) (*models.EventInput, error) {
	input := &models.EventInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Type:        c.PostForm("type"),
		UpiID:       c.PostForm("upiId"),
		Rules:       parseRules(c.PostFormArray("rules")),
	}

	if raw := c.PostForm("teamSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: teamSize must be a number", models.ErrValidation)
		}
		input.TeamSize = size
	}
	if raw := c.PostForm("amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: amount must be a number", models.ErrValidation)
		}
		input.Amount = amount
	}

	var err error
	if input.StartTime, err = parseFormTime(c, "startTime"); err != nil {
		return nil, err
	}
	if input.EndTime, err = parseFormTime(c, "endTime"); err != nil {
		return nil, err
	}
	if input.RegistrationDeadline, err = parseFormTime(c, "registrationDeadline"); err != nil {
		return nil, err
	}
	return input, nil
}

// formImage opens the uploaded poster file when present.
func formImage(c *gin.Context) (multipart.File, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	return header.Open()
}

// CreateMainEvent creates a fest-wide event from a multipart form. The
// poster file is mandatory on this surface.
func CreateMainEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, err := eventInputFromForm(c)
		if err != nil {
			respondError(c, err)
			return
		}

		file, err := formImage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}
		if file == nil {
			respondError(c, fmt.Errorf("%w: image is required", models.ErrValidation))
			return
		}
		defer file.Close()

		event, err := es.CreateCommonEvent(c.Request.Context(), input, file)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(event, "event created"))
	}
}

func eventUpdateFromForm(c *gin.Context) (*models.EventUpdate, error) {
	upd := &models.EventUpdate{
		EventID: c.PostForm("eventId"),
		Rules:   parseRules(c.PostFormArray("rules")),
	}

	setString := func(field string, dst **string) {
		if raw, ok := c.GetPostForm(field); ok {
			*dst = &raw
		}
	}
	setString("title", &upd.Title)
	setString("description", &upd.Description)
	setString("type", &upd.Type)
	setString("upiId", &upd.UpiID)

	if raw, ok := c.GetPostForm("teamSize"); ok {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: teamSize must be a number", models.ErrValidation)
		}
		upd.TeamSize = &size
	}
	if raw, ok := c.GetPostForm("amount"); ok {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: amount must be a number", models.ErrValidation)
		}
		upd.Amount = &amount
	}

	setTime := func(field string, dst **time.Time) error {
		if _, ok := c.GetPostForm(field); !ok {
			return nil
		}
		t, err := parseFormTime(c, field)
		if err != nil {
			return err
		}
		*dst = &t
		return nil
	}
	if err := setTime("startTime", &upd.StartTime); err != nil {
		return nil, err
	}
	if err := setTime("endTime", &upd.EndTime); err != nil {
		return nil, err
	}
	if err := setTime("registrationDeadline", &upd.RegistrationDeadline); err != nil {
		return nil, err
	}

	if raw, ok := c.GetPostForm("isActive"); ok {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: isActive must be a boolean", models.ErrValidation)
		}
		upd.IsActive = &active
	}
	return upd, nil
}

// UpdateMainEvent applies a multipart partial update; a new poster file
// replaces the stored one.
func UpdateMainEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		upd, err := eventUpdateFromForm(c)
		if err != nil {
			respondError(c, err)
			return
		}

		file, err := formImage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}
		var image interface{}
		if file != nil {
			defer file.Close()
			image = file
		}

		event, err := es.UpdateCommonEvent(c.Request.Context(), upd, image)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "event updated"))
	}
}

// DeleteMainEvent removes a fest-wide event and its registrations.
func DeleteMainEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deleteEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		removed, err := es.DeleteCommonEvent(c.Request.Context(), req.EventID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"deletedRegistrations": removed,
		}, "event deleted"))
	}
}

type toggleEventRequest struct {
	EventID  string `json:"eventId" binding:"required"`
	IsActive *bool  `json:"isActive" binding:"required"`
}

// ToggleMainEvent flips visibility of a fest-wide event.
func ToggleMainEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req toggleEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		event, err := es.ToggleCommonEvent(c.Request.Context(), req.EventID, *req.IsActive)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, "event updated"))
	}
}

// ListMainEvents returns every fest-wide event, newest first.
func ListMainEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.ListCommonEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(events, len(events)))
	}
}

// ListAllRegistrations returns every registration in the system.
func ListAllRegistrations(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		regs, err := rs.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(regs, len(regs)))
	}
}

// ListEventRegistrations returns an event together with its registrations.
func ListEventRegistrations(rs *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, regs, err := rs.ListByEvent(c.Request.Context(), c.Param("eventId"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"event":         event,
			"registrations": regs,
			"count":         len(regs),
		}, ""))
	}
}
