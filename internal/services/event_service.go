package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devnandu/festserver/internal/connect"
	"github.com/devnandu/festserver/internal/helpers"
	"github.com/devnandu/festserver/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventService struct {
	events models.EventsRepo
	logger *slog.Logger
}

func NewEventService(events models.EventsRepo, logger *slog.Logger) *EventService {
	return &EventService{
		events: events,
		logger: logger,
	}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not a valid event id", models.ErrInvalidID, id)
	}
	return oid, nil
}

// validateSchedule enforces registrationDeadline <= startTime <= endTime.
func validateSchedule(start, end, deadline time.Time) error {
	if deadline.After(start) {
		return fmt.Errorf("%w: registrationDeadline must not be after startTime", models.ErrValidation)
	}
	if start.After(end) {
		return fmt.Errorf("%w: startTime must not be after endTime", models.ErrValidation)
	}
	return nil
}

// normalizeTeamSize applies the mode rule: single events are fixed at 1,
// team events need an explicit size of at least 2.
func normalizeTeamSize(eventType string, teamSize int) (int, error) {
	switch eventType {
	case models.EventTypeSingle:
		return 1, nil
	case models.EventTypeTeam:
		if teamSize < 2 {
			return 0, fmt.Errorf("%w: team size must be at least 2", models.ErrValidation)
		}
		return teamSize, nil
	default:
		return 0, fmt.Errorf("%w: type must be single or team", models.ErrValidation)
	}
}

func (es *EventService) buildEvent(input *models.EventInput, category, department string) (*models.Event, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	teamSize, err := normalizeTeamSize(input.Type, input.TeamSize)
	if err != nil {
		return nil, err
	}
	if err := validateSchedule(input.StartTime, input.EndTime, input.RegistrationDeadline); err != nil {
		return nil, err
	}

	now := time.Now()
	return &models.Event{
		Title:                input.Title,
		Description:          input.Description,
		EventCategory:        category,
		Department:           department,
		Type:                 input.Type,
		TeamSize:             teamSize,
		UpiID:                input.UpiID,
		Amount:               input.Amount,
		Rules:                input.Rules,
		StartTime:            input.StartTime,
		EndTime:              input.EndTime,
		RegistrationDeadline: input.RegistrationDeadline,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// CreateDepartmentEvent creates an event owned by the token's department.
// The poster is an optional base64 data URI on this surface.
func (es *EventService) CreateDepartmentEvent(ctx context.Context, input *models.EventInput, department string) (*models.Event, error) {
	event, err := es.buildEvent(input, models.EventCategoryDepartment, department)
	if err != nil {
		return nil, err
	}

	if input.Image != "" {
		url, publicID, err := helpers.UploadImage(ctx, connect.Cld, input.Image, helpers.DeptEventsFolder)
		if err != nil {
			return nil, err
		}
		event.ImageURL = url
		event.ImagePublicID = publicID
	}

	return es.events.CreateEvent(ctx, event)
}

// CreateCommonEvent creates a fest-wide event. The poster file is required
// and arrives as a multipart upload.
func (es *EventService) CreateCommonEvent(ctx context.Context, input *models.EventInput, image interface{}) (*models.Event, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: image is required", models.ErrValidation)
	}

	event, err := es.buildEvent(input, models.EventCategoryCommon, "")
	if err != nil {
		return nil, err
	}

	url, publicID, err := helpers.UploadImage(ctx, connect.Cld, image, helpers.MainEventsFolder)
	if err != nil {
		return nil, err
	}
	event.ImageURL = url
	event.ImagePublicID = publicID

	return es.events.CreateEvent(ctx, event)
}

// applyUpdate turns an EventUpdate into a $set document against the
// current event, re-validating the mode and schedule rules with the merged
// values. Only provided fields are overwritten.
func applyUpdate(event *models.Event, upd *models.EventUpdate) (bson.M, error) {
	set := bson.M{"updated_at": time.Now()}

	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.UpiID != nil {
		set["upi_id"] = *upd.UpiID
	}
	if upd.Amount != nil {
		if *upd.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be greater than zero", models.ErrValidation)
		}
		set["amount"] = *upd.Amount
	}
	if upd.Rules != nil {
		set["rules"] = upd.Rules
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	eventType := event.Type
	if upd.Type != nil {
		eventType = *upd.Type
	}
	teamSize := event.TeamSize
	if upd.TeamSize != nil {
		teamSize = *upd.TeamSize
	}
	if upd.Type != nil || upd.TeamSize != nil {
		normalized, err := normalizeTeamSize(eventType, teamSize)
		if err != nil {
			return nil, err
		}
		set["type"] = eventType
		set["team_size"] = normalized
	}

	start := event.StartTime
	end := event.EndTime
	deadline := event.RegistrationDeadline
	if upd.StartTime != nil {
		start = *upd.StartTime
	}
	if upd.EndTime != nil {
		end = *upd.EndTime
	}
	if upd.RegistrationDeadline != nil {
		deadline = *upd.RegistrationDeadline
	}
	if upd.StartTime != nil || upd.EndTime != nil || upd.RegistrationDeadline != nil {
		if err := validateSchedule(start, end, deadline); err != nil {
			return nil, err
		}
		set["start_time"] = start
		set["end_time"] = end
		set["registration_deadline"] = deadline
	}

	return set, nil
}

func (es *EventService) updateEvent(ctx context.Context, event *models.Event, upd *models.EventUpdate, folder string, image interface{}) (*models.Event, error) {
	set, err := applyUpdate(event, upd)
	if err != nil {
		return nil, err
	}

	if image != nil {
		url, publicID, err := helpers.UploadImage(ctx, connect.Cld, image, folder)
		if err != nil {
			return nil, err
		}
		set["image_url"] = url
		set["image_public_id"] = publicID

		// Best effort: a stale poster in storage is a cost, not a bug.
		if event.ImagePublicID != "" {
			if err := helpers.DeleteImage(ctx, connect.Cld, event.ImagePublicID); err != nil {
				es.logger.Warn("failed to delete replaced poster", "event_id", event.ID.Hex(), "error", err)
			}
		}
	}

	return es.events.UpdateEvent(ctx, event.ID, set)
}

// UpdateDepartmentEvent applies a partial update to an event owned by the
// caller's department. Events of other departments look like a 404, never
// a hint that they exist.
func (es *EventService) UpdateDepartmentEvent(ctx context.Context, department string, upd *models.EventUpdate) (*models.Event, error) {
	event, err := es.getDepartmentEvent(ctx, department, upd.EventID)
	if err != nil {
		return nil, err
	}

	var image interface{}
	if upd.Image != "" {
		image = upd.Image
	}
	return es.updateEvent(ctx, event, upd, helpers.DeptEventsFolder, image)
}

func (es *EventService) UpdateCommonEvent(ctx context.Context, upd *models.EventUpdate, image interface{}) (*models.Event, error) {
	event, err := es.getCommonEvent(ctx, upd.EventID)
	if err != nil {
		return nil, err
	}
	return es.updateEvent(ctx, event, upd, helpers.MainEventsFolder, image)
}

func (es *EventService) getDepartmentEvent(ctx context.Context, department, eventID string) (*models.Event, error) {
	oid, err := parseObjectID(eventID)
	if err != nil {
		return nil, err
	}
	event, err := es.events.GetEventByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if event.EventCategory != models.EventCategoryDepartment || event.Department != department {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

func (es *EventService) getCommonEvent(ctx context.Context, eventID string) (*models.Event, error) {
	oid, err := parseObjectID(eventID)
	if err != nil {
		return nil, err
	}
	event, err := es.events.GetEventByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if event.EventCategory != models.EventCategoryCommon {
		return nil, models.ErrEventNotFound
	}
	return event, nil
}

func (es *EventService) GetDepartmentEvent(ctx context.Context, department, eventID string) (*models.Event, error) {
	return es.getDepartmentEvent(ctx, department, eventID)
}

// DeleteDepartmentEvent removes an owned event and all its registrations.
func (es *EventService) DeleteDepartmentEvent(ctx context.Context, department, eventID string) (int64, error) {
	event, err := es.getDepartmentEvent(ctx, department, eventID)
	if err != nil {
		return 0, err
	}
	return es.deleteEvent(ctx, event)
}

func (es *EventService) DeleteCommonEvent(ctx context.Context, eventID string) (int64, error) {
	event, err := es.getCommonEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return es.deleteEvent(ctx, event)
}

func (es *EventService) deleteEvent(ctx context.Context, event *models.Event) (int64, error) {
	removed, err := es.events.DeleteEventCascade(ctx, event.ID)
	if err != nil {
		return 0, err
	}

	if event.ImagePublicID != "" {
		if err := helpers.DeleteImage(ctx, connect.Cld, event.ImagePublicID); err != nil {
			es.logger.Warn("failed to delete poster of removed event", "event_id", event.ID.Hex(), "error", err)
		}
	}

	es.logger.Info("event deleted",
		"event_id", event.ID.Hex(),
		"title", event.Title,
		"registrations_removed", removed,
	)
	return removed, nil
}

// ToggleCommonEvent flips the active flag of a fest-wide event.
func (es *EventService) ToggleCommonEvent(ctx context.Context, eventID string, isActive bool) (*models.Event, error) {
	oid, err := parseObjectID(eventID)
	if err != nil {
		return nil, err
	}
	return es.events.SetCommonEventActive(ctx, oid, isActive)
}

func (es *EventService) ListDepartmentEvents(ctx context.Context, department string) ([]*models.Event, error) {
	return es.events.ListDepartmentEvents(ctx, department)
}

func (es *EventService) ListCommonEvents(ctx context.Context) ([]*models.Event, error) {
	return es.events.ListCommonEvents(ctx)
}

// ListPublicCommonEvents serves the unauthenticated landing page listing:
// active common events only, projected, soonest first.
func (es *EventService) ListPublicCommonEvents(ctx context.Context) ([]models.PublicEventView, error) {
	events, err := es.events.ListActiveCommonEvents(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.PublicEventView, 0, len(events))
	for _, e := range events {
		views = append(views, e.PublicView())
	}
	return views, nil
}

// GetEventForm returns the public projection the registration form needs.
func (es *EventService) GetEventForm(ctx context.Context, eventID string) (*models.EventFormView, error) {
	oid, err := parseObjectID(eventID)
	if err != nil {
		return nil, err
	}
	event, err := es.events.GetEventByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	view := event.FormView()
	return &view, nil
}
