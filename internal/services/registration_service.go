package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/devnandu/festserver/internal/connect"
	"github.com/devnandu/festserver/internal/helpers"
	"github.com/devnandu/festserver/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxCodeAttempts bounds the retry-on-conflict loop of code allocation.
// With 9000 possible codes a handful of retries is already astronomically
// unlikely at fest scale.
const maxCodeAttempts = 25

type RegistrationService struct {
	registrations models.RegistrationsRepo
	events        models.EventsRepo
	mailer        *Mailer
	logger        *slog.Logger

	// upload stores the payment proof and returns its stable URL plus the
	// storage public id.
	upload func(ctx context.Context, file interface{}, folder string) (string, string, error)
}

func NewRegistrationService(registrations models.RegistrationsRepo, events models.EventsRepo, mailer *Mailer, logger *slog.Logger) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		mailer:        mailer,
		logger:        logger,
		upload: func(ctx context.Context, file interface{}, folder string) (string, string, error) {
			return helpers.UploadImage(ctx, connect.Cld, file, folder)
		},
	}
}

func validateRegistrationInput(input *models.RegistrationInput) error {
	required := []struct {
		name string
		ok   bool
	}{
		{"eventId", input.EventID != ""},
		{"name", input.Name != ""},
		{"age", input.Age > 0},
		{"email", input.Email != ""},
		{"phone", input.Phone != ""},
		{"participantType", input.ParticipantType != ""},
		{"paymentScreenshot", input.PaymentScreenshot != ""},
	}
	for _, f := range required {
		if !f.ok {
			return fmt.Errorf("%w: %s is required", models.ErrValidation, f.name)
		}
	}

	switch input.ParticipantType {
	case models.ParticipantTypeCollege:
		if input.College == "" {
			return fmt.Errorf("%w: college is required", models.ErrValidation)
		}
		if input.ParticipantDepartment == "" {
			return fmt.Errorf("%w: participantDepartment is required", models.ErrValidation)
		}
		if input.Semester == "" {
			return fmt.Errorf("%w: semester is required", models.ErrValidation)
		}
	case models.ParticipantTypeSchool:
		if input.School == "" {
			return fmt.Errorf("%w: school is required", models.ErrValidation)
		}
		if input.SchoolClass == "" {
			return fmt.Errorf("%w: schoolClass is required", models.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: participantType must be college or school", models.ErrValidation)
	}

	if err := models.Validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	return nil
}

// Register runs the submission pipeline: field validation, event checks,
// team-size check, duplicate check, screenshot upload, then a single
// insert protected by the unique indexes. The pre-insert duplicate lookup
// gives a clean 409 in the common case; the (user,event) index closes the
// race between the check and the write.
func (rs *RegistrationService) Register(ctx context.Context, userID string, input *models.RegistrationInput) (*models.Registration, error) {
	if userID == "" {
		return nil, models.ErrUnauthorized
	}
	if err := validateRegistrationInput(input); err != nil {
		return nil, err
	}

	eventID, err := parseObjectID(input.EventID)
	if err != nil {
		return nil, err
	}

	event, err := rs.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, models.ErrEventNotFound
	}

	if event.Type == models.EventTypeTeam {
		if len(input.TeamMembers) != event.TeamSize {
			return nil, fmt.Errorf("%w: this event requires exactly %d team members, got %d",
				models.ErrValidation, event.TeamSize, len(input.TeamMembers))
		}
	}

	if _, err := rs.registrations.FindByUserAndEvent(ctx, userID, eventID); err == nil {
		return nil, models.ErrAlreadyRegistered
	} else if !errors.Is(err, models.ErrRegistrationNotFound) {
		return nil, err
	}

	screenshotURL, _, err := rs.upload(ctx, input.PaymentScreenshot, helpers.PaymentsFolder)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reg := &models.Registration{
		UserID:          userID,
		EventID:         eventID,
		Name:            input.Name,
		Age:             input.Age,
		Email:           input.Email,
		Phone:           input.Phone,
		ParticipantType: input.ParticipantType,
		TeamMembers:     input.TeamMembers,

		PaymentScreenshot: screenshotURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if input.ParticipantType == models.ParticipantTypeCollege {
		reg.College = input.College
		reg.ParticipantDepartment = input.ParticipantDepartment
		reg.Semester = input.Semester
	} else {
		reg.School = input.School
		reg.SchoolClass = input.SchoolClass
	}

	created, err := rs.insertWithUniqueCode(ctx, reg)
	if err != nil {
		return nil, err
	}

	if rs.mailer != nil {
		go rs.mailer.SendRegistrationEmail(created.Email, created.Name, event.Title, created.UniqueCode)
	}

	rs.logger.Info("registration created",
		"event_id", event.ID.Hex(),
		"unique_code", created.UniqueCode,
	)
	return created, nil
}

// insertWithUniqueCode allocates the 4-digit code. There is no pre-check
// query; the insert either lands or reports which unique index rejected
// it, and only a code collision is retried.
func (rs *RegistrationService) insertWithUniqueCode(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}
		reg.UniqueCode = code

		created, err := rs.registrations.InsertRegistration(ctx, reg)
		if errors.Is(err, models.ErrDuplicateCode) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return created, nil
	}
	return nil, fmt.Errorf("could not allocate a unique code after %d attempts", maxCodeAttempts)
}

// generateCode returns a 4-digit decimal string in [1000, 9999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %v", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

func (rs *RegistrationService) ListByUser(ctx context.Context, userID string) ([]*models.Registration, error) {
	if userID == "" {
		return nil, models.ErrUnauthorized
	}
	return rs.registrations.ListByUser(ctx, userID)
}

// ListForDepartment returns registrations for every event the department
// owns, newest first.
func (rs *RegistrationService) ListForDepartment(ctx context.Context, department string) ([]*models.Registration, error) {
	events, err := rs.events.ListDepartmentEvents(ctx, department)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return rs.registrations.ListByEventIDs(ctx, ids)
}

func (rs *RegistrationService) ListAll(ctx context.Context) ([]*models.Registration, error) {
	return rs.registrations.ListAll(ctx)
}

// ListByEvent returns the event plus its registrations for the per-event
// admin view.
func (rs *RegistrationService) ListByEvent(ctx context.Context, eventID string) (*models.Event, []*models.Registration, error) {
	oid, err := parseObjectID(eventID)
	if err != nil {
		return nil, nil, err
	}
	event, err := rs.events.GetEventByID(ctx, oid)
	if err != nil {
		return nil, nil, err
	}
	regs, err := rs.registrations.ListByEvent(ctx, oid)
	if err != nil {
		return nil, nil, err
	}
	return event, regs, nil
}

// VerifyParticipation resolves a scanned unique code and marks attendance
// exactly once.
func (rs *RegistrationService) VerifyParticipation(ctx context.Context, code string) (*models.ParticipationResult, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: uniqueCode is required", models.ErrValidation)
	}

	reg, err := rs.registrations.FindByUniqueCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if reg.IsParticipated {
		return nil, models.ErrAlreadyParticipated
	}

	now := time.Now()
	updated, err := rs.registrations.MarkParticipated(ctx, reg.ID, now)
	if err != nil {
		return nil, err
	}

	title := "Deleted Event"
	if event, err := rs.events.GetEventByID(ctx, updated.EventID); err == nil {
		title = event.Title
	}

	return &models.ParticipationResult{
		Name:           updated.Name,
		EventTitle:     title,
		ParticipatedAt: *updated.ParticipatedAt,
	}, nil
}
