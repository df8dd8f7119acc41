package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventCategoryDepartment = "department"
	EventCategoryCommon     = "common"

	EventTypeSingle = "single"
	EventTypeTeam   = "team"
)

type Event struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	EventCategory string             `bson:"event_category" json:"eventCategory"`

	// Owning department slug; empty for common events.
	Department string `bson:"department,omitempty" json:"department,omitempty"`

	Type string `bson:"type" json:"type"`

	// Fixed at 1 when Type is single.
	TeamSize int `bson:"team_size" json:"teamSize"`

	UpiID  string   `bson:"upi_id" json:"upiId"`
	Amount float64  `bson:"amount" json:"amount"`
	Rules  []string `bson:"rules,omitempty" json:"rules,omitempty"`

	ImageURL string `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	// Cloudinary public ID kept so a replaced poster can be deleted.
	ImagePublicID string `bson:"image_public_id,omitempty" json:"-"`

	StartTime            time.Time `bson:"start_time" json:"startTime"`
	EndTime              time.Time `bson:"end_time" json:"endTime"`
	RegistrationDeadline time.Time `bson:"registration_deadline" json:"registrationDeadline"`

	IsActive  bool      `bson:"is_active" json:"isActive"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// EventInput is the create payload shared by the department (JSON) and
// fest-wide (multipart) surfaces. Image carries a base64 data URI on the
// JSON path; the multipart path uploads the file directly and leaves it
// empty.
type EventInput struct {
	Title                string    `json:"title" validate:"required"`
	Description          string    `json:"description"`
	Type                 string    `json:"type" validate:"required,oneof=single team"`
	TeamSize             int       `json:"teamSize"`
	UpiID                string    `json:"upiId" validate:"required"`
	Amount               float64   `json:"amount" validate:"required,gt=0"`
	Rules                []string  `json:"rules" validate:"required,min=1"`
	Image                string    `json:"image,omitempty"`
	StartTime            time.Time `json:"startTime" validate:"required"`
	EndTime              time.Time `json:"endTime" validate:"required"`
	RegistrationDeadline time.Time `json:"registrationDeadline" validate:"required"`
}

// EventUpdate carries a partial update; nil fields are left untouched.
type EventUpdate struct {
	EventID              string     `json:"eventId" validate:"required"`
	Title                *string    `json:"title,omitempty"`
	Description          *string    `json:"description,omitempty"`
	Type                 *string    `json:"type,omitempty"`
	TeamSize             *int       `json:"teamSize,omitempty"`
	UpiID                *string    `json:"upiId,omitempty"`
	Amount               *float64   `json:"amount,omitempty"`
	Rules                []string   `json:"rules,omitempty"`
	Image                string     `json:"image,omitempty"`
	StartTime            *time.Time `json:"startTime,omitempty"`
	EndTime              *time.Time `json:"endTime,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	IsActive             *bool      `json:"isActive,omitempty"`
}

// EventFormView is the public projection served to the registration form.
type EventFormView struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Rules       []string           `json:"rules,omitempty"`
	Amount      float64            `json:"amount"`
	Type        string             `json:"type"`
	TeamSize    int                `json:"teamSize"`
	UpiID       string             `json:"upiId"`
}

// PublicEventView is the projection for the public common-events listing.
type PublicEventView struct {
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	ImageURL  string             `json:"imageUrl,omitempty"`
	Type      string             `json:"type"`
	TeamSize  int                `json:"teamSize"`
	Amount    float64            `json:"amount"`
	StartTime time.Time          `json:"startTime"`
}

func (e *Event) FormView() EventFormView {
	return EventFormView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Rules:       e.Rules,
		Amount:      e.Amount,
		Type:        e.Type,
		TeamSize:    e.TeamSize,
		UpiID:       e.UpiID,
	}
}

func (e *Event) PublicView() PublicEventView {
	return PublicEventView{
		ID:        e.ID,
		Title:     e.Title,
		ImageURL:  e.ImageURL,
		Type:      e.Type,
		TeamSize:  e.TeamSize,
		Amount:    e.Amount,
		StartTime: e.StartTime,
	}
}
