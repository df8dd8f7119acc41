package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ParticipantTypeCollege = "college"
	ParticipantTypeSchool  = "school"
)

type Registration struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  string             `bson:"user_id" json:"userId"`
	EventID primitive.ObjectID `bson:"event_id" json:"eventId"`

	Name  string `bson:"name" json:"name"`
	Age   int    `bson:"age" json:"age"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`

	ParticipantType string `bson:"participant_type" json:"participantType"`

	// College-only fields.
	College               string `bson:"college,omitempty" json:"college,omitempty"`
	ParticipantDepartment string `bson:"participant_department,omitempty" json:"participantDepartment,omitempty"`
	Semester              string `bson:"semester,omitempty" json:"semester,omitempty"`

	// School-only fields.
	School      string `bson:"school,omitempty" json:"school,omitempty"`
	SchoolClass string `bson:"school_class,omitempty" json:"schoolClass,omitempty"`

	TeamMembers []string `bson:"team_members,omitempty" json:"teamMembers,omitempty"`

	PaymentScreenshot string `bson:"payment_screenshot" json:"paymentScreenshot"`

	UniqueCode string `bson:"unique_code" json:"uniqueCode"`

	IsParticipated bool       `bson:"is_participated" json:"isParticipated"`
	ParticipatedAt *time.Time `bson:"participated_at,omitempty" json:"participatedAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// RegistrationInput is the participant submission. Category-conditional
// requirements are enforced in the service so failures can name the field.
type RegistrationInput struct {
	EventID               string   `json:"eventId"`
	Name                  string   `json:"name"`
	Age                   int      `json:"age"`
	Email                 string   `json:"email" validate:"omitempty,email"`
	Phone                 string   `json:"phone"`
	ParticipantType       string   `json:"participantType"`
	College               string   `json:"college,omitempty"`
	ParticipantDepartment string   `json:"participantDepartment,omitempty"`
	Semester              string   `json:"semester,omitempty"`
	School                string   `json:"school,omitempty"`
	SchoolClass           string   `json:"schoolClass,omitempty"`
	TeamMembers           []string `json:"teamMembers,omitempty"`
	// Base64 data URI; the stored value is the object-storage URL.
	PaymentScreenshot string `json:"paymentScreenshot"`
}

// ParticipationResult is returned by the code verification endpoint.
type ParticipationResult struct {
	Name           string    `json:"name"`
	EventTitle     string    `json:"event"`
	ParticipatedAt time.Time `json:"time"`
}
