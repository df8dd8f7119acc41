package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User mirrors the identity provider's profile records, synced via webhook.
// AuthID is the provider subject and is what registrations reference.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthID    string             `bson:"auth_id" json:"authId"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	FirstName string             `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName  string             `bson:"last_name,omitempty" json:"lastName,omitempty"`
	ImageURL  string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// ProfileUpdate carries a partial self-service profile edit; nil fields
// are left untouched.
type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	ImageURL  *string `json:"imageUrl,omitempty"`
}
