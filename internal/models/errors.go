package models

import "errors"

// Sentinel errors for the HTTP taxonomy. Services wrap these with %w and
// handlers translate via errors.Is.
var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidID            = errors.New("invalid id")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyRegistered    = errors.New("already registered")
	ErrDuplicateCode        = errors.New("unique code already taken")
	ErrAlreadyParticipated  = errors.New("already participated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
)
