package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/devnandu/festserver/internal/models"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/bson"
)

// UserService proxies participant auth to the identity provider and keeps
// a local mirror of profiles for the webhook feed.
type UserService struct {
	supabaseClient *supabase.Client
	users          models.UsersRepo
	logger         *slog.Logger
}

func NewUserService(supabaseClient *supabase.Client, users models.UsersRepo, logger *slog.Logger) *UserService {
	return &UserService{
		supabaseClient: supabaseClient,
		users:          users,
		logger:         logger,
	}
}

func (us *UserService) Signup(email, password string) (interface{}, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", models.ErrValidation)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", models.ErrValidation)
	}

	res, err := us.supabaseClient.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		if strings.Contains(err.Error(), "already registered") {
			return nil, fmt.Errorf("%w: email already in use", models.ErrValidation)
		}
		return nil, fmt.Errorf("failed to create user: %v", err)
	}
	return res, nil
}

func (us *UserService) Login(email, password string) (*types.TokenResponse, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", models.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", models.ErrValidation)
	}

	resp, err := us.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return resp, nil
}

func (us *UserService) RefreshToken(refreshToken string) (*types.TokenResponse, error) {
	if refreshToken == "" {
		return nil, models.ErrUnauthorized
	}
	resp, err := us.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	return resp, nil
}

func (us *UserService) GetProfile(ctx context.Context, authID string) (*models.User, error) {
	if authID == "" {
		return nil, models.ErrUnauthorized
	}
	return us.users.GetUserByAuthID(ctx, authID)
}

// UpdateProfile applies a self-service edit to the caller's mirrored
// profile. Only provided fields are written.
func (us *UserService) UpdateProfile(ctx context.Context, authID string, upd *models.ProfileUpdate) (*models.User, error) {
	if authID == "" {
		return nil, models.ErrUnauthorized
	}

	fields := bson.M{}
	if upd.FirstName != nil {
		fields["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		fields["last_name"] = *upd.LastName
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrValidation)
	}

	if err := us.users.UpdateUserProfile(ctx, authID, fields); err != nil {
		return nil, err
	}
	return us.users.GetUserByAuthID(ctx, authID)
}

// SyncIdentity applies a provider webhook event to the local user mirror.
// Create and update both upsert so out-of-order deliveries converge.
func (us *UserService) SyncIdentity(ctx context.Context, eventType string, user *models.User) error {
	if user.AuthID == "" {
		return fmt.Errorf("%w: user id missing from webhook payload", models.ErrValidation)
	}

	switch eventType {
	case "user.created", "user.updated":
		if _, err := us.users.UpsertUser(ctx, user); err != nil {
			return err
		}
		us.logger.Info("identity synced", "event", eventType, "auth_id", user.AuthID)
		return nil
	default:
		us.logger.Warn("ignoring unknown webhook event", "event", eventType)
		return nil
	}
}
