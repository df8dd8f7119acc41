package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
)

const (
	PaymentsFolder   = "event_payments"
	MainEventsFolder = "main_events"
	DeptEventsFolder = "department_events"
)

// SessionClaims are the identity-provider session token claims. Subject is
// the opaque user identifier registrations are keyed by.
type SessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func ValidateSessionToken(tokenStr string) (*SessionClaims, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL not set")
	}

	jwksURL := fmt.Sprintf("%s/rest/v1/auth/jwks", supabaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx: ctx,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %v", err)
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

// UploadImage sends one image to Cloudinary and returns the stable URL plus
// the public ID needed for a later delete. file may be a base64 data URI, a
// remote URL, or an io.Reader from a multipart upload.
func UploadImage(ctx context.Context, cld *cloudinary.Cloudinary, file interface{}, folder string) (string, string, error) {
	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %v", err)
	}
	if uploadResult.SecureURL == "" {
		return "", "", errors.New("upload returned empty URL")
	}
	return uploadResult.SecureURL, uploadResult.PublicID, nil
}

// DeleteImage removes a previously uploaded image. Callers treat failures
// as best-effort.
func DeleteImage(ctx context.Context, cld *cloudinary.Cloudinary, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %v", publicID, err)
	}
	return nil
}
