package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"

	"github.com/devnandu/festserver/internal/models"
	"github.com/devnandu/festserver/internal/services"
)

const maxWebhookBody = 1 << 20

// identityWebhookPayload is the provider's user event envelope.
type identityWebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// IdentityWebhook ingests signed user events from the identity provider
// and mirrors them into the users collection. Signature verification is
// delegated to the provider's svix library (webhook-id/-timestamp/
// -signature headers, HMAC-SHA256, timestamp tolerance).
func IdentityWebhook(us *services.UserService, secret string) gin.HandlerFunc {
	wh, whErr := svix.NewWebhook(secret)

	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		if whErr != nil || wh.Verify(body, c.Request.Header) != nil {
			respondError(c, models.ErrUnauthorized)
			return
		}

		var payload identityWebhookPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		user := &models.User{
			AuthID:    payload.Data.ID,
			FirstName: payload.Data.FirstName,
			LastName:  payload.Data.LastName,
			ImageURL:  payload.Data.ImageURL,
		}
		if len(payload.Data.EmailAddresses) > 0 {
			user.Email = payload.Data.EmailAddresses[0].EmailAddress
		}

		if err := us.SyncIdentity(c.Request.Context(), payload.Type, user); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "webhook processed"))
	}
}
