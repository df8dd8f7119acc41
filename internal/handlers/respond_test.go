package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/devnandu/festserver/internal/models"
)

func statusFor(err error) int {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w.Code
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.ErrValidation, http.StatusBadRequest},
		{fmt.Errorf("%w: name is required", models.ErrValidation), http.StatusBadRequest},
		{models.ErrInvalidID, http.StatusBadRequest},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{models.ErrUnauthorized, http.StatusUnauthorized},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrEventNotFound, http.StatusNotFound},
		{models.ErrRegistrationNotFound, http.StatusNotFound},
		{models.ErrUserNotFound, http.StatusNotFound},
		{models.ErrAlreadyRegistered, http.StatusConflict},
		{models.ErrAlreadyParticipated, http.StatusConflict},
		{fmt.Errorf("mongo blew up"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.status {
			t.Errorf("Expected status %d for %v, got %d", tc.status, tc.err, got)
		}
	}
}
