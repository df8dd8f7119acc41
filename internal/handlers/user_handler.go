package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devnandu/festserver/internal/middleware"
	"github.com/devnandu/festserver/internal/models"
	"github.com/devnandu/festserver/internal/services"
)

type authRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Signup(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req authRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		res, err := us.Signup(req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(res, "signup successful"))
	}
}

// Login authenticates against the identity provider and moves the session
// into httpOnly cookies; tokens are never returned in the body.
func Login(us *services.UserService, isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req authRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		tokenRes, err := us.Login(req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
		c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user": tokenRes.User,
		}, "login successful"))
	}
}

// RefreshSession exchanges the refresh_token cookie for a fresh session.
func RefreshSession(us *services.UserService, isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie("refresh_token")
		if err != nil || refreshToken == "" {
			respondError(c, models.ErrUnauthorized)
			return
		}

		tokenRes, err := us.RefreshToken(refreshToken)
		if err != nil {
			respondError(c, err)
			return
		}

		c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
		c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "session refreshed"))
	}
}

// Logout clears the session cookies.
func Logout(isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "logged out"))
	}
}

// UpdateProfile applies a partial edit to the caller's mirrored profile.
func UpdateProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.CtxUserID)

		var upd models.ProfileUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		user, err := us.UpdateProfile(c.Request.Context(), userID, &upd)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, "profile updated"))
	}
}

// GetProfile returns the caller's mirrored identity profile.
func GetProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.CtxUserID)

		user, err := us.GetProfile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}
