package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devnandu/festserver/internal/helpers"
	"github.com/devnandu/festserver/internal/models"
	"github.com/devnandu/festserver/internal/services"
)

const (
	// Context keys set by the auth middlewares.
	CtxUserID     = "user_id"
	CtxUserEmail  = "user_email"
	CtxAdminRole  = "admin_role"
	CtxDepartment = "department"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
		)
	}
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// AuthMiddleware authenticates participants against the identity provider.
// The session token comes from the access_token cookie or a bearer header;
// an expired cookie session is refreshed transparently when a refresh
// token is present.
func AuthMiddleware(userService *services.UserService, isProduction bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			token = bearerToken(c)
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(models.ErrUnauthorized))
			return
		}

		claims, err := helpers.ValidateSessionToken(token)
		if err != nil {
			refreshToken, refreshErr := c.Cookie("refresh_token")
			if refreshErr != nil || refreshToken == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(models.ErrUnauthorized))
				return
			}

			tokenRes, refreshErr := userService.RefreshToken(refreshToken)
			if refreshErr != nil || tokenRes.AccessToken == "" {
				logger.Warn("session refresh failed", "error", refreshErr)
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(models.ErrUnauthorized))
				return
			}

			c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
			c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)

			token = tokenRes.AccessToken
			claims, err = helpers.ValidateSessionToken(token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(models.ErrUnauthorized))
				return
			}
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxUserEmail, claims.Email)
		c.Next()
	}
}

// DepartmentAdminAuth admits only department-scoped admin tokens and
// records the department the token was issued for.
func DepartmentAdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(models.ErrUnauthorized))
			return
		}

		claims, err := helpers.ParseAdminToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(models.ErrUnauthorized))
			return
		}
		if !claims.IsDepartmentAdmin() || claims.Department == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(models.ErrForbidden))
			return
		}

		c.Set(CtxAdminRole, claims.Role)
		c.Set(CtxDepartment, claims.Department)
		c.Next()
	}
}

// MainAdminAuth admits only main-admin tokens. A valid department token
// carries the wrong role and gets 403, not 401.
func MainAdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(models.ErrUnauthorized))
			return
		}

		claims, err := helpers.ParseAdminToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(models.ErrUnauthorized))
			return
		}
		if !claims.IsMainAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(models.ErrForbidden))
			return
		}

		c.Set(CtxAdminRole, claims.Role)
		c.Next()
	}
}
