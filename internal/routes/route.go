package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devnandu/festserver/internal/container"
	"github.com/devnandu/festserver/internal/handlers"
	"github.com/devnandu/festserver/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(gin.Recovery())

	isProduction := c.Config.IsProduction()

	api := r.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{
				"status":  "OK",
				"service": "fest-api",
			})
		})

		api.POST("/webhooks/identity", handlers.IdentityWebhook(c.UserService, c.Config.IdentityWebhookSecret))
	}

	auth := api.Group("/auth")
	{
		auth.POST("/signup", handlers.Signup(c.UserService))
		auth.POST("/login", handlers.Login(c.UserService, isProduction))
		auth.POST("/refresh", handlers.RefreshSession(c.UserService, isProduction))
		auth.POST("/logout", handlers.Logout(isProduction))
		auth.GET("/profile",
			middleware.AuthMiddleware(c.UserService, isProduction, c.Logger),
			handlers.GetProfile(c.UserService))
		auth.PATCH("/profile",
			middleware.AuthMiddleware(c.UserService, isProduction, c.Logger),
			handlers.UpdateProfile(c.UserService))
	}

	events := api.Group("/events")
	{
		// Public surfaces feeding the fest landing page and the
		// registration form.
		events.GET("/main", handlers.ListPublicMainEvents(c.EventService))
		events.GET("/form/:eventId", handlers.GetEventForm(c.EventService))

		session := events.Group("/")
		session.Use(middleware.AuthMiddleware(c.UserService, isProduction, c.Logger))
		{
			session.POST("/register", handlers.RegisterForEvent(c.RegistrationService))
			session.GET("/register", handlers.ListMyRegistrations(c.RegistrationService))
		}
	}

	admin := api.Group("/admin")
	{
		admin.POST("/auth/login", handlers.DepartmentLogin(c.AdminService))
		admin.POST("/main/login", handlers.MainLogin(c.AdminService))

		dept := admin.Group("/")
		dept.Use(middleware.DepartmentAdminAuth(c.Config.AdminJWTSecret))
		{
			dept.POST("/events", handlers.CreateDepartmentEvent(c.EventService))
			dept.PUT("/events", handlers.UpdateDepartmentEvent(c.EventService))
			dept.DELETE("/events", handlers.DeleteDepartmentEvent(c.EventService))
			dept.PATCH("/events", handlers.VerifyParticipation(c.RegistrationService))
			dept.GET("/events/:eventId", handlers.GetDepartmentEvent(c.EventService))
			dept.GET("/department/:dept", handlers.ListDepartmentEvents(c.EventService))
			dept.GET("/department/registrations", handlers.ListDepartmentRegistrations(c.RegistrationService))
		}

		main := admin.Group("/main")
		main.Use(middleware.MainAdminAuth(c.Config.MainAdminJWTSecret))
		{
			main.POST("/events", handlers.CreateMainEvent(c.EventService))
			main.PUT("/events", handlers.UpdateMainEvent(c.EventService))
			main.DELETE("/events", handlers.DeleteMainEvent(c.EventService))
			main.PATCH("/events", handlers.ToggleMainEvent(c.EventService))
			main.GET("/events", handlers.ListMainEvents(c.EventService))
			main.GET("/registrations", handlers.ListAllRegistrations(c.RegistrationService))
			main.GET("/events/:eventId/registrations", handlers.ListEventRegistrations(c.RegistrationService))
		}
	}

	return r
}
