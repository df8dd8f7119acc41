package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devnandu/festserver/internal/config"
	"github.com/devnandu/festserver/internal/models"
	"github.com/devnandu/festserver/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary

	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client

	AdminService        *services.AdminService
	EventService        *services.EventService
	RegistrationService *services.RegistrationService
	UserService         *services.UserService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)

	mailer := services.NewMailer(cfg, logger)
	adminService := services.NewAdminService(cfg)
	eventService := services.NewEventService(repo, logger)
	registrationService := services.NewRegistrationService(repo, repo, mailer, logger)
	userService := services.NewUserService(supabaseClient, repo, logger)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Cloudinary:     cloudinary,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,

		AdminService:        adminService,
		EventService:        eventService,
		RegistrationService: registrationService,
		UserService:         userService,
	}
}
