package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/mitul77/gatherly/backend/internal/email"
	"github.com/mitul77/gatherly/backend/internal/handlers"
	"github.com/mitul77/gatherly/backend/internal/middleware"
	"github.com/mitul77/gatherly/backend/internal/models"
	"github.com/mitul77/gatherly/backend/internal/repositories"
	"github.com/mitul77/gatherly/backend/internal/storage"
	"github.com/mitul77/gatherly/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.ActivityAttendee{},
		&models.UserFollowing{},
		&models.Comment{},
		&models.Photo{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate models")
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	activityRepo := repositories.NewPostgresActivityRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	photoRepo := repositories.NewPostgresPhotoRepository(pgdb)

	var notificationRepo repositories.NotificationRepository
	if mgClient != nil {
		notificationRepo = repositories.NewMongoNotificationRepository(mgClient.Database("gatherly"))
	}

	// --- External collaborators ---
	var emailSender email.Sender = email.NoopSender{}
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" {
		emailSender = email.NewMailgunSender(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.EmailFrom)
	}

	var photoStore storage.PhotoStore
	if cfg.S3Bucket != "" {
		photoStore, err = storage.NewS3PhotoStore(cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize photo storage")
		}
	}

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, emailSender, cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.ClientAppURL, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	authHandler.RegisterAccountRoutes(api)

	activityHandler := handlers.NewActivityHandler(activityRepo)
	activityHandler.RegisterActivityRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo)
	commentHandler.RegisterCommentRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)

	profileHandler := handlers.NewProfileHandler(userRepo, followRepo, activityRepo, photoRepo, photoStore)
	profileHandler.RegisterProfileRoutes(api)

	if notificationRepo != nil {
		notificationHandler := handlers.NewNotificationHandler(notificationRepo)
		notificationHandler.RegisterNotificationRoutes(api)
	}

	log.Info().Msg("all routes configured")
}
