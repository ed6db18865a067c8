package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/pacifora/sahabat-ktb/backend/internal/handlers"
	"github.com/pacifora/sahabat-ktb/backend/internal/middleware"
	"github.com/pacifora/sahabat-ktb/backend/internal/models"
	"github.com/pacifora/sahabat-ktb/backend/internal/repositories"
	"github.com/pacifora/sahabat-ktb/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mdb *mongo.Database, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Admin{},
		&models.Post{},
		&models.Reply{},
		&models.PostLike{},
		&models.ReplyLike{},
		&models.SavedPost{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	profileRepo := repositories.NewPostgresUserProfileRepository(pgdb)
	adminRepo := repositories.NewPostgresAdminRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	replyRepo := repositories.NewPostgresReplyRepository(pgdb)
	postLikeRepo := repositories.NewPostgresPostLikeRepository(pgdb)
	replyLikeRepo := repositories.NewPostgresReplyLikeRepository(pgdb)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	siteContentRepo := repositories.NewMongoSiteContentRepository(mdb)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, profileRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	profileHandler := handlers.NewProfileHandler(profileRepo, userRepo, adminRepo)
	profileHandler.RegisterProfileRoutes(api)
	log.Println("Profile routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, replyRepo, postLikeRepo, replyLikeRepo, savedPostRepo, profileRepo, adminRepo, userRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	replyHandler := handlers.NewReplyHandler(replyRepo, postRepo, userRepo, adminRepo, notificationRepo)
	replyHandler.RegisterReplyRoutes(api)
	log.Println("Reply routes configured.")

	likeHandler := handlers.NewLikeHandler(postLikeRepo, replyLikeRepo, postRepo, replyRepo, notificationRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	savedPostHandler := handlers.NewSavedPostHandler(savedPostRepo, postRepo)
	savedPostHandler.RegisterSavedPostRoutes(api)
	log.Println("Saved post routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	siteContentHandler := handlers.NewSiteContentHandler(siteContentRepo)
	siteContentHandler.RegisterSiteContentRoutes(api)
	log.Println("Site content routes configured.")

	// --- Admin routes (require JWT plus the admin role) ---
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminOnlyMiddleware(adminRepo))

	adminHandler := handlers.NewAdminHandler(adminRepo, userRepo, profileRepo, postRepo, replyRepo, postLikeRepo, replyLikeRepo, savedPostRepo, notificationRepo)
	adminHandler.RegisterAdminRoutes(adminGroup)
	adminGroup.POST("/broadcast", notificationHandler.Broadcast)
	siteContentHandler.RegisterAdminSiteContentRoutes(adminGroup)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
