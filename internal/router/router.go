package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rakib404/socialink/backend/internal/handlers"
	"github.com/rakib404/socialink/backend/internal/middleware"
	"github.com/rakib404/socialink/backend/internal/models"
	"github.com/rakib404/socialink/backend/internal/repositories"
	"github.com/rakib404/socialink/backend/internal/services"
	"github.com/rakib404/socialink/backend/pkg/config"
	"github.com/rakib404/socialink/backend/pkg/logger"
	"github.com/rakib404/socialink/backend/pkg/storage"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.Metrics())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *config.DB, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.Notification{},
		&models.PremiumPlan{},
		&models.History{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	appLog := logger.New(cfg.Env)

	uploader, err := storage.NewUploader(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Health and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize Repositories ---
	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	messageRepo := repositories.NewMongoMessageRepository(mongoDB)
	communityRepo := repositories.NewMongoCommunityRepository(mongoDB)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	premiumPlanRepo := repositories.NewPostgresPremiumPlanRepository(db.Postgres)
	historyRepo := repositories.NewPostgresHistoryRepository(db.Postgres)

	// --- Initialize Services ---
	blockPolicy := services.NewBlockPolicy(userRepo, appLog)
	fanout := services.NewFanout(userRepo, notificationRepo, appLog)
	postService := services.NewPostService(postRepo, userRepo, fanout)
	reactionService := services.NewReactionService(postRepo, userRepo, blockPolicy, fanout)
	messagingService := services.NewMessagingService(messageRepo, userRepo, communityRepo, historyRepo, blockPolicy, fanout, appLog, cfg.MediaStrict)
	communityService := services.NewCommunityService(communityRepo, userRepo, fanout)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	postHandler := handlers.NewPostHandler(postService, reactionService)

	public := e.Group("/api/v1")
	postHandler.RegisterPublicPostRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	messageHandler := handlers.NewMessageHandler(messagingService, uploader)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	communityHandler := handlers.NewCommunityHandler(communityService)
	communityHandler.RegisterCommunityRoutes(api)
	log.Println("Community routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, historyRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	premiumHandler := handlers.NewPremiumHandler(premiumPlanRepo, userRepo)
	premiumHandler.RegisterPremiumRoutes(api)
	log.Println("Premium routes configured.")

	log.Println("All routes configured.")
}
