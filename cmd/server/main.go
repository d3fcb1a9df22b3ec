package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jackiexiao/hackclub/adapters/event"
	httpAdapter "github.com/Jackiexiao/hackclub/adapters/http"
	"github.com/Jackiexiao/hackclub/adapters/media_storage"
	"github.com/Jackiexiao/hackclub/adapters/persistence"
	authUC "github.com/Jackiexiao/hackclub/internal/application/usecase/auth"
	clubUC "github.com/Jackiexiao/hackclub/internal/application/usecase/club"
	mediaUC "github.com/Jackiexiao/hackclub/internal/application/usecase/media"
	profileUC "github.com/Jackiexiao/hackclub/internal/application/usecase/profile"
	"github.com/Jackiexiao/hackclub/internal/config"
	"github.com/Jackiexiao/hackclub/pkg/auth"
	"github.com/Jackiexiao/hackclub/pkg/logger"
	"github.com/Jackiexiao/hackclub/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Hackclub API server...")

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "hackclub-api")
		if err != nil {
			appLogger.Warn("tracing disabled", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	clubRepo := persistence.NewPostgresClubRepo(dbPool, appLogger)
	registrationRepo := persistence.NewPostgresRegistrationRepo(dbPool, appLogger)
	profileCache := persistence.NewRedisProfileCache(redisClient, cfg.Redis.CacheTTL, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize uploader", err)
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	getProfileUseCase := profileUC.NewGetProfileUseCase(profileRepo, appLogger)
	getByUsernameUseCase := profileUC.NewGetByUsernameUseCase(profileRepo, profileCache, appLogger)
	updateProfileUseCase := profileUC.NewUpdateProfileUseCase(profileRepo, clubRepo, registrationRepo, profileCache, kafkaClient, appLogger)
	listClubsUseCase := clubUC.NewListClubsUseCase(clubRepo, appLogger)
	uploadMediaUseCase := mediaUC.NewUploadMediaUseCase(uploader, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, appLogger)
	profileHandler := httpAdapter.NewProfileHandler(getProfileUseCase, getByUsernameUseCase, updateProfileUseCase, appLogger)
	clubHandler := httpAdapter.NewClubHandler(listClubsUseCase, appLogger)
	mediaHandler := httpAdapter.NewMediaHandler(uploadMediaUseCase, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "UP"}) })
		api.POST("/auth/login", authHandler.Login)
		api.GET("/clubs", clubHandler.ListClubs)

		// Public profile view by slug; intentionally unauthenticated.
		api.GET("/users/:username", profileHandler.GetByUsername)

		private := api.Group("/profile")
		private.Use(authMiddleware)
		{
			private.GET("", profileHandler.GetProfile)
			private.PUT("", profileHandler.UpdateProfile)
			private.POST("/media", mediaHandler.UploadMedia)
		}
	}

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
