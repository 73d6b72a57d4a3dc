package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/coralab/coralab-backend/internal/db"
	"github.com/coralab/coralab-backend/internal/handlers"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/middleware"
	"github.com/coralab/coralab-backend/internal/observability"
	"github.com/coralab/coralab-backend/internal/platform/sendgrid"
	"github.com/coralab/coralab-backend/internal/repos"
	"github.com/coralab/coralab-backend/internal/server"
	"github.com/coralab/coralab-backend/internal/services"
	"github.com/coralab/coralab-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "coralab-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOtel(ctx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	allowedOrigins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log)
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	aboutRepo := repos.NewAboutRepo(thePG, log)
	contactRepo := repos.NewContactRepo(thePG, log)
	memberRepo := repos.NewMemberRepo(thePG, log)
	memberExpertiseRepo := repos.NewMemberExpertiseRepo(thePG, log)
	researchRepo := repos.NewResearchRepo(thePG, log)
	researchProgressRepo := repos.NewResearchProgressRepo(thePG, log)
	publicationRepo := repos.NewPublicationRepo(thePG, log)
	partnerRepo := repos.NewPartnerRepo(thePG, log)
	documentationRepo := repos.NewDocumentationRepo(thePG, log)
	lecturerRepo := repos.NewLecturerRepo(thePG, log)

	// Platform clients
	mailClient, err := sendgrid.NewFromEnv(log)
	if err != nil {
		log.Warn("SendGrid client unavailable, contact notifications disabled", "error", err)
		mailClient = nil
	}
	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Fatal("OpenAI client init failed", "error", err)
	}

	// Services
	log.Info("Setting up Services from main...")
	storageService, err := services.NewStorageService(log)
	if err != nil {
		log.Fatal("Storage init failed", "error", err)
	}
	avatarService, err := services.NewAvatarService(log)
	if err != nil {
		log.Warn("Avatar service unavailable, members without photos get none", "error", err)
		avatarService = nil
	}
	authService := services.NewAuthService(
		thePG, log, userRepo, userTokenRepo,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(
		thePG, log, userRepo, userTokenRepo, memberRepo,
		researchRepo, researchProgressRepo, publicationRepo, lecturerRepo, storageService,
	)
	aboutService := services.NewAboutService(thePG, log, aboutRepo, documentationRepo)
	contactService := services.NewContactService(thePG, log, contactRepo, aboutRepo, mailClient)
	memberService := services.NewMemberService(thePG, log, memberRepo, memberExpertiseRepo, avatarService, storageService)
	memberExpertiseService := services.NewMemberExpertiseService(thePG, log, memberExpertiseRepo)
	researchService := services.NewResearchService(
		thePG, log, researchRepo, researchProgressRepo, memberRepo,
		partnerRepo, documentationRepo, publicationRepo,
	)
	publicationService := services.NewPublicationService(thePG, log, publicationRepo, researchRepo)
	partnerService := services.NewPartnerService(thePG, log, partnerRepo)
	documentationService := services.NewDocumentationService(thePG, log, documentationRepo, storageService)
	lecturerService := services.NewLecturerService(thePG, log, lecturerRepo, storageService)
	chatbotService := services.NewChatbotService(
		log, aboutRepo, contactRepo, researchRepo, publicationRepo, memberRepo, openaiClient,
	)

	// Handlers
	log.Info("Setting up Handlers from main...")
	routerCfg := server.RouterConfig{
		Log:            log,
		AllowedOrigins: allowedOrigins,
		StorageRoot:    storageService.Root(),

		AuthMiddleware: middleware.NewAuthMiddleware(log, authService),

		HealthcheckHandler:   handlers.NewHealthcheckHandler(thePG),
		AuthHandler:          handlers.NewAuthHandler(log, authService, userService),
		UserHandler:          handlers.NewUserHandler(log, userService),
		AboutHandler:         handlers.NewAboutHandler(log, aboutService),
		ContactHandler:       handlers.NewContactHandler(log, contactService),
		MemberHandler:        handlers.NewMemberHandler(log, memberService, memberExpertiseService),
		ResearchHandler:      handlers.NewResearchHandler(log, researchService),
		PublicationHandler:   handlers.NewPublicationHandler(log, publicationService),
		PartnerHandler:       handlers.NewPartnerHandler(log, partnerService),
		DocumentationHandler: handlers.NewDocumentationHandler(log, documentationService),
		LecturerHandler:      handlers.NewLecturerHandler(log, lecturerService),
		ChatbotHandler:       handlers.NewChatbotHandler(log, chatbotService),
	}

	router := server.NewRouter(routerCfg)
	log.Info("Starting HTTP server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("HTTP server exited", "error", err)
	}
}
