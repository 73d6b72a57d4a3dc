package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/coralab/coralab-backend/internal/handlers"
	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/middleware"
	"github.com/coralab/coralab-backend/internal/types"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins string
	StorageRoot    string

	AuthMiddleware *middleware.AuthMiddleware

	HealthcheckHandler   *handlers.HealthcheckHandler
	AuthHandler          *handlers.AuthHandler
	UserHandler          *handlers.UserHandler
	AboutHandler         *handlers.AboutHandler
	ContactHandler       *handlers.ContactHandler
	MemberHandler        *handlers.MemberHandler
	ResearchHandler      *handlers.ResearchHandler
	PublicationHandler   *handlers.PublicationHandler
	PartnerHandler       *handlers.PartnerHandler
	DocumentationHandler *handlers.DocumentationHandler
	LecturerHandler      *handlers.LecturerHandler
	ChatbotHandler       *handlers.ChatbotHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("coralab-backend"))
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/healthcheck", cfg.HealthcheckHandler.Check)
	router.Static("/storage", cfg.StorageRoot)

	api := router.Group("/api")

	// Public reads and the contact form.
	api.GET("/about", cfg.AboutHandler.Get)
	api.POST("/about/contact", cfg.ContactHandler.Submit)
	api.GET("/research", cfg.ResearchHandler.List)
	api.GET("/research/year/:year", cfg.ResearchHandler.ListByYear)
	api.GET("/research/:id", cfg.ResearchHandler.Get)
	api.GET("/research/:id/progress", cfg.ResearchHandler.ListProgress)
	api.GET("/members", cfg.MemberHandler.List)
	api.GET("/members/:id", cfg.MemberHandler.Get)
	api.GET("/members/expertise/all", cfg.MemberHandler.ListExpertise)
	api.GET("/partners", cfg.PartnerHandler.List)
	api.GET("/partners/:id", cfg.PartnerHandler.Get)
	api.GET("/publication", cfg.PublicationHandler.List)
	api.GET("/publication/year/:year", cfg.PublicationHandler.ListByYear)
	api.GET("/publication/:id", cfg.PublicationHandler.Get)
	api.GET("/documentation", cfg.DocumentationHandler.ListResearchMedia)
	api.GET("/documentation/image", cfg.DocumentationHandler.ListImages)
	api.GET("/documentation/video", cfg.DocumentationHandler.ListVideos)
	api.GET("/documentation/about", cfg.DocumentationHandler.ListAboutMedia)
	api.GET("/documentation/:id", cfg.DocumentationHandler.Get)
	api.GET("/lecturers", cfg.LecturerHandler.List)
	api.GET("/lecturers/:id", cfg.LecturerHandler.Get)
	api.POST("/chatbot", cfg.ChatbotHandler.Chat)

	// Session endpoints.
	api.POST("/users/login", cfg.AuthHandler.Login)
	api.POST("/users/refresh", middleware.AttachRefreshToken(), cfg.AuthHandler.Refresh)

	// Bearer-token protected writes.
	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/users/logout", cfg.AuthHandler.Logout)
	protected.PUT("/about", cfg.AboutHandler.Upsert)
	protected.GET("/about/contact", cfg.ContactHandler.List)

	protected.POST("/research", cfg.ResearchHandler.Create)
	protected.POST("/research/:id", cfg.ResearchHandler.Update)
	protected.DELETE("/research/:id", cfg.ResearchHandler.Delete)
	protected.POST("/research/:id/progress", cfg.ResearchHandler.AddProgress)
	protected.DELETE("/research/:id/progress/:progressId", cfg.ResearchHandler.DeleteProgress)
	protected.POST("/research/:id/documentation", cfg.ResearchHandler.AttachDocumentation)
	protected.DELETE("/research/:id/documentation/:documentationId", cfg.ResearchHandler.DetachDocumentation)

	protected.POST("/members", cfg.MemberHandler.Create)
	protected.PUT("/members/:id", cfg.MemberHandler.Update)
	protected.DELETE("/members/:id", cfg.MemberHandler.Delete)
	protected.POST("/members/expertise", cfg.MemberHandler.CreateExpertise)
	protected.PUT("/members/expertise/:id", cfg.MemberHandler.UpdateExpertise)
	protected.DELETE("/members/expertise/:id", cfg.MemberHandler.DeleteExpertise)

	protected.POST("/partners", cfg.PartnerHandler.Create)
	protected.PUT("/partners/:id", cfg.PartnerHandler.Update)
	protected.DELETE("/partners/:id", cfg.PartnerHandler.Delete)
	protected.POST("/partners/:id/members", cfg.PartnerHandler.AddMember)
	protected.PUT("/partners/:id/members/:memberId", cfg.PartnerHandler.UpdateMember)
	protected.DELETE("/partners/:id/members/:memberId", cfg.PartnerHandler.DeleteMember)

	protected.POST("/publication", cfg.PublicationHandler.Create)
	protected.PUT("/publication/:id", cfg.PublicationHandler.Update)
	protected.DELETE("/publication/:id", cfg.PublicationHandler.Delete)

	protected.POST("/documentation", cfg.DocumentationHandler.Upload)
	protected.DELETE("/documentation/:id", cfg.DocumentationHandler.Delete)

	protected.POST("/lecturers", cfg.LecturerHandler.Create)
	protected.PUT("/lecturers/:id", cfg.LecturerHandler.Update)
	protected.DELETE("/lecturers/:id", cfg.LecturerHandler.Delete)

	// Superadmin-only account management.
	accounts := protected.Group("/users")
	accounts.POST("/register", cfg.AuthHandler.Register)
	accounts.GET("", cfg.AuthMiddleware.RequireRole(types.RoleSuperadmin), cfg.UserHandler.List)
	accounts.GET("/:id", cfg.UserHandler.Get)
	accounts.PUT("/:id", cfg.UserHandler.Update)
	accounts.DELETE("/:id", cfg.AuthMiddleware.RequireRole(types.RoleSuperadmin), cfg.UserHandler.Delete)

	return router
}
