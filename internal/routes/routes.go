package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jsongrid/backend/internal/config"
	"github.com/jsongrid/backend/internal/controllers"
	"github.com/jsongrid/backend/internal/middleware"
	"github.com/jsongrid/backend/internal/services"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine, cfg *config.Config, sessionStore *services.SessionStore) {
	// Initialize services
	parserService := services.NewParserService()

	// Initialize controllers
	healthController := controllers.NewHealthController(sessionStore)
	authController := controllers.NewAuthController(cfg.JWTSecret, cfg.AccessPasswordHash, cfg.TokenTTL)
	parseController := controllers.NewParseController(parserService, cfg.DefaultMode)
	sessionController := controllers.NewSessionController(sessionStore)

	r.GET("/health", healthController.Health)

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/token", authController.IssueToken)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			// Stateless parsing
			parse := protected.Group("/parse")
			{
				parse.POST("", parseController.Parse)
				parse.POST("/fix", parseController.Fix)
			}

			protected.GET("/examples", parseController.GetExamples)

			// Sessions
			sessions := protected.Group("/sessions")
			{
				sessions.POST("", sessionController.CreateSession)
				sessions.GET("/:id", sessionController.GetSession)
				sessions.PUT("/:id/input", sessionController.SetInput)
				sessions.PUT("/:id/mode", sessionController.SetMode)
				sessions.POST("/:id/groups/:parentId/toggle", sessionController.ToggleGroup)
				sessions.POST("/:id/groups/:parentId/collapse", sessionController.CollapseGroup)
				sessions.POST("/:id/groups/:parentId/expand", sessionController.ExpandGroup)
				sessions.DELETE("/:id", sessionController.DeleteSession)
			}
		}
	}
}

// NewRouter builds the engine with the middleware stack used in production.
func NewRouter(cfg *config.Config, sessionStore *services.SessionStore) *gin.Engine {
	r := gin.New()

	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(middleware.CustomLoggerMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigin))
	r.Use(gin.Recovery())

	SetupRoutes(r, cfg, sessionStore)
	return r
}
