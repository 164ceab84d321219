// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"hoteldash/internal/domain/crud"
	"hoteldash/internal/domain/session"
	"hoteldash/internal/domain/stats"
	"hoteldash/internal/infrastructure/http/v1/handlers"
	"hoteldash/internal/infrastructure/http/v1/middleware"
	"hoteldash/internal/schema"
	"hoteldash/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// SessionService for the login endpoint
	SessionService *session.Service

	// Policy gates entity mutations by position
	Policy *session.Policy

	// Registry stores entity definitions
	Registry *schema.Registry

	// Orchestrator runs validated CRUD flows
	Orchestrator *crud.Orchestrator

	// StatsService relays analytical reports
	StatsService *stats.Service

	// Backend is pinged by the readiness probe
	Backend handlers.Pinger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Backend)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	authHandler := handlers.NewAuthHandler(cfg.SessionService, cfg.Orchestrator)
	entityHandler := handlers.NewEntityHandler(cfg.Registry, cfg.Orchestrator)
	statsHandler := handlers.NewStatsHandler(cfg.StatsService)
	metaHandler := handlers.NewMetaHandler(cfg.Registry)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/register", authHandler.Register)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.GET("/auth/session", authHandler.Session)

		protected.GET("/meta", metaHandler.List)
		protected.GET("/meta/:entity", metaHandler.Get)

		entities := protected.Group("/entities")
		entities.Use(middleware.Manage(cfg.Policy))
		{
			entities.GET("/:entity", entityHandler.List)
			entities.POST("/:entity", entityHandler.Create)
			entities.GET("/:entity/records/:id", entityHandler.Get)
			entities.PUT("/:entity/records/:id", entityHandler.Update)
			entities.DELETE("/:entity/records/:id", entityHandler.Delete)
			entities.GET("/:entity/choices/:field", entityHandler.Choices)
		}

		statsGroup := protected.Group("/stats")
		{
			statsGroup.GET("/global", statsHandler.GlobalReports)
			statsGroup.GET("/global/:report", statsHandler.Global)
			statsGroup.GET("/hotel/:hid/:report", statsHandler.Hotel)
		}
	}

	return router
}
