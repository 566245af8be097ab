package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/washpoint/washpoint/internal/config"
	"github.com/washpoint/washpoint/internal/server/http/handlers"
	"github.com/washpoint/washpoint/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LaundryFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AddAllowHeaders("Authorization")
		engine.Use(cors.New(corsConfig))
	}

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	rewardHandler := handlers.NewRewardHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	transactionHandler := handlers.NewTransactionHandler(facade)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.GET("/rewards/status", rewardHandler.Status)
	authed.GET("/rewards/history", rewardHandler.History)
	authed.GET("/rewards/eligibility", rewardHandler.Eligibility)
	authed.GET("/transactions", transactionHandler.List)
	authed.GET("/services", catalogHandler.List)

	staff := authed.Group("")
	staff.Use(middleware.RequireStaff(facade))
	staff.POST("/services", catalogHandler.Create)
	staff.PUT("/services/:id", catalogHandler.Update)

	return engine
}
