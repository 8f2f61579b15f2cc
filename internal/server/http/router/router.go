package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/nhoyhub/esignhub/internal/server/http/handlers"
	"github.com/nhoyhub/esignhub/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, adminSecret, uploadsDir string, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	healthHandler := handlers.NewHealthHandler(facade.HealthCheck)
	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, adminSecret)
	settingsHandler := handlers.NewSettingsHandler(facade)

	engine.GET("/", healthHandler.Get)
	engine.POST("/login", authHandler.Login)
	engine.Static("/uploads", uploadsDir)

	orders := engine.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)

	ordersAdmin := orders.Group("")
	ordersAdmin.Use(middleware.RequireAdmin(adminSecret))
	ordersAdmin.PUT("/:id", orderHandler.Update)
	ordersAdmin.PUT("/:id/status", orderHandler.UpdateStatus)
	ordersAdmin.DELETE("/:id", orderHandler.Delete)

	cfg := engine.Group("/config")
	cfg.Use(middleware.RequireAdmin(adminSecret))
	cfg.GET("", settingsHandler.Get)
	cfg.PUT("/public", settingsHandler.PutPublic)
	cfg.PUT("/esign_image/:n", settingsHandler.PutGallery)

	return engine
}
