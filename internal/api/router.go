package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/api/handlers"
	"github.com/jafarshop/invman/internal/api/middleware"
	"github.com/jafarshop/invman/internal/config"
	"github.com/jafarshop/invman/internal/repository"
	"github.com/jafarshop/invman/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	inventory := service.NewInventoryService(repos, logger)
	analytics := service.NewAnalyticsService(repos, logger)

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg.API.KeyHash, logger))
	{
		v1.GET("/products", handlers.HandleListProducts(inventory, logger))
		v1.POST("/products", handlers.HandleAddProduct(inventory, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(inventory, logger))
		v1.PUT("/products/:id", handlers.HandleEditProduct(inventory, logger))
		v1.DELETE("/products/:id", handlers.HandleRemoveProduct(inventory, logger))
		v1.POST("/products/:id/stock", handlers.HandleAddStock(inventory, logger))
		v1.POST("/products/:id/orders", handlers.HandlePlaceOrder(inventory, logger))
		v1.POST("/products/:id/refunds", handlers.HandleRefundOrder(inventory, logger))

		v1.GET("/orders", handlers.HandleListOrders(inventory, logger))

		v1.POST("/performance", handlers.HandleTrackPerformance(analytics, logger))
		v1.GET("/performance/sellers", handlers.HandleBestWorstSellers(analytics, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
