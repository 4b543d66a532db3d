package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/analytics"
	"github.com/jafarshop/retailops/internal/api/handlers"
	"github.com/jafarshop/retailops/internal/api/middleware"
	"github.com/jafarshop/retailops/internal/config"
	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	opts, err := service.AnalyticsOptions(cfg)
	if err != nil {
		logger.Warn("Invalid analytics settings, using defaults", zap.Error(err))
		opts = analytics.DefaultOptions()
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(repos, logger))
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", handlers.HandleListCatalog(repos, opts, logger))
			catalog.GET("/barcode/:barcode", handlers.HandleGetByBarcode(repos, opts, logger))
			catalog.GET("/:id/price", handlers.HandleGetPrice(repos, opts, logger))
			catalog.POST("/:id/stock", handlers.HandleAdjustStock(repos, opts, logger))
			catalog.POST("/:id/price", handlers.HandleAdjustPrice(repos, opts, logger))
		}

		v1.POST("/checkout/quote", handlers.HandleQuote(repos, logger))
		v1.POST("/checkout", handlers.HandleCheckout(repos, logger))

		v1.GET("/dashboard", handlers.HandleDashboard(repos, opts, logger))

		v1.POST("/ledger/purchases", handlers.HandleRecordPurchase(repos, logger))
		v1.POST("/ledger/expenses", handlers.HandleRecordExpense(repos, logger))
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
