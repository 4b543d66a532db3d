package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/analytics"
	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/internal/service"
)

// HandleListCatalog handles GET /v1/catalog
func HandleListCatalog(repos *repository.Repositories, opts analytics.Options, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalogService := service.NewCatalogService(repos, opts, logger)

		entries, err := catalogService.ListWithPrices(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": entries,
			"count": len(entries),
		})
	}
}

// HandleGetPrice handles GET /v1/catalog/:id/price
func HandleGetPrice(repos *repository.Repositories, opts analytics.Options, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseItemID(c)
		if !ok {
			return
		}

		catalogService := service.NewCatalogService(repos, opts, logger)
		resolution, err := catalogService.GetPrice(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, resolution)
	}
}

// HandleGetByBarcode handles GET /v1/catalog/barcode/:barcode
func HandleGetByBarcode(repos *repository.Repositories, opts analytics.Options, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		catalogService := service.NewCatalogService(repos, opts, logger)

		entry, err := catalogService.GetByBarcode(c.Request.Context(), c.Param("barcode"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, entry)
	}
}

// HandleAdjustStock handles POST /v1/catalog/:id/stock
func HandleAdjustStock(repos *repository.Repositories, opts analytics.Options, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseItemID(c)
		if !ok {
			return
		}

		var req service.StockAdjustmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err)
			return
		}

		catalogService := service.NewCatalogService(repos, opts, logger)
		item, err := catalogService.AdjustStock(c.Request.Context(), id, *req.Stock)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// HandleAdjustPrice handles POST /v1/catalog/:id/price
func HandleAdjustPrice(repos *repository.Repositories, opts analytics.Options, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseItemID(c)
		if !ok {
			return
		}

		var req service.PriceAdjustmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err)
			return
		}

		catalogService := service.NewCatalogService(repos, opts, logger)
		item, err := catalogService.AdjustPrice(c.Request.Context(), id, *req.SalePrice)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, item)
	}
}
