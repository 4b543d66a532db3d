package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/api/middleware"
	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/internal/service"
)

// HandleQuote handles POST /v1/checkout/quote
func HandleQuote(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err)
			return
		}

		checkoutService := service.NewCheckoutService(repos, logger)
		quote, err := checkoutService.Quote(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, quote)
	}
}

// HandleCheckout handles POST /v1/checkout
func HandleCheckout(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		operator, ok := middleware.GetOperatorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err)
			return
		}

		checkoutService := service.NewCheckoutService(repos, logger.With(zap.String("operator", operator.Name)))
		sale, err := checkoutService.Checkout(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, sale)
	}
}
