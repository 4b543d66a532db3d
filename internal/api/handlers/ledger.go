package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/internal/service"
)

// HandleRecordPurchase handles POST /v1/ledger/purchases
func HandleRecordPurchase(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LedgerEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err)
			return
		}

		ledgerService := service.NewLedgerService(repos, logger)
		doc, err := ledgerService.RecordPurchase(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, doc)
	}
}

// HandleRecordExpense handles POST /v1/ledger/expenses
func HandleRecordExpense(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LedgerEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindFailed(c, err)
			return
		}

		ledgerService := service.NewLedgerService(repos, logger)
		doc, err := ledgerService.RecordExpense(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, doc)
	}
}
