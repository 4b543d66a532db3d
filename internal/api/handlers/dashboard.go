package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/analytics"
	"github.com/jafarshop/retailops/internal/repository"
	"github.com/jafarshop/retailops/internal/service"
	"github.com/jafarshop/retailops/internal/timewindow"
)

// HandleDashboard handles GET /v1/dashboard?period=day|week|month|year
// An unknown period falls back to day.
func HandleDashboard(repos *repository.Repositories, opts analytics.Options, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := timewindow.ParseMode(c.DefaultQuery("period", string(timewindow.ModeDay)))

		dashboardService := service.NewDashboardService(repos, opts, logger)
		snap, err := dashboardService.Snapshot(c.Request.Context(), mode)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, snap)
	}
}
