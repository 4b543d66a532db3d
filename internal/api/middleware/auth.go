package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/retailops/internal/domain"
	"github.com/jafarshop/retailops/internal/repository"
)

const operatorContextKey = "operator"

// AuthMiddleware authenticates the caller from "Authorization: Bearer <api key>"
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		apiKey := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if apiKey == "" || apiKey == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		operator, err := repos.Operator.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			logger.Warn("Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(operatorContextKey, operator)
		c.Next()
	}
}

// GetOperatorFromContext returns the operator set by AuthMiddleware
func GetOperatorFromContext(c *gin.Context) (*domain.Operator, bool) {
	v, ok := c.Get(operatorContextKey)
	if !ok {
		return nil, false
	}
	operator, ok := v.(*domain.Operator)
	return operator, ok
}
