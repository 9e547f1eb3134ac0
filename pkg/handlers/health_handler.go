package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck ヘルスチェックエンドポイント
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Order Forecast API",
	})
}
