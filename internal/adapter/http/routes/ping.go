package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// addPingRoutes registers the health check.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200
// @Router       /ping [get]
func addPingRoutes(rg *gin.RouterGroup, gatewayState func() string) {
	rg.GET("/ping", func(c *gin.Context) {
		state := "not_configured"
		if gatewayState != nil {
			state = gatewayState()
		}
		c.JSON(http.StatusOK, gin.H{"message": "pong", "gateway": state})
	})
}
