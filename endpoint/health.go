package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0"

// Health godoc
// @Summary      Liveness check
// @Description  Report whether the service is up
// @Tags         Health
// @Produce      json
// @Success      200 {object} map[string]string "Service is up"
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": apiVersion})
}
