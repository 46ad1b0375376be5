package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoutes registers the health check and the Prometheus scrape endpoint
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
