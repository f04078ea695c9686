package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

type configurer interface {
	Configured() bool
}

// HandleHealth returns the health status of the service. An unconfigured
// content source is reported as degraded, not as a failure.
func HandleHealth(src configurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, content := "healthy", "configured"
		if !src.Configured() {
			status, content = "degraded", "unconfigured"
		}
		c.JSON(http.StatusOK, HealthResponse{
			Status:    status,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Content:   content,
		})
	}
}

// HandleReadiness returns whether the service serves real content.
// Stricter than health.
func HandleReadiness(src configurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !src.Configured() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"reason": "content_source_not_configured",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
