package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/Sonder9999/Daily-Web/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy"`
	Timestamp time.Time         `json:"timestamp" example:"2025-04-17T02:00:00Z"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// SetupHealthRoutes registers health check endpoints. Readiness runs every
// check and answers 503 if any of them fails.
func SetupHealthRoutes(router *gin.Engine, checks map[string]HealthCheck) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
		})
	})

	router.GET("/health/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "ready", http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status, code = "unavailable", http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		c.JSON(code, HealthResponse{
			Status:    status,
			Timestamp: time.Now().UTC(),
			Checks:    results,
		})
	})

	router.GET("/api/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.PingResponse{
			Message:   "API服务器正常运行",
			Timestamp: time.Now().UTC(),
		})
	})
}
