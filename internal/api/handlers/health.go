package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a backing service the readiness probe checks.
type Pinger func(ctx context.Context) error

// HealthCheck handles the liveness endpoint
//
//	@Summary		Health check
//	@Description	Check if the service is up and running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]string	"API is healthy"
//	@Router			/health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Readiness returns a handler reporting each backing service.
//
//	@Summary		Readiness check
//	@Description	Pings the database and cache
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]string	"All dependencies reachable"
//	@Failure		503	{object}	map[string]string	"A dependency is down"
//	@Router			/ready [get]
func Readiness(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := gin.H{"status": "ok"}
		for name, ping := range checks {
			if err := ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = err.Error()
				continue
			}
			body[name] = "ok"
		}
		c.JSON(status, body)
	}
}
