package middleware

import (
	"log"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/services"

	"github.com/gin-gonic/gin"
)

// quietPaths are probed constantly and only logged when they fail.
var quietPaths = map[string]bool{"/health": true, "/ready": true, "/metrics": true}

// Logger logs method, path, client, status, latency and, once the auth
// middleware ran, the acting user.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if quietPaths[c.Request.URL.Path] && status < 400 {
			return
		}
		actor := "-"
		if identity, ok := GetIdentityFromContext(c); ok {
			actor = string(identity.Role) + ":" + identity.UserID.String()
		}
		log.Printf("[%s] %s %s %s %d %s",
			c.Request.Method, c.Request.URL.Path, c.ClientIP(), actor, status, time.Since(start))
	}
}

// RequestMeta stores the client address and user agent on the request
// context so audit entries can record them.
func RequestMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := services.WithRequestMeta(c.Request.Context(), models.RequestMeta{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
