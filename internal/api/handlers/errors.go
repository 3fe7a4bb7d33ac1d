package handlers

import (
	"errors"
	"log"
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/workflow"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP response. action names the
// failed operation in the 500 message ("create offer").
func respondError(c *gin.Context, err error, action string) {
	var transitionErr *workflow.TransitionError
	var preconditionErr *services.PreconditionError

	switch {
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid status transition",
			"current":   transitionErr.Current,
			"requested": transitionErr.Requested,
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &preconditionErr):
		c.JSON(http.StatusForbidden, gin.H{"error": preconditionErr.Message, "code": preconditionErr.Code})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended or banned"})
	default:
		log.Printf("Error trying to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
