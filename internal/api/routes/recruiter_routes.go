package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRecruiterRoutes registers a recruiter's own profile, validation
// answers and company team.
func RegisterRecruiterRoutes(rg *gin.RouterGroup, recruiterHandler handlers.RecruiterHandlerInterface, authMiddleware, recruiterOnly gin.HandlerFunc) {
	recruiter := rg.Group("/recruiter")
	recruiter.Use(authMiddleware, recruiterOnly)
	{
		recruiter.GET("/me", recruiterHandler.GetMyProfile)
		recruiter.PUT("/me", recruiterHandler.UpdateMyProfile)
		recruiter.POST("/validation-requests/:id/response", recruiterHandler.RespondToRequest)
		recruiter.GET("/team", recruiterHandler.ListTeam)
		recruiter.PATCH("/team/:id/permissions", recruiterHandler.UpdateTeamPermissions)
	}
}
