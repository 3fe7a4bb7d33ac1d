package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and session routes.
func RegisterAuthRoutes(rg *gin.RouterGroup, authHandler handlers.AuthHandlerInterface, authMiddleware gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	session := rg.Group("/auth")
	session.Use(authMiddleware)
	{
		session.GET("/me", authHandler.Me)
		session.POST("/logout", authHandler.Logout)
		session.POST("/verification", authHandler.SendVerification)
		session.POST("/verify-email", authHandler.VerifyEmail)
	}
}

// RegisterProfileRoutes registers the candidate profile and upload routes.
func RegisterProfileRoutes(rg *gin.RouterGroup, profileHandler handlers.ProfileHandlerInterface, authMiddleware, candidateOnly gin.HandlerFunc) {
	candidates := rg.Group("/candidates/me")
	candidates.Use(authMiddleware, candidateOnly)
	{
		candidates.GET("", profileHandler.GetCandidate)
		candidates.PUT("", profileHandler.UpdateCandidate)
		candidates.POST("/cv", profileHandler.UploadCV)
	}

	uploads := rg.Group("/uploads")
	uploads.Use(authMiddleware)
	{
		uploads.POST("", profileHandler.Upload)
	}
}
