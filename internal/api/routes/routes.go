package routes

import (
	"log"
	"strings"

	"recruit-api/internal/api/handlers"
	"recruit-api/internal/api/middleware"
	"recruit-api/internal/app"
	"recruit-api/internal/models"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	// Create handlers
	authHandler := handlers.NewAuthHandler(app.Accounts, app.Validator)
	profileHandler := handlers.NewProfileHandler(app.Profiles, app.Validator)
	offerHandler := handlers.NewOfferHandler(app.Offers, app.Validator)
	applicationHandler := handlers.NewApplicationHandler(app.Applications, app.Validator)
	interviewHandler := handlers.NewInterviewHandler(app.Interviews, app.Validator)
	conversationHandler := handlers.NewConversationHandler(app.Conversations, app.Validator)
	recruiterHandler := handlers.NewRecruiterHandler(app.Recruiters, app.Validator)
	adminHandler := handlers.NewAdminHandler(app.Admin, app.Validator)
	supportHandler := handlers.NewSupportHandler(app.Support, app.Validator)
	notificationHandler := handlers.NewNotificationHandler(app.Notifications, app.Validator)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Tokens)
	optionalAuth := middleware.OptionalAuth(app.Tokens)
	candidateOnly := middleware.RequireRole(models.RoleCandidate)
	recruiterOnly := middleware.RequireRole(models.RoleRecruiter)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// --- Register Resource Routes ---
	RegisterAuthRoutes(apiV1, authHandler, authMiddleware)
	RegisterProfileRoutes(apiV1, profileHandler, authMiddleware, candidateOnly)
	RegisterOfferRoutes(apiV1, offerHandler, optionalAuth, authMiddleware, recruiterOnly)
	RegisterApplicationRoutes(apiV1, applicationHandler, interviewHandler, conversationHandler, authMiddleware, candidateOnly, recruiterOnly)
	RegisterRecruiterRoutes(apiV1, recruiterHandler, authMiddleware, recruiterOnly)
	RegisterMessagingRoutes(apiV1, conversationHandler, supportHandler, notificationHandler, authMiddleware)
	RegisterAdminRoutes(apiV1, adminHandler, offerHandler, applicationHandler, recruiterHandler, supportHandler, authMiddleware, adminOnly)

	// --- Health and metrics ---
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.Readiness(app.Checks))
	router.GET("/metrics", gin.WrapH(app.Metrics.Handler()))

	// Uploaded files are served from disk when the public URL is local.
	if public := app.Config.Uploads.PublicURL; strings.HasPrefix(public, "/") {
		router.Static(public, app.Config.Uploads.Dir)
	}

	log.Println("Configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
