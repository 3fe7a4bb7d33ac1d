package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers every back-office route. The role check
// only admits admins; each service call then checks the capability it needs.
func RegisterAdminRoutes(
	rg *gin.RouterGroup,
	adminHandler handlers.AdminHandlerInterface,
	offerHandler handlers.OfferHandlerInterface,
	applicationHandler handlers.ApplicationHandlerInterface,
	recruiterHandler handlers.RecruiterHandlerInterface,
	supportHandler handlers.SupportHandlerInterface,
	authMiddleware, adminOnly gin.HandlerFunc,
) {
	admin := rg.Group("/admin")
	admin.Use(authMiddleware, adminOnly)

	users := admin.Group("/users")
	{
		users.GET("", adminHandler.ListUsers)
		users.POST("/:id/suspend", adminHandler.SuspendUser)
		users.POST("/:id/ban", adminHandler.BanUser)
		users.POST("/:id/reactivate", adminHandler.ReactivateUser)
	}

	companies := admin.Group("/companies")
	{
		companies.GET("", adminHandler.ListCompanies)
		companies.POST("", adminHandler.CreateCompany)
		companies.POST("/:id/activate", adminHandler.ActivateCompany)
		companies.POST("/:id/reject", adminHandler.RejectCompany)
	}

	admins := admin.Group("/admins")
	{
		admins.GET("", adminHandler.ListAdmins)
		admins.POST("", adminHandler.CreateAdmin)
		admins.PATCH("/:id/permissions", adminHandler.UpdateAdminPermissions)
		admins.DELETE("/:id", adminHandler.DeleteAdmin)
	}

	offers := admin.Group("/offers")
	{
		offers.GET("", offerHandler.ListModerationQueue)
		offers.PUT("/:id", offerHandler.AdminUpdateOffer)
		offers.POST("/:id/moderation", offerHandler.ModerateOffer)
		offers.PATCH("/:id/visibility", offerHandler.SetOfferVisibility)
		offers.POST("/:id/proposals", applicationHandler.ProposeCandidate)
	}

	recruiters := admin.Group("/recruiters")
	{
		recruiters.GET("", recruiterHandler.ListRecruiters)
		recruiters.GET("/:id", recruiterHandler.GetRecruiter)
		recruiters.POST("/:id/validation-requests", recruiterHandler.RequestValidation)
		recruiters.DELETE("/:id/validation-requests", recruiterHandler.CancelRequests)
		recruiters.POST("/:id/validation-requests/:requestId/review", recruiterHandler.ReviewResponse)
		recruiters.POST("/:id/validate", recruiterHandler.ValidateRecruiter)
		recruiters.POST("/:id/reject", recruiterHandler.RejectRecruiter)
	}

	support := admin.Group("/support/tickets")
	{
		support.GET("", supportHandler.ListTickets)
		support.PATCH("/:id/status", supportHandler.SetTicketStatus)
	}

	admin.GET("/logs", adminHandler.ListLogs)
	admin.GET("/settings/email-mode", adminHandler.GetEmailMode)
	admin.PUT("/settings/email-mode", adminHandler.SetEmailMode)
}
