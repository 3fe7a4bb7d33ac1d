package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers the candidate and recruiter sides of
// the application pipeline, interviews included.
func RegisterApplicationRoutes(
	rg *gin.RouterGroup,
	applicationHandler handlers.ApplicationHandlerInterface,
	interviewHandler handlers.InterviewHandlerInterface,
	conversationHandler handlers.ConversationHandlerInterface,
	authMiddleware, candidateOnly, recruiterOnly gin.HandlerFunc,
) {
	apps := rg.Group("/applications")
	apps.Use(authMiddleware)
	{
		apps.POST("", candidateOnly, applicationHandler.Apply)
		apps.GET("", candidateOnly, applicationHandler.ListMyApplications)
		apps.GET("/:id", candidateOnly, applicationHandler.GetMyApplication)
		apps.POST("/:id/withdraw", candidateOnly, applicationHandler.WithdrawApplication)
		apps.POST("/:id/cancel", candidateOnly, applicationHandler.CancelApplication)
		apps.GET("/:id/interviews", interviewHandler.ListInterviews) // both parties
	}

	offers := rg.Group("/recruiter/offers")
	offers.Use(authMiddleware, recruiterOnly)
	{
		offers.GET("/:id/applications", applicationHandler.ListOfferApplications)
		offers.POST("/:id/applications/seen", applicationHandler.MarkOfferApplicationsSeen)
	}

	recruiter := rg.Group("/recruiter/applications")
	recruiter.Use(authMiddleware, recruiterOnly)
	{
		recruiter.GET("/:id", applicationHandler.GetApplication)
		recruiter.PATCH("/:id/status", applicationHandler.TransitionApplication)
		recruiter.PATCH("/:id/star", applicationHandler.StarApplication)
		recruiter.POST("/:id/interviews", interviewHandler.ProposeInterview)
		recruiter.POST("/:id/conversation", conversationHandler.OpenConversation)
	}

	interviews := rg.Group("/interviews")
	interviews.Use(authMiddleware)
	{
		interviews.POST("/:id/confirm", interviewHandler.ConfirmInterview)
		interviews.POST("/:id/reschedule", interviewHandler.RescheduleInterview)
		interviews.POST("/:id/accept", interviewHandler.AcceptAlternative)
		interviews.POST("/:id/cancel", interviewHandler.CancelInterview)
	}
	rg.POST("/recruiter/interviews/:id/close", authMiddleware, recruiterOnly, interviewHandler.CloseInterview)
}
