package routes

import (
	"recruit-api/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterMessagingRoutes registers conversations, support tickets and the
// notification inbox.
func RegisterMessagingRoutes(
	rg *gin.RouterGroup,
	conversationHandler handlers.ConversationHandlerInterface,
	supportHandler handlers.SupportHandlerInterface,
	notificationHandler handlers.NotificationHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	conversations := rg.Group("/conversations")
	conversations.Use(authMiddleware)
	{
		conversations.GET("", conversationHandler.ListConversations)
		conversations.GET("/:id", conversationHandler.GetConversation)
		conversations.POST("/:id/messages", conversationHandler.SendMessage)
		conversations.POST("/:id/read", conversationHandler.MarkConversationRead)
	}

	tickets := rg.Group("/support/tickets")
	tickets.Use(authMiddleware)
	{
		tickets.POST("", supportHandler.OpenTicket)
		tickets.GET("", supportHandler.ListMyTickets)
		tickets.GET("/:id", supportHandler.GetTicket)
		tickets.POST("/:id/messages", supportHandler.ReplyTicket)
	}

	notifications := rg.Group("/notifications")
	notifications.Use(authMiddleware)
	{
		notifications.GET("", notificationHandler.ListNotifications)
		notifications.POST("/read-all", notificationHandler.MarkAllNotificationsRead)
		notifications.POST("/:id/read", notificationHandler.MarkNotificationRead)
	}
}
