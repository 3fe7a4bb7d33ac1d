package handlers

import (
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// NotificationHandler serves the user's inbox.
type NotificationHandler struct {
	service   services.NotificationService
	validator *validator.Validate
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service services.NotificationService, validate *validator.Validate) *NotificationHandler {
	return &NotificationHandler{service: service, validator: validate}
}

// ListNotifications godoc
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Param        unread query     bool false "Only unread notifications"
// @Success      200 {object}  dto.NotificationsResponse
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.ListNotificationsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	resp, err := h.service.List(c.Request.Context(), identity, req.UnreadOnly)
	if err != nil {
		respondError(c, err, "retrieve notifications")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkNotificationRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Param        id  path      string true "Notification ID" Format(uuid)
// @Success      204 "Marked as read"
// @Failure      404 {object}  map[string]string "Notification not found"
// @Router       /notifications/{id}/read [post]
// @Security     BearerAuth
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "notification")
	if !ok {
		return
	}
	if err := h.service.MarkRead(c.Request.Context(), identity, id); err != nil {
		respondError(c, err, "mark notification read")
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllNotificationsRead godoc
// @Summary      Mark every notification as read
// @Tags         notifications
// @Produce      json
// @Success      200 {object}  dto.CountResponse
// @Router       /notifications/read [post]
// @Security     BearerAuth
func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	n, err := h.service.MarkAllRead(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "mark notifications read")
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}
