package handlers

import (
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ConversationHandler serves application threads.
type ConversationHandler struct {
	service   services.ConversationService
	validator *validator.Validate
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(service services.ConversationService, validate *validator.Validate) *ConversationHandler {
	return &ConversationHandler{service: service, validator: validate}
}

// OpenConversation godoc
// @Summary      Open the thread of an application
// @Description  Returns the existing thread when one is already open.
// @Tags         conversations
// @Produce      json
// @Param        id  path      string true "Application ID" Format(uuid)
// @Success      200 {object}  models.Conversation
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Application not found"
// @Router       /recruiter/applications/{id}/conversation [post]
// @Security     BearerAuth
func (h *ConversationHandler) OpenConversation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	appID, ok := pathID(c, "id", "application")
	if !ok {
		return
	}
	conv, err := h.service.Open(c.Request.Context(), identity, appID)
	if err != nil {
		respondError(c, err, "open conversation")
		return
	}
	c.JSON(http.StatusOK, conv)
}

// ListConversations godoc
// @Summary      List my conversations
// @Tags         conversations
// @Produce      json
// @Param        active query     bool false "Only threads the candidate answered"
// @Success      200 {array}   models.Conversation
// @Router       /conversations [get]
// @Security     BearerAuth
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.ListConversationsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	convs, err := h.service.List(c.Request.Context(), identity, req.ActiveOnly)
	if err != nil {
		respondError(c, err, "retrieve conversations")
		return
	}
	c.JSON(http.StatusOK, convs)
}

// GetConversation godoc
// @Summary      Get a conversation
// @Tags         conversations
// @Produce      json
// @Param        id  path      string true "Conversation ID" Format(uuid)
// @Success      200 {object}  models.Conversation
// @Failure      404 {object}  map[string]string "Conversation not found"
// @Router       /conversations/{id} [get]
// @Security     BearerAuth
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "conversation")
	if !ok {
		return
	}
	conv, err := h.service.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "retrieve conversation")
		return
	}
	c.JSON(http.StatusOK, conv)
}

// SendMessage godoc
// @Summary      Post a message
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        id      path      string                 true "Conversation ID" Format(uuid)
// @Param        message body      dto.SendMessageRequest true "Message"
// @Success      201 {object}  models.Conversation
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      404 {object}  map[string]string "Conversation not found"
// @Router       /conversations/{id}/messages [post]
// @Security     BearerAuth
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "conversation")
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	conv, err := h.service.Send(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "send message")
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// MarkConversationRead godoc
// @Summary      Mark a conversation as read
// @Tags         conversations
// @Produce      json
// @Param        id  path      string true "Conversation ID" Format(uuid)
// @Success      200 {object}  models.Conversation
// @Failure      404 {object}  map[string]string "Conversation not found"
// @Router       /conversations/{id}/read [post]
// @Security     BearerAuth
func (h *ConversationHandler) MarkConversationRead(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "conversation")
	if !ok {
		return
	}
	conv, err := h.service.MarkRead(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "mark conversation read")
		return
	}
	c.JSON(http.StatusOK, conv)
}
