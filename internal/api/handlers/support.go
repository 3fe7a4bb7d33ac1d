package handlers

import (
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SupportHandler serves support tickets for users and the support desk.
type SupportHandler struct {
	service   services.SupportService
	validator *validator.Validate
}

// NewSupportHandler creates a new SupportHandler.
func NewSupportHandler(service services.SupportService, validate *validator.Validate) *SupportHandler {
	return &SupportHandler{service: service, validator: validate}
}

// OpenTicket godoc
// @Summary      Open a support ticket
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        ticket body      dto.CreateTicketRequest true "Ticket"
// @Success      201 {object}  models.SupportTicket
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Router       /support/tickets [post]
// @Security     BearerAuth
func (h *SupportHandler) OpenTicket(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateTicketRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	ticket, err := h.service.Open(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "open ticket")
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// ListMyTickets godoc
// @Summary      List my tickets
// @Tags         support
// @Produce      json
// @Success      200 {array}   models.SupportTicket
// @Router       /support/tickets [get]
// @Security     BearerAuth
func (h *SupportHandler) ListMyTickets(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	tickets, err := h.service.ListMine(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "retrieve tickets")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetTicket godoc
// @Summary      Get a ticket
// @Tags         support
// @Produce      json
// @Param        id  path      string true "Ticket ID" Format(uuid)
// @Success      200 {object}  models.SupportTicket
// @Failure      404 {object}  map[string]string "Ticket not found"
// @Router       /support/tickets/{id} [get]
// @Security     BearerAuth
func (h *SupportHandler) GetTicket(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "ticket")
	if !ok {
		return
	}
	ticket, err := h.service.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "retrieve ticket")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// ReplyTicket godoc
// @Summary      Reply to a ticket
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        id      path      string                 true "Ticket ID" Format(uuid)
// @Param        message body      dto.SendMessageRequest true "Reply"
// @Success      201 {object}  models.SupportTicket
// @Failure      404 {object}  map[string]string "Ticket not found"
// @Failure      409 {object}  map[string]string "Ticket is closed"
// @Router       /support/tickets/{id}/messages [post]
// @Security     BearerAuth
func (h *SupportHandler) ReplyTicket(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "ticket")
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	ticket, err := h.service.Reply(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "reply to ticket")
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// ListTickets godoc
// @Summary      List the support queue
// @Tags         admin-support
// @Produce      json
// @Param        status query     string false "Ticket status" Enums(open, in_progress, resolved, closed)
// @Success      200 {array}   models.SupportTicket
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/support/tickets [get]
// @Security     BearerAuth
func (h *SupportHandler) ListTickets(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.ListTicketsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	tickets, err := h.service.List(c.Request.Context(), identity, req.Status)
	if err != nil {
		respondError(c, err, "retrieve tickets")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// SetTicketStatus godoc
// @Summary      Change a ticket status
// @Tags         admin-support
// @Accept       json
// @Produce      json
// @Param        id   path      string                  true "Ticket ID" Format(uuid)
// @Param        body body      dto.TicketStatusRequest true "Status"
// @Success      200 {object}  models.SupportTicket
// @Failure      403 {object}  map[string]string "Missing capability"
// @Failure      404 {object}  map[string]string "Ticket not found"
// @Router       /admin/support/tickets/{id}/status [patch]
// @Security     BearerAuth
func (h *SupportHandler) SetTicketStatus(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "ticket")
	if !ok {
		return
	}
	var req dto.TicketStatusRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	ticket, err := h.service.SetStatus(c.Request.Context(), identity, id, req.Status)
	if err != nil {
		respondError(c, err, "update ticket status")
		return
	}
	c.JSON(http.StatusOK, ticket)
}
