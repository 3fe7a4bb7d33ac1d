package handlers

import (
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// InterviewHandler holds dependencies for interview scheduling.
type InterviewHandler struct {
	service   services.InterviewService
	validator *validator.Validate
}

// NewInterviewHandler creates a new InterviewHandler.
func NewInterviewHandler(service services.InterviewService, validate *validator.Validate) *InterviewHandler {
	return &InterviewHandler{service: service, validator: validate}
}

// ProposeInterview godoc
// @Summary      Propose an interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id        path      string                      true "Application ID" Format(uuid)
// @Param        interview body      dto.ProposeInterviewRequest true "Interview details"
// @Success      201 {object}  models.Interview
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      403 {object}  map[string]string "Not the owner"
// @Router       /recruiter/applications/{id}/interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) ProposeInterview(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	appID, ok := pathID(c, "id", "application")
	if !ok {
		return
	}
	var req dto.ProposeInterviewRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	iv, err := h.service.Propose(c.Request.Context(), identity, appID, &req)
	if err != nil {
		respondError(c, err, "propose interview")
		return
	}
	c.JSON(http.StatusCreated, iv)
}

// ListInterviews godoc
// @Summary      List interviews of an application
// @Description  Available to the candidate and the recruiter of the application.
// @Tags         interviews
// @Produce      json
// @Param        id  path      string true "Application ID" Format(uuid)
// @Success      200 {array}   models.Interview
// @Failure      404 {object}  map[string]string "Application not found"
// @Router       /applications/{id}/interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	appID, ok := pathID(c, "id", "application")
	if !ok {
		return
	}
	ivs, err := h.service.ListForApplication(c.Request.Context(), identity, appID)
	if err != nil {
		respondError(c, err, "retrieve interviews")
		return
	}
	c.JSON(http.StatusOK, ivs)
}

// ConfirmInterview godoc
// @Summary      Confirm an interview
// @Tags         interviews
// @Produce      json
// @Param        id  path      string true "Interview ID" Format(uuid)
// @Success      200 {object}  models.Interview
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Router       /interviews/{id}/confirm [post]
// @Security     BearerAuth
func (h *InterviewHandler) ConfirmInterview(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "interview")
	if !ok {
		return
	}
	iv, err := h.service.Confirm(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "confirm interview")
		return
	}
	c.JSON(http.StatusOK, iv)
}

// RescheduleInterview godoc
// @Summary      Propose another date
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id   path      string                true "Interview ID" Format(uuid)
// @Param        body body      dto.RescheduleRequest true "Alternative date"
// @Success      200 {object}  models.Interview
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition or date"
// @Router       /interviews/{id}/reschedule [post]
// @Security     BearerAuth
func (h *InterviewHandler) RescheduleInterview(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "interview")
	if !ok {
		return
	}
	var req dto.RescheduleRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	iv, err := h.service.Reschedule(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "reschedule interview")
		return
	}
	c.JSON(http.StatusOK, iv)
}

// AcceptAlternative godoc
// @Summary      Accept the other party's date
// @Tags         interviews
// @Produce      json
// @Param        id  path      string true "Interview ID" Format(uuid)
// @Success      200 {object}  models.Interview
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition"
// @Router       /interviews/{id}/accept [post]
// @Security     BearerAuth
func (h *InterviewHandler) AcceptAlternative(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "interview")
	if !ok {
		return
	}
	iv, err := h.service.AcceptAlternative(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "accept interview date")
		return
	}
	c.JSON(http.StatusOK, iv)
}

// CancelInterview godoc
// @Summary      Cancel an interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id   path      string                     true  "Interview ID" Format(uuid)
// @Param        body body      dto.CancelInterviewRequest false "Reason"
// @Success      200 {object}  models.Interview
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition"
// @Router       /interviews/{id}/cancel [post]
// @Security     BearerAuth
func (h *InterviewHandler) CancelInterview(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "interview")
	if !ok {
		return
	}
	var req dto.CancelInterviewRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, h.validator, &req) {
		return
	}
	iv, err := h.service.Cancel(c.Request.Context(), identity, id, req.Reason)
	if err != nil {
		respondError(c, err, "cancel interview")
		return
	}
	c.JSON(http.StatusOK, iv)
}

// CloseInterview godoc
// @Summary      Record the interview outcome
// @Description  A completed interview moves a planned application to entretien_termine.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id   path      string                    true "Interview ID" Format(uuid)
// @Param        body body      dto.CloseInterviewRequest true "Outcome"
// @Success      200 {object}  models.Interview
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition"
// @Router       /recruiter/interviews/{id}/close [post]
// @Security     BearerAuth
func (h *InterviewHandler) CloseInterview(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "interview")
	if !ok {
		return
	}
	var req dto.CloseInterviewRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	iv, err := h.service.Close(c.Request.Context(), identity, id, req.Outcome)
	if err != nil {
		respondError(c, err, "close interview")
		return
	}
	c.JSON(http.StatusOK, iv)
}
