package handlers

import (
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ApplicationHandler holds dependencies for the application pipeline.
type ApplicationHandler struct {
	service   services.ApplicationService
	validator *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, validate *validator.Validate) *ApplicationHandler {
	return &ApplicationHandler{service: service, validator: validate}
}

// Apply godoc
// @Summary      Apply to an offer
// @Description  Requires a verified email. One application per candidate and offer.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application body      dto.ApplyRequest true  "Application"
// @Success      201 {object}  models.Application
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      403 {object}  map[string]string "Email not verified"
// @Failure      404 {object}  map[string]string "Offer not found"
// @Failure      409 {object}  map[string]string "Already applied"
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	app, err := h.service.Apply(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "create application")
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ProposeCandidate godoc
// @Summary      Propose a candidate for an offer
// @Description  Only for published offers with candidate search set to manual or automatic.
// @Tags         admin-offers
// @Accept       json
// @Produce      json
// @Param        id   path      string                      true "Offer ID" Format(uuid)
// @Param        body body      dto.ProposeCandidateRequest true "Candidate"
// @Success      201 {object}  models.Application
// @Failure      403 {object}  map[string]string "Missing capability or search disabled"
// @Failure      409 {object}  map[string]string "Candidate already applied"
// @Router       /admin/offers/{id}/proposals [post]
// @Security     BearerAuth
func (h *ApplicationHandler) ProposeCandidate(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	offerID, ok := pathID(c, "id", "offer")
	if !ok {
		return
	}
	var req dto.ProposeCandidateRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	app, err := h.service.Propose(c.Request.Context(), identity, offerID, &req)
	if err != nil {
		respondError(c, err, "propose candidate")
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListMyApplications godoc
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Success      200 {array}   models.Application
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	apps, err := h.service.ListMine(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "retrieve applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

// GetMyApplication godoc
// @Summary      Get one of my applications
// @Tags         applications
// @Produce      json
// @Param        id  path      string true "Application ID" Format(uuid)
// @Success      200 {object}  models.Application
// @Failure      404 {object}  map[string]string "Application not found"
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplication(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "application")
	if !ok {
		return
	}
	app, err := h.service.GetForCandidate(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "retrieve application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// WithdrawApplication godoc
// @Summary      Withdraw an application
// @Description  Withdraws at any non-terminal stage and cancels upcoming interviews.
// @Tags         applications
// @Produce      json
// @Param        id  path      string true "Application ID" Format(uuid)
// @Success      200 {object}  models.Application
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition"
// @Failure      404 {object}  map[string]string "Application not found"
// @Router       /applications/{id}/withdraw [post]
// @Security     BearerAuth
func (h *ApplicationHandler) WithdrawApplication(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "application")
	if !ok {
		return
	}
	app, err := h.service.Withdraw(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "withdraw application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// CancelApplication godoc
// @Summary      Cancel an unseen application
// @Description  Only possible while the recruiter has not opened the application.
// @Tags         applications
// @Produce      json
// @Param        id  path      string true "Application ID" Format(uuid)
// @Success      200 {object}  models.Application
// @Failure      403 {object}  map[string]string "Already seen by the recruiter"
// @Failure      404 {object}  map[string]string "Application not found"
// @Router       /applications/{id}/cancel [post]
// @Security     BearerAuth
func (h *ApplicationHandler) CancelApplication(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "application")
	if !ok {
		return
	}
	app, err := h.service.Cancel(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "cancel application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// ListOfferApplications godoc
// @Summary      List applications of one of my offers
// @Tags         recruiter-applications
// @Produce      json
// @Param        id     path      string true  "Offer ID" Format(uuid)
// @Param        status query     string false "Recruiter status"
// @Success      200 {array}   models.Application
// @Failure      403 {object}  map[string]string "Not the owner"
// @Failure      404 {object}  map[string]string "Offer not found"
// @Router       /recruiter/offers/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListOfferApplications(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "offer")
	if !ok {
		return
	}
	var req dto.ListOfferApplicationsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	apps, err := h.service.ListForOffer(c.Request.Context(), identity, id, req.Status)
	if err != nil {
		respondError(c, err, "retrieve applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

// MarkOfferApplicationsSeen godoc
// @Summary      Mark all applications of an offer as seen
// @Tags         recruiter-applications
// @Produce      json
// @Param        id  path      string true "Offer ID" Format(uuid)
// @Success      200 {object}  dto.MarkSeenResponse
// @Failure      403 {object}  map[string]string "Not the owner"
// @Router       /recruiter/offers/{id}/applications/seen [post]
// @Security     BearerAuth
func (h *ApplicationHandler) MarkOfferApplicationsSeen(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "offer")
	if !ok {
		return
	}
	resp, err := h.service.MarkAllSeen(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "mark applications seen")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetApplication godoc
// @Summary      Open an application as its recruiter
// @Description  The first opening marks the application as seen and closes the candidate cancel window.
// @Tags         recruiter-applications
// @Produce      json
// @Param        id  path      string true "Application ID" Format(uuid)
// @Success      200 {object}  models.Application
// @Failure      403 {object}  map[string]string "Not the owner"
// @Failure      404 {object}  map[string]string "Application not found"
// @Router       /recruiter/applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "application")
	if !ok {
		return
	}
	app, err := h.service.GetForRecruiter(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "retrieve application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// TransitionApplication godoc
// @Summary      Change an application status
// @Description  Moves the application along the recruiter pipeline. Illegal moves answer 400 with the current and requested statuses.
// @Tags         recruiter-applications
// @Accept       json
// @Produce      json
// @Param        id         path      string                true "Application ID" Format(uuid)
// @Param        transition body      dto.TransitionRequest true "Target status"
// @Success      200 {object}  models.Application
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition"
// @Failure      403 {object}  map[string]string "Not the owner"
// @Failure      404 {object}  map[string]string "Application not found"
// @Router       /recruiter/applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) TransitionApplication(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "application")
	if !ok {
		return
	}
	var req dto.TransitionRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	app, err := h.service.Transition(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "update application status")
		return
	}
	c.JSON(http.StatusOK, app)
}

// StarApplication godoc
// @Summary      Star or unstar an application
// @Tags         recruiter-applications
// @Accept       json
// @Produce      json
// @Param        id   path      string          true "Application ID" Format(uuid)
// @Param        body body      dto.StarRequest true "Star flag"
// @Success      200 {object}  models.Application
// @Failure      403 {object}  map[string]string "Not the owner"
// @Router       /recruiter/applications/{id}/star [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) StarApplication(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "application")
	if !ok {
		return
	}
	var req dto.StarRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	app, err := h.service.Star(c.Request.Context(), identity, id, *req.Starred)
	if err != nil {
		respondError(c, err, "star application")
		return
	}
	c.JSON(http.StatusOK, app)
}
