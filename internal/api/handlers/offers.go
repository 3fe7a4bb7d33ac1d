package handlers

import (
	"net/http"

	"recruit-api/internal/api/middleware"
	"recruit-api/internal/models"
	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// OfferHandler holds dependencies for offer operations.
type OfferHandler struct {
	service   services.OfferService
	validator *validator.Validate
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(service services.OfferService, validate *validator.Validate) *OfferHandler {
	return &OfferHandler{service: service, validator: validate}
}

// ListOffers godoc
// @Summary      List published offers
// @Description  Returns approved, open offers. Supports free text, location and contract filters.
// @Tags         offers
// @Produce      json
// @Param        q            query     string false "Free text"
// @Param        location     query     string false "Location"
// @Param        contractType query     string false "Contract type"
// @Param        limit        query     int    false "Page size" default(20)
// @Param        offset       query     int    false "Offset" default(0)
// @Success      200 {array}   models.Offer
// @Failure      400 {object}  map[string]string "Bad Request - Invalid filters"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /offers [get]
func (h *OfferHandler) ListOffers(c *gin.Context) {
	var req dto.ListOffersRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	offers, err := h.service.ListPublic(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "retrieve offers")
		return
	}
	c.JSON(http.StatusOK, offers)
}

// GetOffer godoc
// @Summary      Get an offer
// @Description  Unpublished offers are only visible to their owner and moderators.
// @Tags         offers
// @Produce      json
// @Param        id  path      string true "Offer ID" Format(uuid)
// @Success      200 {object}  models.Offer
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      404 {object}  map[string]string "Offer not found"
// @Router       /offers/{id} [get]
func (h *OfferHandler) GetOffer(c *gin.Context) {
	id, ok := pathID(c, "id", "offer")
	if !ok {
		return
	}
	var actor *models.Identity
	if identity, found := middleware.GetIdentityFromContext(c); found {
		actor = &identity
	}
	offer, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err, "retrieve offer")
		return
	}
	c.JSON(http.StatusOK, offer)
}

// CreateOffer godoc
// @Summary      Create an offer
// @Description  Validated recruiters of an active company with posting rights create offers. Non-draft offers enter moderation.
// @Tags         recruiter-offers
// @Accept       json
// @Produce      json
// @Param        offer body      dto.CreateOfferRequest true  "Offer details"
// @Success      201 {object}  models.Offer
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      403 {object}  map[string]string "Posting precondition failed"
// @Router       /recruiter/offers [post]
// @Security     BearerAuth
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateOfferRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	offer, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "create offer")
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// ListMyOffers godoc
// @Summary      List my offers
// @Tags         recruiter-offers
// @Produce      json
// @Success      200 {array}   models.Offer
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /recruiter/offers [get]
// @Security     BearerAuth
func (h *OfferHandler) ListMyOffers(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	offers, err := h.service.ListMine(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "retrieve offers")
		return
	}
	c.JSON(http.StatusOK, offers)
}

// UpdateOffer godoc
// @Summary      Edit an offer
// @Description  Allowed while the offer is a draft, pending, or waiting for changes.
// @Tags         recruiter-offers
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Offer ID" Format(uuid)
// @Param        offer body      dto.UpdateOfferRequest true  "Fields to change"
// @Success      200 {object}  models.Offer
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      403 {object}  map[string]string "Not the owner"
// @Failure      404 {object}  map[string]string "Offer not found"
// @Failure      409 {object}  map[string]string "Offer can no longer be edited"
// @Router       /recruiter/offers/{id} [put]
// @Security     BearerAuth
func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "offer")
	if !ok {
		return
	}
	var req dto.UpdateOfferRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	offer, err := h.service.Update(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "update offer")
		return
	}
	c.JSON(http.StatusOK, offer)
}

// SubmitOffer godoc
// @Summary      Submit an offer for moderation
// @Tags         recruiter-offers
// @Produce      json
// @Param        id  path      string true "Offer ID" Format(uuid)
// @Success      200 {object}  models.Offer
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Offer not found"
// @Router       /recruiter/offers/{id}/submit [post]
// @Security     BearerAuth
func (h *OfferHandler) SubmitOffer(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "offer")
	if !ok {
		return
	}
	offer, err := h.service.Submit(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "submit offer")
		return
	}
	c.JSON(http.StatusOK, offer)
}

// SetOfferOpen godoc
// @Summary      Open or close an approved offer
// @Tags         recruiter-offers
// @Accept       json
// @Produce      json
// @Param        id   path      string                true "Offer ID" Format(uuid)
// @Param        body body      dto.VisibilityRequest true "Target state"
// @Success      200 {object}  models.Offer
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      409 {object}  map[string]string "Offer is not approved"
// @Router       /recruiter/offers/{id}/visibility [patch]
// @Security     BearerAuth
func (h *OfferHandler) SetOfferOpen(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "offer")
	if !ok {
		return
	}
	var req dto.VisibilityRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	offer, err := h.service.SetOpen(c.Request.Context(), identity, id, *req.Actif)
	if err != nil {
		respondError(c, err, "change offer visibility")
		return
	}
	c.JSON(http.StatusOK, offer)
}

// ListModerationQueue godoc
// @Summary      List offers for moderation
// @Tags         admin-offers
// @Produce      json
// @Param        status query     string false "Validation status" Enums(draft, pending, approved, rejected, changes_requested)
// @Param        limit  query     int    false "Page size" default(50)
// @Param        offset query     int    false "Offset" default(0)
// @Success      200 {array}   models.Offer
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/offers [get]
// @Security     BearerAuth
func (h *OfferHandler) ListModerationQueue(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.AdminListOffersRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	offers, err := h.service.ListForModeration(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "retrieve moderation queue")
		return
	}
	c.JSON(http.StatusOK, offers)
}

// ModerateOffer godoc
// @Summary      Moderate an offer
// @Description  Approves, rejects or requests changes on a pending offer. A reason is required unless approving.
// @Tags         admin-offers
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true "Offer ID" Format(uuid)
// @Param        decision body      dto.ModerateOfferRequest true "Decision"
// @Success      200 {object}  models.Offer
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition or missing reason"
// @Failure      403 {object}  map[string]string "Missing capability"
// @Failure      404 {object}  map[string]string "Offer not found"
// @Router       /admin/offers/{id}/moderation [post]
// @Security     BearerAuth
func (h *OfferHandler) ModerateOffer(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "offer")
	if !ok {
		return
	}
	var req dto.ModerateOfferRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	offer, err := h.service.Moderate(c.Request.Context(), identity, id, req.Decision, req.Reason)
	if err != nil {
		respondError(c, err, "moderate offer")
		return
	}
	c.JSON(http.StatusOK, offer)
}

// SetOfferVisibility godoc
// @Summary      Hide or show an offer
// @Tags         admin-offers
// @Accept       json
// @Produce      json
// @Param        id   path      string                true "Offer ID" Format(uuid)
// @Param        body body      dto.VisibilityRequest true "Target state"
// @Success      200 {object}  models.Offer
// @Failure      403 {object}  map[string]string "Missing capability"
// @Failure      404 {object}  map[string]string "Offer not found"
// @Router       /admin/offers/{id}/visibility [patch]
// @Security     BearerAuth
func (h *OfferHandler) SetOfferVisibility(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "offer")
	if !ok {
		return
	}
	var req dto.VisibilityRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	offer, err := h.service.SetVisibility(c.Request.Context(), identity, id, *req.Actif)
	if err != nil {
		respondError(c, err, "change offer visibility")
		return
	}
	c.JSON(http.StatusOK, offer)
}

// AdminUpdateOffer godoc
// @Summary      Edit an offer as a moderator
// @Tags         admin-offers
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true "Offer ID" Format(uuid)
// @Param        offer body      dto.UpdateOfferRequest true "Fields to change"
// @Success      200 {object}  models.Offer
// @Failure      403 {object}  map[string]string "Missing capability"
// @Failure      404 {object}  map[string]string "Offer not found"
// @Router       /admin/offers/{id} [put]
// @Security     BearerAuth
func (h *OfferHandler) AdminUpdateOffer(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "offer")
	if !ok {
		return
	}
	var req dto.UpdateOfferRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	offer, err := h.service.AdminUpdate(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "update offer")
		return
	}
	c.JSON(http.StatusOK, offer)
}
