package handlers

import (
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RecruiterHandler serves recruiter profiles, company teams and the
// validation workflow.
type RecruiterHandler struct {
	service   services.RecruiterService
	validator *validator.Validate
}

// NewRecruiterHandler creates a new RecruiterHandler.
func NewRecruiterHandler(service services.RecruiterService, validate *validator.Validate) *RecruiterHandler {
	return &RecruiterHandler{service: service, validator: validate}
}

// GetMyProfile godoc
// @Summary      Get my recruiter profile
// @Description  Includes the validation status and any open validation requests.
// @Tags         recruiters
// @Produce      json
// @Success      200 {object}  models.Recruiter
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /recruiter/me [get]
// @Security     BearerAuth
func (h *RecruiterHandler) GetMyProfile(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	rec, err := h.service.GetMine(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "retrieve recruiter profile")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateMyProfile godoc
// @Summary      Update my recruiter profile
// @Tags         recruiters
// @Accept       json
// @Produce      json
// @Param        profile body      dto.UpdateRecruiterProfileRequest true "Profile fields"
// @Success      200 {object}  models.Recruiter
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Router       /recruiter/me [put]
// @Security     BearerAuth
func (h *RecruiterHandler) UpdateMyProfile(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.UpdateRecruiterProfileRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	rec, err := h.service.UpdateMine(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "update recruiter profile")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// RespondToRequest godoc
// @Summary      Answer a validation request
// @Tags         recruiters
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true "Validation request ID" Format(uuid)
// @Param        response body      dto.ValidationResponseRequest true "Answer"
// @Success      200 {object}  models.Recruiter
// @Failure      400 {object}  map[string]string "Empty answer"
// @Failure      404 {object}  map[string]string "Request not found"
// @Router       /recruiter/validation-requests/{id}/response [post]
// @Security     BearerAuth
func (h *RecruiterHandler) RespondToRequest(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "validation request")
	if !ok {
		return
	}
	var req dto.ValidationResponseRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	rec, err := h.service.RespondToRequest(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "answer validation request")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListTeam godoc
// @Summary      List my company team
// @Tags         recruiters
// @Produce      json
// @Success      200 {array}   models.Recruiter
// @Failure      403 {object}  map[string]string "Forbidden"
// @Router       /recruiter/team [get]
// @Security     BearerAuth
func (h *RecruiterHandler) ListTeam(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	team, err := h.service.ListTeam(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "retrieve team")
		return
	}
	c.JSON(http.StatusOK, team)
}

// UpdateTeamPermissions godoc
// @Summary      Change a teammate's permissions
// @Description  Requires the team management permission.
// @Tags         recruiters
// @Accept       json
// @Produce      json
// @Param        id          path      string                           true "Recruiter ID" Format(uuid)
// @Param        permissions body      dto.UpdateTeamPermissionsRequest true "Permissions"
// @Success      200 {object}  models.Recruiter
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Recruiter not found"
// @Router       /recruiter/team/{id}/permissions [patch]
// @Security     BearerAuth
func (h *RecruiterHandler) UpdateTeamPermissions(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "recruiter")
	if !ok {
		return
	}
	var req dto.UpdateTeamPermissionsRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	rec, err := h.service.UpdateTeamPermissions(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "update permissions")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListRecruiters godoc
// @Summary      List recruiters
// @Tags         admin-recruiters
// @Produce      json
// @Param        status query     string false "Validation status"
// @Success      200 {array}   models.Recruiter
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/recruiters [get]
// @Security     BearerAuth
func (h *RecruiterHandler) ListRecruiters(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.ListRecruitersRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	recs, err := h.service.List(c.Request.Context(), identity, req.Status)
	if err != nil {
		respondError(c, err, "retrieve recruiters")
		return
	}
	c.JSON(http.StatusOK, recs)
}

// GetRecruiter godoc
// @Summary      Get a recruiter
// @Tags         admin-recruiters
// @Produce      json
// @Param        id  path      string true "Recruiter ID" Format(uuid)
// @Success      200 {object}  models.Recruiter
// @Failure      404 {object}  map[string]string "Recruiter not found"
// @Router       /admin/recruiters/{id} [get]
// @Security     BearerAuth
func (h *RecruiterHandler) GetRecruiter(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "recruiter")
	if !ok {
		return
	}
	rec, err := h.service.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "retrieve recruiter")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// RequestValidation godoc
// @Summary      Ask a recruiter for documents or information
// @Tags         admin-recruiters
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true "Recruiter ID" Format(uuid)
// @Param        requests body      dto.IssueValidationRequestsRequest true "Requests"
// @Success      200 {object}  models.Recruiter
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition"
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/recruiters/{id}/validation-requests [post]
// @Security     BearerAuth
func (h *RecruiterHandler) RequestValidation(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "recruiter")
	if !ok {
		return
	}
	var req dto.IssueValidationRequestsRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	rec, err := h.service.RequestValidation(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "issue validation requests")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// CancelRequests godoc
// @Summary      Drop every open validation request
// @Tags         admin-recruiters
// @Produce      json
// @Param        id  path      string true "Recruiter ID" Format(uuid)
// @Success      200 {object}  models.Recruiter
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/recruiters/{id}/validation-requests [delete]
// @Security     BearerAuth
func (h *RecruiterHandler) CancelRequests(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "recruiter")
	if !ok {
		return
	}
	rec, err := h.service.CancelRequests(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "cancel validation requests")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ReviewResponse godoc
// @Summary      Review a recruiter's answer
// @Tags         admin-recruiters
// @Accept       json
// @Produce      json
// @Param        id        path      string                    true "Recruiter ID" Format(uuid)
// @Param        requestId path      string                    true "Validation request ID" Format(uuid)
// @Param        review    body      dto.ReviewResponseRequest true "Decision"
// @Success      200 {object}  models.Recruiter
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition"
// @Router       /admin/recruiters/{id}/validation-requests/{requestId}/review [post]
// @Security     BearerAuth
func (h *RecruiterHandler) ReviewResponse(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "recruiter")
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId", "validation request")
	if !ok {
		return
	}
	var req dto.ReviewResponseRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	rec, err := h.service.ReviewResponse(c.Request.Context(), identity, id, requestID, *req.Approve)
	if err != nil {
		respondError(c, err, "review validation response")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ValidateRecruiter godoc
// @Summary      Validate a recruiter
// @Tags         admin-recruiters
// @Produce      json
// @Param        id  path      string true "Recruiter ID" Format(uuid)
// @Success      200 {object}  models.Recruiter
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition"
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/recruiters/{id}/validate [post]
// @Security     BearerAuth
func (h *RecruiterHandler) ValidateRecruiter(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "recruiter")
	if !ok {
		return
	}
	rec, err := h.service.Validate(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "validate recruiter")
		return
	}
	c.JSON(http.StatusOK, rec)
}

// RejectRecruiter godoc
// @Summary      Reject a recruiter
// @Tags         admin-recruiters
// @Accept       json
// @Produce      json
// @Param        id   path      string            true "Recruiter ID" Format(uuid)
// @Param        body body      dto.ReasonRequest true "Reason"
// @Success      200 {object}  models.Recruiter
// @Failure      400 {object}  dto.TransitionErrorResponse "Invalid status transition or missing reason"
// @Router       /admin/recruiters/{id}/reject [post]
// @Security     BearerAuth
func (h *RecruiterHandler) RejectRecruiter(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "recruiter")
	if !ok {
		return
	}
	var req dto.ReasonRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	rec, err := h.service.Reject(c.Request.Context(), identity, id, req.Reason)
	if err != nil {
		respondError(c, err, "reject recruiter")
		return
	}
	c.JSON(http.StatusOK, rec)
}
