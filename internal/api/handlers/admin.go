package handlers

import (
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AdminHandler serves user, company, audit and settings administration.
type AdminHandler struct {
	service   services.AdminService
	validator *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service services.AdminService, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{service: service, validator: validate}
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin-users
// @Produce      json
// @Param        role   query     string false "Role" Enums(candidate, recruiter, admin)
// @Param        status query     string false "Account status" Enums(active, suspended, banned)
// @Param        q      query     string false "Email or name"
// @Param        limit  query     int    false "Page size" default(50)
// @Param        offset query     int    false "Offset" default(0)
// @Success      200 {array}   models.User
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) ListUsers(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.ListUsersRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	users, err := h.service.ListUsers(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// SuspendUser godoc
// @Summary      Suspend a user
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Param        id   path      string                 true "User ID" Format(uuid)
// @Param        body body      dto.SuspendUserRequest true "Suspension"
// @Success      200 {object}  models.User
// @Failure      403 {object}  map[string]string "Missing capability"
// @Failure      409 {object}  map[string]string "User is banned"
// @Router       /admin/users/{id}/suspend [post]
// @Security     BearerAuth
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	var req dto.SuspendUserRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	user, err := h.service.SuspendUser(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "suspend user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// BanUser godoc
// @Summary      Ban a user
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Param        id   path      string            true "User ID" Format(uuid)
// @Param        body body      dto.ReasonRequest true "Reason"
// @Success      200 {object}  models.User
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/users/{id}/ban [post]
// @Security     BearerAuth
func (h *AdminHandler) BanUser(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	var req dto.ReasonRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	user, err := h.service.BanUser(c.Request.Context(), identity, id, req.Reason)
	if err != nil {
		respondError(c, err, "ban user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ReactivateUser godoc
// @Summary      Reactivate a user
// @Tags         admin-users
// @Produce      json
// @Param        id  path      string true "User ID" Format(uuid)
// @Success      200 {object}  models.User
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/users/{id}/reactivate [post]
// @Security     BearerAuth
func (h *AdminHandler) ReactivateUser(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	user, err := h.service.ReactivateUser(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "reactivate user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListCompanies godoc
// @Summary      List companies
// @Tags         admin-companies
// @Produce      json
// @Param        status query     string false "Company status" Enums(pending, active, rejected)
// @Success      200 {array}   models.Company
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/companies [get]
// @Security     BearerAuth
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.ListCompaniesRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	companies, err := h.service.ListCompanies(c.Request.Context(), identity, req.Status)
	if err != nil {
		respondError(c, err, "retrieve companies")
		return
	}
	c.JSON(http.StatusOK, companies)
}

// ActivateCompany godoc
// @Summary      Activate a company
// @Description  Promotes the earliest validated recruiter to company admin when the company has none.
// @Tags         admin-companies
// @Produce      json
// @Param        id  path      string true "Company ID" Format(uuid)
// @Success      200 {object}  models.Company
// @Failure      403 {object}  map[string]string "Missing capability"
// @Failure      404 {object}  map[string]string "Company not found"
// @Router       /admin/companies/{id}/activate [post]
// @Security     BearerAuth
func (h *AdminHandler) ActivateCompany(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "company")
	if !ok {
		return
	}
	company, err := h.service.ActivateCompany(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err, "activate company")
		return
	}
	c.JSON(http.StatusOK, company)
}

// RejectCompany godoc
// @Summary      Reject a company
// @Tags         admin-companies
// @Accept       json
// @Produce      json
// @Param        id   path      string            true "Company ID" Format(uuid)
// @Param        body body      dto.ReasonRequest true "Reason"
// @Success      200 {object}  models.Company
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/companies/{id}/reject [post]
// @Security     BearerAuth
func (h *AdminHandler) RejectCompany(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "company")
	if !ok {
		return
	}
	var req dto.ReasonRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	company, err := h.service.RejectCompany(c.Request.Context(), identity, id, req.Reason)
	if err != nil {
		respondError(c, err, "reject company")
		return
	}
	c.JSON(http.StatusOK, company)
}

// CreateCompany godoc
// @Summary      Create a company
// @Description  Companies created from the back office start active.
// @Tags         admin-companies
// @Accept       json
// @Produce      json
// @Param        body body      dto.CreateCompanyRequest true "Company"
// @Success      201 {object}  models.Company
// @Failure      403 {object}  map[string]string "Missing capability"
// @Failure      409 {object}  map[string]string "Name already taken"
// @Router       /admin/companies [post]
// @Security     BearerAuth
func (h *AdminHandler) CreateCompany(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateCompanyRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	company, err := h.service.CreateCompany(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "create company")
		return
	}
	c.JSON(http.StatusCreated, company)
}

// ListAdmins godoc
// @Summary      List back-office accounts
// @Tags         admin-accounts
// @Produce      json
// @Success      200 {array}   dto.AdminAccount
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/admins [get]
// @Security     BearerAuth
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	admins, err := h.service.ListAdmins(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "retrieve admins")
		return
	}
	c.JSON(http.StatusOK, admins)
}

// CreateAdmin godoc
// @Summary      Create a back-office account
// @Tags         admin-accounts
// @Accept       json
// @Produce      json
// @Param        body body      dto.CreateAdminRequest true "Admin"
// @Success      201 {object}  dto.AdminAccount
// @Failure      403 {object}  map[string]string "Missing capability or grant not held"
// @Failure      409 {object}  map[string]string "Email already registered"
// @Router       /admin/admins [post]
// @Security     BearerAuth
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.CreateAdminRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	account, err := h.service.CreateAdmin(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "create admin")
		return
	}
	c.JSON(http.StatusCreated, account)
}

// UpdateAdminPermissions godoc
// @Summary      Replace the grants of an admin
// @Tags         admin-accounts
// @Accept       json
// @Produce      json
// @Param        id   path      string                      true "Admin user ID" Format(uuid)
// @Param        body body      dto.AdminPermissionsRequest true "Grants"
// @Success      200 {object}  dto.AdminAccount
// @Failure      403 {object}  map[string]string "Missing capability"
// @Failure      404 {object}  map[string]string "Admin not found"
// @Router       /admin/admins/{id}/permissions [patch]
// @Security     BearerAuth
func (h *AdminHandler) UpdateAdminPermissions(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "admin")
	if !ok {
		return
	}
	var req dto.AdminPermissionsRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	account, err := h.service.UpdateAdminPermissions(c.Request.Context(), identity, id, &req)
	if err != nil {
		respondError(c, err, "update admin")
		return
	}
	c.JSON(http.StatusOK, account)
}

// DeleteAdmin godoc
// @Summary      Delete a back-office account
// @Tags         admin-accounts
// @Param        id  path  string true "Admin user ID" Format(uuid)
// @Success      204
// @Failure      403 {object}  map[string]string "Missing capability"
// @Failure      404 {object}  map[string]string "Admin not found"
// @Router       /admin/admins/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "admin")
	if !ok {
		return
	}
	if err := h.service.DeleteAdmin(c.Request.Context(), identity, id); err != nil {
		respondError(c, err, "delete admin")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListLogs godoc
// @Summary      List the audit trail
// @Tags         admin-logs
// @Produce      json
// @Param        action     query     string false "Action"
// @Param        targetType query     string false "Target type"
// @Param        targetId   query     string false "Target ID" Format(uuid)
// @Param        actorId    query     string false "Actor ID" Format(uuid)
// @Param        limit      query     int    false "Page size" default(50)
// @Param        offset     query     int    false "Offset" default(0)
// @Success      200 {array}   models.AdminLog
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/logs [get]
// @Security     BearerAuth
func (h *AdminHandler) ListLogs(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.ListLogsRequest
	if !bindQuery(c, h.validator, &req) {
		return
	}
	logs, err := h.service.ListLogs(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "retrieve logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GetEmailMode godoc
// @Summary      Get the email delivery mode
// @Tags         admin-settings
// @Produce      json
// @Success      200 {object}  dto.EmailModeResponse
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/settings/email-mode [get]
// @Security     BearerAuth
func (h *AdminHandler) GetEmailMode(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	mode, err := h.service.GetEmailMode(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "retrieve email mode")
		return
	}
	c.JSON(http.StatusOK, dto.EmailModeResponse{Mode: mode})
}

// SetEmailMode godoc
// @Summary      Set the email delivery mode
// @Description  In development mode emails are logged instead of sent and verification codes are fixed.
// @Tags         admin-settings
// @Accept       json
// @Produce      json
// @Param        body body      dto.EmailModeRequest true "Mode"
// @Success      200 {object}  dto.EmailModeResponse
// @Failure      403 {object}  map[string]string "Missing capability"
// @Router       /admin/settings/email-mode [put]
// @Security     BearerAuth
func (h *AdminHandler) SetEmailMode(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.EmailModeRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	mode, err := h.service.SetEmailMode(c.Request.Context(), identity, req.Mode)
	if err != nil {
		respondError(c, err, "update email mode")
		return
	}
	c.JSON(http.StatusOK, dto.EmailModeResponse{Mode: mode})
}
