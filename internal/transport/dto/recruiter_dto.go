package dto

import (
	"time"

	"recruit-api/internal/models"
)

// --- Recruiter Request DTOs ---

// ValidationRequestInput is one admin ask.
type ValidationRequestInput struct {
	Type              models.ValidationRequestType `json:"type" validate:"required,oneof=document information clarification"`
	Message           string                       `json:"message" validate:"required,min=3,max=2000"`
	RequiredDocuments []string                     `json:"requiredDocuments" validate:"omitempty,dive,max=120"`
	RequiredFields    []string                     `json:"requiredFields" validate:"omitempty,dive,max=120"`
}

// IssueValidationRequestsRequest carries a batch of asks.
type IssueValidationRequestsRequest struct {
	Requests []ValidationRequestInput `json:"requests" validate:"required,min=1,max=20,dive"`
}

// ValidationResponseRequest answers a single request.
type ValidationResponseRequest struct {
	Message   string   `json:"message" validate:"max=5000"`
	Documents []string `json:"documents" validate:"omitempty,max=20,dive,max=500"`
}

// ReviewResponseRequest approves or rejects a submitted answer.
type ReviewResponseRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

// ListRecruitersRequest filters the admin recruiter queue.
type ListRecruitersRequest struct {
	Status *models.RecruiterValidationStatus `form:"status"`
}

// UpdateRecruiterProfileRequest edits a recruiter's own profile.
type UpdateRecruiterProfileRequest struct {
	Position *string `json:"position,omitempty" validate:"omitempty,max=120"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=40"`
}

// UpdateTeamPermissionsRequest edits a teammate's company permissions.
type UpdateTeamPermissionsRequest struct {
	PostJobs    *bool `json:"postJobs,omitempty"`
	ReviewJobs  *bool `json:"reviewJobs,omitempty"`
	ManageTeam  *bool `json:"manageTeam,omitempty"`
	EditCompany *bool `json:"editCompany,omitempty"`
}

// --- Candidate DTOs ---

// UpdateCandidateRequest edits the candidate profile.
type UpdateCandidateRequest struct {
	Phone    *string  `json:"phone,omitempty" validate:"omitempty,max=40"`
	City     *string  `json:"city,omitempty" validate:"omitempty,max=120"`
	Headline *string  `json:"headline,omitempty" validate:"omitempty,max=200"`
	Skills   []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,max=60"`
}

// UploadResponse returns the stored file reference.
type UploadResponse struct {
	URL string `json:"url"`
}

// --- Admin DTOs ---

// ListUsersRequest filters the admin user listing.
type ListUsersRequest struct {
	Role   *models.Role          `form:"role" validate:"omitempty,oneof=candidate recruiter admin"`
	Status *models.AccountStatus `form:"status" validate:"omitempty,oneof=active suspended banned"`
	Query  string                `form:"q" validate:"max=100"`
	Limit  int                   `form:"limit,default=50" validate:"gte=0,lte=200"`
	Offset int                   `form:"offset,default=0" validate:"gte=0"`
}

// SuspendUserRequest suspends an account, optionally until a date.
type SuspendUserRequest struct {
	Until  *time.Time `json:"until,omitempty"`
	Reason string     `json:"reason" validate:"required,min=3,max=1000"`
}

// ListCompaniesRequest filters companies by status.
type ListCompaniesRequest struct {
	Status *models.CompanyStatus `form:"status" validate:"omitempty,oneof=pending active rejected"`
}

// CreateAdminRequest creates a back-office account.
type CreateAdminRequest struct {
	Name        string              `json:"name" validate:"required,min=2,max=120"`
	Email       string              `json:"email" validate:"required,email"`
	Password    string              `json:"password" validate:"required,min=8,max=72"`
	Label       models.AdminLabel   `json:"label" validate:"required,oneof=super_admin moderator support"`
	Permissions []models.Capability `json:"permissions" validate:"max=20"`
}

// AdminPermissionsRequest replaces the grants of an admin. An empty label
// keeps the current one.
type AdminPermissionsRequest struct {
	Label       models.AdminLabel   `json:"label" validate:"omitempty,oneof=super_admin moderator support"`
	Permissions []models.Capability `json:"permissions" validate:"max=20"`
}

// AdminAccount pairs an admin record with its user.
type AdminAccount struct {
	User  *models.User  `json:"user"`
	Admin *models.Admin `json:"admin"`
}

// CreateCompanyRequest registers a company from the back office.
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Website     string `json:"website" validate:"omitempty,url"`
	Sector      string `json:"sector" validate:"max=120"`
	City        string `json:"city" validate:"max=120"`
}

// ListLogsRequest filters the audit trail.
type ListLogsRequest struct {
	Action     *models.AdminAction `form:"action"`
	TargetType *models.TargetType  `form:"targetType" validate:"omitempty,oneof=offer recruiter company user setting ticket admin"`
	TargetID   string              `form:"targetId" validate:"omitempty,uuid"`
	ActorID    string              `form:"actorId" validate:"omitempty,uuid"`
	Limit      int                 `form:"limit,default=50" validate:"gte=0,lte=200"`
	Offset     int                 `form:"offset,default=0" validate:"gte=0"`
}

// EmailModeRequest sets the mailer mode.
type EmailModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=live development"`
}

// EmailModeResponse reports the mailer mode.
type EmailModeResponse struct {
	Mode string `json:"mode"`
}

// --- Support DTOs ---

// CreateTicketRequest opens a support ticket.
type CreateTicketRequest struct {
	Subject  string `json:"subject" validate:"required,min=3,max=200"`
	Category string `json:"category" validate:"max=60"`
	Message  string `json:"message" validate:"required,min=1,max=5000"`
}

// TicketStatusRequest changes a ticket status.
type TicketStatusRequest struct {
	Status models.TicketStatus `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

// ListTicketsRequest filters the admin support queue.
type ListTicketsRequest struct {
	Status *models.TicketStatus `form:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
}

// --- Notification DTOs ---

// ListNotificationsRequest filters the inbox.
type ListNotificationsRequest struct {
	UnreadOnly bool `form:"unread"`
}

// NotificationsResponse is the inbox with its unread counter.
type NotificationsResponse struct {
	Items  []models.Notification `json:"items"`
	Unread int                   `json:"unread"`
}

// CountResponse reports how many records an operation touched.
type CountResponse struct {
	Count int `json:"count"`
}
