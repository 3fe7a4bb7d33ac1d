package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Capability is a named administrative right.
type Capability string

const (
	CapValidateOffers     Capability = "validate_offers"
	CapValidateRecruiters Capability = "validate_recruiters"
	CapManageUsers        Capability = "manage_users"
	CapManageCompanies    Capability = "manage_companies"
	CapViewLogs           Capability = "view_logs"
	CapManageSettings     Capability = "manage_settings"
	CapManageSupport      Capability = "manage_support"
	CapManageAdmins       Capability = "manage_admins"
)

// AllCapabilities lists every capability in a stable order.
var AllCapabilities = []Capability{
	CapValidateOffers,
	CapValidateRecruiters,
	CapManageUsers,
	CapManageCompanies,
	CapViewLogs,
	CapManageSettings,
	CapManageSupport,
	CapManageAdmins,
}

// Known reports whether c is one of AllCapabilities.
func (c Capability) Known() bool {
	return slices.Contains(AllCapabilities, c)
}

type AdminLabel string

const (
	LabelSuperAdmin AdminLabel = "super_admin"
	LabelModerator  AdminLabel = "moderator"
	LabelSupport    AdminLabel = "support"
)

type AdminPermissions map[Capability]bool

// Admin holds the capability grants of a user with role admin.
type Admin struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      uuid.UUID        `json:"userId" db:"user_id"`
	Label       AdminLabel       `json:"label" db:"label"`
	Permissions AdminPermissions `json:"permissions" db:"permissions"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}

// Has reports whether the admin holds capability c. The super_admin label
// grants everything.
func (a *Admin) Has(c Capability) bool {
	if a == nil {
		return false
	}
	if a.Label == LabelSuperAdmin {
		return true
	}
	return a.Permissions[c]
}

// AdminAction is the closed set of audited actions.
type AdminAction string

const (
	ActionOfferApproved           AdminAction = "offer_approved"
	ActionOfferRejected           AdminAction = "offer_rejected"
	ActionOfferChangesRequested   AdminAction = "offer_changes_requested"
	ActionOfferVisibilityToggled  AdminAction = "offer_visibility_toggled"
	ActionOfferUpdated            AdminAction = "offer_updated"
	ActionRecruiterInfoRequested  AdminAction = "recruiter_validation_requested"
	ActionRecruiterRequestsCancel AdminAction = "recruiter_validation_cancelled"
	ActionRecruiterResponseReview AdminAction = "recruiter_response_reviewed"
	ActionRecruiterValidated      AdminAction = "recruiter_validated"
	ActionRecruiterRejected       AdminAction = "recruiter_rejected"
	ActionCompanyActivated        AdminAction = "company_activated"
	ActionCompanyRejected         AdminAction = "company_rejected"
	ActionUserSuspended           AdminAction = "user_suspended"
	ActionUserBanned              AdminAction = "user_banned"
	ActionUserReactivated         AdminAction = "user_reactivated"
	ActionSettingsUpdated         AdminAction = "settings_updated"
	ActionTicketStatusChanged     AdminAction = "ticket_status_changed"
	ActionAdminCreated            AdminAction = "admin_created"
	ActionAdminUpdated            AdminAction = "admin_permissions_updated"
	ActionAdminDeleted            AdminAction = "admin_deleted"
	ActionCompanyCreated          AdminAction = "company_created"
	ActionCandidateProposed       AdminAction = "candidate_proposed"
)

type TargetType string

const (
	TargetOffer     TargetType = "offer"
	TargetRecruiter TargetType = "recruiter"
	TargetCompany   TargetType = "company"
	TargetUser      TargetType = "user"
	TargetSetting   TargetType = "setting"
	TargetTicket    TargetType = "ticket"
	TargetAdmin     TargetType = "admin"
)

type LogDetails map[string]interface{}

// RequestMeta describes the HTTP request behind an audited action.
type RequestMeta struct {
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// AdminLog is an append-only audit trail entry.
type AdminLog struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	ActorID    uuid.UUID   `json:"actorId" db:"actor_id"`
	Action     AdminAction `json:"action" db:"action"`
	TargetType TargetType  `json:"targetType" db:"target_type"`
	TargetID   uuid.UUID   `json:"targetId" db:"target_id"`
	Details    LogDetails  `json:"details" db:"details"`
	IP         string      `json:"ip,omitempty" db:"ip"`
	UserAgent  string      `json:"userAgent,omitempty" db:"user_agent"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
}
