package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Recruiter validation workflow status ---
type RecruiterValidationStatus string

const (
	RecruiterPendingValidation       RecruiterValidationStatus = "pending_validation"
	RecruiterPendingInfo             RecruiterValidationStatus = "pending_info"
	RecruiterPendingDocuments        RecruiterValidationStatus = "pending_documents"
	RecruiterPendingInfoAndDocuments RecruiterValidationStatus = "pending_info_and_documents"
	RecruiterPendingRevalidation     RecruiterValidationStatus = "pending_revalidation"
	RecruiterValidated               RecruiterValidationStatus = "validated"
	RecruiterRejected                RecruiterValidationStatus = "rejected"
)

// AwaitingRecruiter reports whether the admin is waiting on recruiter input.
func (s RecruiterValidationStatus) AwaitingRecruiter() bool {
	switch s {
	case RecruiterPendingInfo, RecruiterPendingDocuments, RecruiterPendingInfoAndDocuments:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for RecruiterValidationStatus
func (s *RecruiterValidationStatus) Scan(value interface{}) error {
	strVal, err := scanEnumString(value, "RecruiterValidationStatus")
	if err != nil {
		return err
	}
	v := RecruiterValidationStatus(strVal)
	switch v {
	case RecruiterPendingValidation, RecruiterPendingInfo, RecruiterPendingDocuments,
		RecruiterPendingInfoAndDocuments, RecruiterPendingRevalidation, RecruiterValidated, RecruiterRejected:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid RecruiterValidationStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for RecruiterValidationStatus
func (s RecruiterValidationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

type ValidationRequestType string

const (
	RequestDocument      ValidationRequestType = "document"
	RequestInformation   ValidationRequestType = "information"
	RequestClarification ValidationRequestType = "clarification"
)

type ValidationRequestStatus string

const (
	RequestPending   ValidationRequestStatus = "pending"
	RequestSubmitted ValidationRequestStatus = "submitted"
	RequestApproved  ValidationRequestStatus = "approved"
	RequestRejected  ValidationRequestStatus = "rejected"
)

// ValidationResponse is the recruiter's answer to one request.
type ValidationResponse struct {
	Message     string    `json:"message"`
	Documents   []string  `json:"documents,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ValidationRequest is an admin ask addressed to a recruiter.
type ValidationRequest struct {
	ID                uuid.UUID               `json:"id"`
	Type              ValidationRequestType   `json:"type"`
	Message           string                  `json:"message"`
	RequiredDocuments []string                `json:"requiredDocuments,omitempty"`
	RequiredFields    []string                `json:"requiredFields,omitempty"`
	Status            ValidationRequestStatus `json:"status"`
	Response          *ValidationResponse     `json:"response,omitempty"`
	RequestedBy       uuid.UUID               `json:"requestedBy"`
	RequestedAt       time.Time               `json:"requestedAt"`
	ReviewedAt        *time.Time              `json:"reviewedAt,omitempty"`
}

type ValidationRequests []ValidationRequest

// Find returns the request with the given id.
func (r ValidationRequests) Find(id uuid.UUID) (*ValidationRequest, bool) {
	for i := range r {
		if r[i].ID == id {
			return &r[i], true
		}
	}
	return nil, false
}

// RecruiterPermissions are the company-level rights of a recruiter.
type RecruiterPermissions struct {
	PostJobs    bool `json:"postJobs"`
	ReviewJobs  bool `json:"reviewJobs"`
	ManageTeam  bool `json:"manageTeam"`
	EditCompany bool `json:"editCompany"`
}

// DefaultRecruiterPermissions is granted at registration.
func DefaultRecruiterPermissions() RecruiterPermissions {
	return RecruiterPermissions{PostJobs: true, ReviewJobs: true}
}

// AnemRecord is inert registration data for the national employment agency.
type AnemRecord struct {
	Status string `json:"status"`
	AnemID string `json:"anemId,omitempty"`
}

// Recruiter is the profile attached to a user with role recruiter.
type Recruiter struct {
	ID                 uuid.UUID                 `json:"id" db:"id"`
	UserID             uuid.UUID                 `json:"userId" db:"user_id"`
	CompanyID          uuid.UUID                 `json:"companyId" db:"company_id"`
	Position           string                    `json:"position" db:"position"`
	Phone              string                    `json:"phone" db:"phone"`
	Status             RecruiterValidationStatus `json:"status" db:"status"`
	IsAdmin            bool                      `json:"isAdmin" db:"is_admin"`
	Permissions        RecruiterPermissions      `json:"permissions" db:"permissions"`
	ValidationRequests ValidationRequests        `json:"validationRequests" db:"validation_requests"`
	RejectionReason    string                    `json:"rejectionReason,omitempty" db:"rejection_reason"`
	ValidatedAt        *time.Time                `json:"validatedAt,omitempty" db:"validated_at"`
	Anem               AnemRecord                `json:"anem" db:"anem"`
	CreatedAt          time.Time                 `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time                 `json:"updatedAt" db:"updated_at"`
}
