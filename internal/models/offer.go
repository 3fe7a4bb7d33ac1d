package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Offer validation status ---
type OfferStatus string

const (
	OfferDraft            OfferStatus = "draft"
	OfferPending          OfferStatus = "pending"
	OfferApproved         OfferStatus = "approved"
	OfferRejected         OfferStatus = "rejected"
	OfferChangesRequested OfferStatus = "changes_requested"
)

// Scan implements the sql.Scanner interface for OfferStatus
func (s *OfferStatus) Scan(value interface{}) error {
	strVal, err := scanEnumString(value, "OfferStatus")
	if err != nil {
		return err
	}
	v := OfferStatus(strVal)
	switch v {
	case OfferDraft, OfferPending, OfferApproved, OfferRejected, OfferChangesRequested:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid OfferStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for OfferStatus
func (s OfferStatus) Value() (driver.Value, error) {
	return string(s), nil
}

type SearchMode string

const (
	SearchDisabled  SearchMode = "disabled"
	SearchManual    SearchMode = "manual"
	SearchAutomatic SearchMode = "automatic"
)

// ValidationEntry records one moderation decision on an offer.
type ValidationEntry struct {
	Status  OfferStatus `json:"status"`
	Message string      `json:"message,omitempty"`
	AdminID uuid.UUID   `json:"adminId"`
	Date    time.Time   `json:"date"`
}

type ValidationHistory []ValidationEntry

// Offer is a job posting.
type Offer struct {
	ID                  uuid.UUID         `json:"id" db:"id"`
	RecruiterID         uuid.UUID         `json:"recruiterId" db:"recruiter_id"`
	CompanyID           uuid.UUID         `json:"companyId" db:"company_id"`
	Title               string            `json:"title" db:"title"`
	Description         string            `json:"description" db:"description"`
	Requirements        string            `json:"requirements" db:"requirements"`
	Location            string            `json:"location" db:"location"`
	ContractType        string            `json:"contractType" db:"contract_type"`
	SalaryMin           *int              `json:"salaryMin,omitempty" db:"salary_min"`
	SalaryMax           *int              `json:"salaryMax,omitempty" db:"salary_max"`
	ValidationStatus    OfferStatus       `json:"validationStatus" db:"validation_status"`
	ValidationHistory   ValidationHistory `json:"validationHistory" db:"validation_history"`
	Actif               bool              `json:"actif" db:"actif"`
	DatePublication     *time.Time        `json:"datePublication,omitempty" db:"date_publication"`
	NombreCandidatures  int               `json:"nombreCandidatures" db:"nombre_candidatures"`
	CandidateSearchMode SearchMode        `json:"candidateSearchMode" db:"candidate_search_mode"`
	CreatedAt           time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time         `json:"updatedAt" db:"updated_at"`
}

// IsVisible reports whether the offer appears in public listings.
func (o *Offer) IsVisible() bool {
	return o.ValidationStatus == OfferApproved && o.Actif
}
