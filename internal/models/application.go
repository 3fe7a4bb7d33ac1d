package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Recruiter-facing application status ---
type RecruiterStatus string

const (
	StatusNouvelle          RecruiterStatus = "nouvelle"
	StatusConsultee         RecruiterStatus = "consultee"
	StatusPreselection      RecruiterStatus = "preselection"
	StatusEnDiscussion      RecruiterStatus = "en_discussion"
	StatusEntretienPlanifie RecruiterStatus = "entretien_planifie"
	StatusEntretienTermine  RecruiterStatus = "entretien_termine"
	StatusRetenue           RecruiterStatus = "retenue"
	StatusRefusee           RecruiterStatus = "refusee"

	// Set only by candidate-initiated actions, outside the recruiter table.
	StatusRetireeParCandidat RecruiterStatus = "retiree_par_candidat"
	StatusAnnuleeParCandidat RecruiterStatus = "annulee_par_candidat"
)

// Valid reports whether s is a known recruiter status.
func (s RecruiterStatus) Valid() bool {
	switch s {
	case StatusNouvelle, StatusConsultee, StatusPreselection, StatusEnDiscussion,
		StatusEntretienPlanifie, StatusEntretienTermine, StatusRetenue, StatusRefusee,
		StatusRetireeParCandidat, StatusAnnuleeParCandidat:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave s.
func (s RecruiterStatus) Terminal() bool {
	switch s {
	case StatusRetenue, StatusRefusee, StatusRetireeParCandidat, StatusAnnuleeParCandidat:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for RecruiterStatus
func (s *RecruiterStatus) Scan(value interface{}) error {
	strVal, err := scanEnumString(value, "RecruiterStatus")
	if err != nil {
		return err
	}
	v := RecruiterStatus(strVal)
	if !v.Valid() {
		return fmt.Errorf("invalid RecruiterStatus value: %s", strVal)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for RecruiterStatus
func (s RecruiterStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// --- Candidate-facing application status ---
type CandidateStatus string

const (
	CandidateEnvoyee    CandidateStatus = "envoyee"
	CandidateEnCours    CandidateStatus = "en_cours"
	CandidateRetenue    CandidateStatus = "retenue"
	CandidateNonRetenue CandidateStatus = "non_retenue"
	CandidateRetiree    CandidateStatus = "retiree"
	CandidateAnnulee    CandidateStatus = "annulee"
)

// Scan implements the sql.Scanner interface for CandidateStatus
func (s *CandidateStatus) Scan(value interface{}) error {
	strVal, err := scanEnumString(value, "CandidateStatus")
	if err != nil {
		return err
	}
	v := CandidateStatus(strVal)
	switch v {
	case CandidateEnvoyee, CandidateEnCours, CandidateRetenue, CandidateNonRetenue, CandidateRetiree, CandidateAnnulee:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid CandidateStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for CandidateStatus
func (s CandidateStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// ApplicationSource tells how the application was created.
type ApplicationSource string

const (
	SourceDirect        ApplicationSource = "direct"
	SourceAdminProposal ApplicationSource = "admin_proposal"
)

// StatusChange is one entry of an application's status history.
type StatusChange struct {
	CandidateStatus CandidateStatus `json:"candidateStatus"`
	RecruiterStatus RecruiterStatus `json:"recruiterStatus"`
	ChangedBy       uuid.UUID       `json:"changedBy"`
	Note            string          `json:"note,omitempty"`
	ChangedAt       time.Time       `json:"changedAt"`
}

type StatusHistory []StatusChange

// Application links one candidate to one offer.
type Application struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	OfferID         uuid.UUID         `json:"offerId" db:"offer_id"`
	CandidateID     uuid.UUID         `json:"candidateId" db:"candidate_id"`
	CoverLetter     string            `json:"coverLetter,omitempty" db:"cover_letter"`
	CVURL           string            `json:"cvUrl,omitempty" db:"cv_url"`
	RecruiterStatus RecruiterStatus   `json:"recruiterStatus" db:"recruiter_status"`
	CandidateStatus CandidateStatus   `json:"candidateStatus" db:"candidate_status"`
	SeenByRecruiter bool              `json:"seenByRecruiter" db:"seen_by_recruiter"`
	SeenAt          *time.Time        `json:"seenAt,omitempty" db:"seen_at"`
	IsStarred       bool              `json:"isStarred" db:"is_starred"`
	Source          ApplicationSource `json:"source" db:"source"`
	DecisionAt      *time.Time        `json:"decisionAt,omitempty" db:"decision_at"`
	StatusHistory   StatusHistory     `json:"statusHistory" db:"status_history"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" db:"updated_at"`
}

// CountsTowardOffer reports whether the application is included in the
// offer's application counter.
func (a *Application) CountsTowardOffer() bool {
	return a.RecruiterStatus != StatusRetireeParCandidat && a.RecruiterStatus != StatusAnnuleeParCandidat
}
