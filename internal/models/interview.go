package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewStatus string

const (
	InterviewProposed               InterviewStatus = "proposed"
	InterviewConfirmed              InterviewStatus = "confirmed"
	InterviewRescheduledByCandidate InterviewStatus = "rescheduled_by_candidate"
	InterviewRescheduledByRecruiter InterviewStatus = "rescheduled_by_recruiter"
	InterviewCancelledByCandidate   InterviewStatus = "cancelled_by_candidate"
	InterviewCancelledByRecruiter   InterviewStatus = "cancelled_by_recruiter"
	InterviewCompleted              InterviewStatus = "completed"
	InterviewNoShow                 InterviewStatus = "no_show"
)

// Closed reports whether the interview can no longer change.
func (s InterviewStatus) Closed() bool {
	switch s {
	case InterviewCancelledByCandidate, InterviewCancelledByRecruiter, InterviewCompleted, InterviewNoShow:
		return true
	}
	return false
}

// ProposedAlternative is a counter-proposal in the reschedule loop.
type ProposedAlternative struct {
	Date       time.Time `json:"date"`
	ProposedBy Role      `json:"proposedBy"`
	Message    string    `json:"message,omitempty"`
}

// Interview is scheduled for one application.
type Interview struct {
	ID                  uuid.UUID            `json:"id" db:"id"`
	ApplicationID       uuid.UUID            `json:"applicationId" db:"application_id"`
	ScheduledAt         time.Time            `json:"scheduledAt" db:"scheduled_at"`
	DurationMinutes     int                  `json:"durationMinutes" db:"duration_minutes"`
	Location            string               `json:"location" db:"location"`
	Mode                string               `json:"mode" db:"mode"`
	Notes               string               `json:"notes,omitempty" db:"notes"`
	Status              InterviewStatus      `json:"status" db:"status"`
	ProposedAlternative *ProposedAlternative `json:"proposedAlternative,omitempty" db:"proposed_alternative"`
	CancellationReason  string               `json:"cancellationReason,omitempty" db:"cancellation_reason"`
	CreatedAt           time.Time            `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time            `json:"updatedAt" db:"updated_at"`
}
