package dto

import (
	"time"

	"recruit-api/internal/models"

	"github.com/google/uuid"
)

// --- Application Request DTOs ---

// ApplyRequest defines the structure for applying to an offer.
type ApplyRequest struct {
	OfferID     uuid.UUID `json:"offerId" validate:"required"`
	CoverLetter string    `json:"coverLetter" validate:"max=5000"`
	CVURL       string    `json:"cvUrl" validate:"max=500"`
}

// ProposeCandidateRequest puts a candidate forward for an offer.
type ProposeCandidateRequest struct {
	CandidateID uuid.UUID `json:"candidateId" validate:"required"`
	Note        string    `json:"note" validate:"max=1000"`
}

// TransitionRequest asks the engine to move an application.
type TransitionRequest struct {
	Status models.RecruiterStatus `json:"status" validate:"required"`
	Note   string                 `json:"note" validate:"max=2000"`
}

// StarRequest sets or clears the star flag.
type StarRequest struct {
	Starred *bool `json:"starred" validate:"required"`
}

// ListOfferApplicationsRequest filters a recruiter's view of one offer.
type ListOfferApplicationsRequest struct {
	Status *models.RecruiterStatus `form:"status"`
}

// --- Application Response DTOs ---

// TransitionErrorResponse is the 400 payload of a rejected transition.
type TransitionErrorResponse struct {
	Error     string `json:"error"`
	Current   string `json:"current"`
	Requested string `json:"requested"`
}

// MarkSeenResponse reports the outcome of the bulk seen operation.
type MarkSeenResponse struct {
	Seen     int `json:"seen"`
	Promoted int `json:"promoted"`
}

// --- Interview DTOs ---

// ProposeInterviewRequest schedules an interview for an application.
type ProposeInterviewRequest struct {
	ScheduledAt     time.Time `json:"scheduledAt" validate:"required"`
	DurationMinutes int       `json:"durationMinutes" validate:"omitempty,gte=5,lte=480"`
	Location        string    `json:"location" validate:"max=200"`
	Mode            string    `json:"mode" validate:"omitempty,oneof=onsite video phone"`
	Notes           string    `json:"notes" validate:"max=2000"`
}

// RescheduleRequest proposes an alternative date.
type RescheduleRequest struct {
	Date    time.Time `json:"date" validate:"required"`
	Message string    `json:"message" validate:"max=1000"`
}

// CancelInterviewRequest optionally explains a cancellation.
type CancelInterviewRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// --- Conversation DTOs ---

// SendMessageRequest posts a message in a thread.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// ListConversationsRequest filters the inbox; ActiveOnly keeps threads the
// candidate has answered.
type ListConversationsRequest struct {
	ActiveOnly bool `form:"active"`
}

// CloseInterviewRequest records how an interview ended.
type CloseInterviewRequest struct {
	Outcome models.InterviewStatus `json:"outcome" validate:"required,oneof=completed no_show"`
}
