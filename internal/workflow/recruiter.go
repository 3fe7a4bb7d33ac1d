package workflow

import (
	"strings"
	"time"

	"recruit-api/internal/models"

	"github.com/google/uuid"
)

// StatusForBatch picks the waiting status matching the kinds of requests in
// a batch. Clarifications count as information requests.
func StatusForBatch(batch []models.ValidationRequest) models.RecruiterValidationStatus {
	var docs, info bool
	for _, r := range batch {
		switch r.Type {
		case models.RequestDocument:
			docs = true
		case models.RequestInformation, models.RequestClarification:
			info = true
		}
	}
	switch {
	case docs && info:
		return models.RecruiterPendingInfoAndDocuments
	case docs:
		return models.RecruiterPendingDocuments
	default:
		return models.RecruiterPendingInfo
	}
}

func openCycle(s models.RecruiterValidationStatus) bool {
	return s == models.RecruiterPendingValidation || s == models.RecruiterPendingRevalidation || s.AwaitingRecruiter()
}

// IssueValidationRequests appends a batch of admin requests and moves the
// recruiter to the matching waiting status.
func IssueValidationRequests(r *models.Recruiter, batch []models.ValidationRequest, adminID uuid.UUID, now time.Time) error {
	if len(batch) == 0 {
		return ErrNoRequests
	}
	next := StatusForBatch(batch)
	if !openCycle(r.Status) {
		return invalid(MachineRecruiter, r.Status, next)
	}
	for _, req := range batch {
		if req.ID == uuid.Nil {
			req.ID = uuid.New()
		}
		req.Status = models.RequestPending
		req.Response = nil
		req.RequestedBy = adminID
		req.RequestedAt = now
		r.ValidationRequests = append(r.ValidationRequests, req)
	}
	r.Status = next
	r.UpdatedAt = now
	return nil
}

// SubmitValidationResponse answers one pending request. Any answer moves the
// recruiter to pending_revalidation, even if other requests are still open.
func SubmitValidationResponse(r *models.Recruiter, requestID uuid.UUID, message string, documents []string, now time.Time) error {
	if !openCycle(r.Status) {
		return invalid(MachineRecruiter, r.Status, models.RecruiterPendingRevalidation)
	}
	req, ok := r.ValidationRequests.Find(requestID)
	if !ok {
		return ErrRequestNotFound
	}
	if req.Status != models.RequestPending {
		return invalid(MachineRequest, req.Status, models.RequestSubmitted)
	}
	req.Status = models.RequestSubmitted
	req.Response = &models.ValidationResponse{
		Message:     strings.TrimSpace(message),
		Documents:   documents,
		SubmittedAt: now,
	}
	r.Status = models.RecruiterPendingRevalidation
	r.UpdatedAt = now
	return nil
}

// CancelValidationRequests drops the unanswered requests and reopens the
// initial review. Answered requests stay in the history.
func CancelValidationRequests(r *models.Recruiter, now time.Time) (int, error) {
	if !r.Status.AwaitingRecruiter() && r.Status != models.RecruiterPendingRevalidation {
		return 0, invalid(MachineRecruiter, r.Status, models.RecruiterPendingValidation)
	}
	kept := make(models.ValidationRequests, 0, len(r.ValidationRequests))
	for _, req := range r.ValidationRequests {
		if req.Status != models.RequestPending {
			kept = append(kept, req)
		}
	}
	dropped := len(r.ValidationRequests) - len(kept)
	r.ValidationRequests = kept
	r.Status = models.RecruiterPendingValidation
	r.UpdatedAt = now
	return dropped, nil
}

// ReviewValidationResponse approves or rejects a submitted answer.
func ReviewValidationResponse(r *models.Recruiter, requestID uuid.UUID, approve bool, now time.Time) error {
	req, ok := r.ValidationRequests.Find(requestID)
	if !ok {
		return ErrRequestNotFound
	}
	next := models.RequestRejected
	if approve {
		next = models.RequestApproved
	}
	if req.Status != models.RequestSubmitted {
		return invalid(MachineRequest, req.Status, next)
	}
	req.Status = next
	reviewed := now
	req.ReviewedAt = &reviewed
	r.UpdatedAt = now
	return nil
}

// ValidateRecruiter closes the cycle positively.
func ValidateRecruiter(r *models.Recruiter, now time.Time) error {
	if r.Status != models.RecruiterPendingValidation && r.Status != models.RecruiterPendingRevalidation {
		return invalid(MachineRecruiter, r.Status, models.RecruiterValidated)
	}
	r.Status = models.RecruiterValidated
	r.RejectionReason = ""
	validated := now
	r.ValidatedAt = &validated
	r.UpdatedAt = now
	return nil
}

// RejectRecruiter closes the cycle negatively from any open status.
func RejectRecruiter(r *models.Recruiter, reason string, now time.Time) error {
	if !openCycle(r.Status) {
		return invalid(MachineRecruiter, r.Status, models.RecruiterRejected)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	r.Status = models.RecruiterRejected
	r.RejectionReason = reason
	r.UpdatedAt = now
	return nil
}

// PromoteToCompanyAdmin grants company administration rights.
func PromoteToCompanyAdmin(r *models.Recruiter, now time.Time) {
	r.IsAdmin = true
	r.Permissions.EditCompany = true
	r.Permissions.ManageTeam = true
	r.UpdatedAt = now
}
