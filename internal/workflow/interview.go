package workflow

import (
	"time"

	"recruit-api/internal/models"
)

func rescheduledBy(role models.Role) models.InterviewStatus {
	if role == models.RoleCandidate {
		return models.InterviewRescheduledByCandidate
	}
	return models.InterviewRescheduledByRecruiter
}

func cancelledBy(role models.Role) models.InterviewStatus {
	if role == models.RoleCandidate {
		return models.InterviewCancelledByCandidate
	}
	return models.InterviewCancelledByRecruiter
}

// ConfirmInterview is the candidate accepting the recruiter's proposal.
func ConfirmInterview(iv *models.Interview, now time.Time) error {
	if iv.Status != models.InterviewProposed && iv.Status != models.InterviewRescheduledByRecruiter {
		return invalid(MachineInterview, iv.Status, models.InterviewConfirmed)
	}
	if iv.ProposedAlternative != nil {
		iv.ScheduledAt = iv.ProposedAlternative.Date
		iv.ProposedAlternative = nil
	}
	iv.Status = models.InterviewConfirmed
	iv.UpdatedAt = now
	return nil
}

// RescheduleInterview records a counter-proposal from one side.
func RescheduleInterview(iv *models.Interview, by models.Role, date time.Time, message string, now time.Time) error {
	next := rescheduledBy(by)
	if iv.Status.Closed() {
		return invalid(MachineInterview, iv.Status, next)
	}
	iv.Status = next
	iv.ProposedAlternative = &models.ProposedAlternative{Date: date, ProposedBy: by, Message: message}
	iv.UpdatedAt = now
	return nil
}

// AcceptAlternative lets the other side agree to the counter-proposal.
func AcceptAlternative(iv *models.Interview, by models.Role, now time.Time) error {
	alt := iv.ProposedAlternative
	if alt == nil || alt.ProposedBy == by || iv.Status != rescheduledBy(alt.ProposedBy) {
		return invalid(MachineInterview, iv.Status, models.InterviewConfirmed)
	}
	iv.ScheduledAt = alt.Date
	iv.ProposedAlternative = nil
	iv.Status = models.InterviewConfirmed
	iv.UpdatedAt = now
	return nil
}

// CancelInterview closes an open interview on behalf of one side.
func CancelInterview(iv *models.Interview, by models.Role, reason string, now time.Time) error {
	next := cancelledBy(by)
	if iv.Status.Closed() {
		return invalid(MachineInterview, iv.Status, next)
	}
	iv.Status = next
	iv.CancellationReason = reason
	iv.ProposedAlternative = nil
	iv.UpdatedAt = now
	return nil
}

// CloseInterview marks a confirmed interview completed or missed.
func CloseInterview(iv *models.Interview, outcome models.InterviewStatus, now time.Time) error {
	if iv.Status != models.InterviewConfirmed ||
		(outcome != models.InterviewCompleted && outcome != models.InterviewNoShow) {
		return invalid(MachineInterview, iv.Status, outcome)
	}
	iv.Status = outcome
	iv.UpdatedAt = now
	return nil
}

// CancellableOnWithdraw reports whether a withdrawal must cancel the
// interview: still open and scheduled in the future.
func CancellableOnWithdraw(iv *models.Interview, now time.Time) bool {
	return (iv.Status == models.InterviewProposed || iv.Status == models.InterviewConfirmed) &&
		iv.ScheduledAt.After(now)
}
