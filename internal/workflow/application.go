package workflow

import (
	"slices"
	"time"

	"recruit-api/internal/models"

	"github.com/google/uuid"
)

// NextRecruiterStatuses lists the statuses a recruiter may move an
// application to from the given status.
func NextRecruiterStatuses(from models.RecruiterStatus) []models.RecruiterStatus {
	switch from {
	case models.StatusNouvelle:
		return []models.RecruiterStatus{models.StatusConsultee, models.StatusPreselection, models.StatusRefusee}
	case models.StatusConsultee:
		return []models.RecruiterStatus{models.StatusPreselection, models.StatusEnDiscussion, models.StatusRefusee}
	case models.StatusPreselection:
		return []models.RecruiterStatus{models.StatusEnDiscussion, models.StatusEntretienPlanifie, models.StatusRefusee}
	case models.StatusEnDiscussion:
		return []models.RecruiterStatus{models.StatusPreselection, models.StatusEntretienPlanifie, models.StatusRefusee}
	case models.StatusEntretienPlanifie:
		return []models.RecruiterStatus{models.StatusEntretienTermine, models.StatusRefusee}
	case models.StatusEntretienTermine:
		return []models.RecruiterStatus{models.StatusRetenue, models.StatusRefusee, models.StatusEntretienPlanifie}
	case models.StatusRetenue, models.StatusRefusee, models.StatusRetireeParCandidat, models.StatusAnnuleeParCandidat:
		return nil
	default:
		return nil
	}
}

// CanTransition reports whether from -> to is in the recruiter table.
func CanTransition(from, to models.RecruiterStatus) bool {
	return slices.Contains(NextRecruiterStatuses(from), to)
}

// CandidateStatusFor derives the candidate-facing status.
func CandidateStatusFor(s models.RecruiterStatus) models.CandidateStatus {
	switch s {
	case models.StatusNouvelle:
		return models.CandidateEnvoyee
	case models.StatusConsultee, models.StatusPreselection, models.StatusEnDiscussion,
		models.StatusEntretienPlanifie, models.StatusEntretienTermine:
		return models.CandidateEnCours
	case models.StatusRetenue:
		return models.CandidateRetenue
	case models.StatusRefusee:
		return models.CandidateNonRetenue
	case models.StatusRetireeParCandidat:
		return models.CandidateRetiree
	case models.StatusAnnuleeParCandidat:
		return models.CandidateAnnulee
	default:
		return models.CandidateEnvoyee
	}
}

// NewApplication builds a fresh application in status nouvelle.
func NewApplication(offerID, candidateID uuid.UUID, source models.ApplicationSource, now time.Time) *models.Application {
	app := &models.Application{
		ID:              uuid.New(),
		OfferID:         offerID,
		CandidateID:     candidateID,
		RecruiterStatus: models.StatusNouvelle,
		CandidateStatus: models.CandidateEnvoyee,
		Source:          source,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	app.StatusHistory = models.StatusHistory{{
		CandidateStatus: app.CandidateStatus,
		RecruiterStatus: app.RecruiterStatus,
		ChangedBy:       candidateID,
		ChangedAt:       now,
	}}
	return app
}

func record(app *models.Application, recruiterStatus models.RecruiterStatus, candidateStatus models.CandidateStatus, actor uuid.UUID, note string, now time.Time) {
	app.RecruiterStatus = recruiterStatus
	app.CandidateStatus = candidateStatus
	app.UpdatedAt = now
	app.StatusHistory = append(app.StatusHistory, models.StatusChange{
		CandidateStatus: candidateStatus,
		RecruiterStatus: recruiterStatus,
		ChangedBy:       actor,
		Note:            note,
		ChangedAt:       now,
	})
}

// TransitionApplication applies a recruiter-requested status change. The
// application is left untouched when the change is not allowed.
func TransitionApplication(app *models.Application, to models.RecruiterStatus, actor uuid.UUID, note string, now time.Time) error {
	if !CanTransition(app.RecruiterStatus, to) {
		return invalid(MachineApplication, app.RecruiterStatus, to)
	}
	record(app, to, CandidateStatusFor(to), actor, note, now)
	if to == models.StatusRetenue || to == models.StatusRefusee {
		decided := now
		app.DecisionAt = &decided
	}
	if !app.SeenByRecruiter {
		app.SeenByRecruiter = true
		seen := now
		app.SeenAt = &seen
	}
	return nil
}

// MarkSeen flags the application as seen by the recruiter and promotes it
// from nouvelle to consultee. It returns false when nothing changed.
func MarkSeen(app *models.Application, actor uuid.UUID, note string, now time.Time) bool {
	if app.SeenByRecruiter {
		return false
	}
	app.SeenByRecruiter = true
	seen := now
	app.SeenAt = &seen
	app.UpdatedAt = now
	if app.RecruiterStatus == models.StatusNouvelle {
		record(app, models.StatusConsultee, models.CandidateEnCours, actor, note, now)
	}
	return true
}

// Withdraw ends a non-terminal application on the candidate's behalf.
func Withdraw(app *models.Application, actor uuid.UUID, now time.Time) error {
	if app.RecruiterStatus.Terminal() {
		return invalid(MachineApplication, app.RecruiterStatus, models.StatusRetireeParCandidat)
	}
	record(app, models.StatusRetireeParCandidat, models.CandidateRetiree, actor, "", now)
	return nil
}

// Cancel withdraws an application the recruiter has not opened yet.
func Cancel(app *models.Application, actor uuid.UUID, now time.Time) error {
	if app.RecruiterStatus != models.StatusNouvelle || app.SeenByRecruiter {
		return ErrCancelWindowClosed
	}
	record(app, models.StatusAnnuleeParCandidat, models.CandidateAnnulee, actor, "", now)
	return nil
}
