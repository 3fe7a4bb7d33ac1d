package services

import (
	"context"
	"fmt"
	"log"

	"recruit-api/internal/models"
	"recruit-api/internal/transport/dto"
	"recruit-api/internal/workflow"

	"github.com/google/uuid"
)

const defaultInterviewMinutes = 60

type interviewService struct {
	*Deps
}

// NewInterviewService creates a new instance of InterviewService.
func NewInterviewService(d *Deps) InterviewService {
	return &interviewService{Deps: d}
}

// interviewCtx bundles an interview with the records that decide who may
// act on it.
type interviewCtx struct {
	iv    *models.Interview
	app   *models.Application
	offer *models.Offer
}

// participantApplication loads an application the actor takes part in,
// either as its candidate or as the offer's recruiter.
func (s *interviewService) participantApplication(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, *models.Offer, error) {
	switch actor.Role {
	case models.RoleCandidate:
		app, err := s.candidateApplication(ctx, actor, appID)
		if err != nil {
			return nil, nil, err
		}
		offer, err := s.Store.Offers.GetByID(ctx, app.OfferID)
		if err != nil {
			return nil, nil, mapRepoError(err, "fetching offer")
		}
		return app, offer, nil
	case models.RoleRecruiter:
		return s.recruiterApplication(ctx, actor, appID)
	default:
		return nil, nil, fmt.Errorf("%w: only interview participants may do this", ErrForbidden)
	}
}

func (s *interviewService) load(ctx context.Context, actor models.Identity, interviewID uuid.UUID) (*interviewCtx, error) {
	iv, err := s.Store.Interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching interview %s", interviewID))
	}
	app, offer, err := s.participantApplication(ctx, actor, iv.ApplicationID)
	if err != nil {
		return nil, err
	}
	return &interviewCtx{iv: iv, app: app, offer: offer}, nil
}

// notifyOther tells the party that did not act.
func (s *interviewService) notifyOther(ctx context.Context, actor models.Identity, c *interviewCtx, message string) {
	if actor.Role == models.RoleRecruiter {
		s.notify(c.app.CandidateID, models.NotificationInfo, message)
		return
	}
	if userID, err := s.recruiterUserID(ctx, c.offer.RecruiterID); err == nil {
		s.notify(userID, models.NotificationInfo, message)
	}
}

func (s *interviewService) save(ctx context.Context, c *interviewCtx, from models.InterviewStatus) error {
	if err := s.Store.Interviews.Update(ctx, c.iv); err != nil {
		return mapRepoError(err, "updating interview")
	}
	s.transitioned(string(workflow.MachineInterview), string(from), string(c.iv.Status))
	return nil
}

// Propose schedules an interview and moves the application to
// entretien_planifie.
func (s *interviewService) Propose(ctx context.Context, actor models.Identity, appID uuid.UUID, req *dto.ProposeInterviewRequest) (*models.Interview, error) {
	app, offer, err := s.recruiterApplication(ctx, actor, appID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !req.ScheduledAt.After(now) {
		return nil, fmt.Errorf("%w: interview must be scheduled in the future", ErrValidation)
	}

	if app.RecruiterStatus != models.StatusEntretienPlanifie {
		from := app.RecruiterStatus
		if err := workflow.TransitionApplication(app, models.StatusEntretienPlanifie, actor.UserID, "Entretien proposé", now); err != nil {
			return nil, mapWorkflowError(err)
		}
		if err := s.Store.Applications.Update(ctx, app); err != nil {
			return nil, mapRepoError(err, "updating application status")
		}
		s.transitioned(string(workflow.MachineApplication), string(from), string(app.RecruiterStatus))
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = defaultInterviewMinutes
	}
	iv := &models.Interview{
		ID:              uuid.New(),
		ApplicationID:   app.ID,
		ScheduledAt:     req.ScheduledAt.UTC(),
		DurationMinutes: duration,
		Location:        req.Location,
		Mode:            req.Mode,
		Notes:           req.Notes,
		Status:          models.InterviewProposed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.Interviews.Create(ctx, iv); err != nil {
		return nil, mapRepoError(err, "creating interview")
	}
	s.notify(app.CandidateID, models.NotificationInfo,
		fmt.Sprintf("Un entretien vous est proposé pour « %s » le %s", offer.Title, iv.ScheduledAt.Format("02/01/2006 15:04")))
	return iv, nil
}

func (s *interviewService) ListForApplication(ctx context.Context, actor models.Identity, appID uuid.UUID) ([]models.Interview, error) {
	if _, _, err := s.participantApplication(ctx, actor, appID); err != nil {
		return nil, err
	}
	ivs, err := s.Store.Interviews.ListByApplication(ctx, appID)
	if err != nil {
		return nil, mapRepoError(err, "listing interviews")
	}
	return ivs, nil
}

func (s *interviewService) Confirm(ctx context.Context, actor models.Identity, interviewID uuid.UUID) (*models.Interview, error) {
	if err := requireRole(actor, models.RoleCandidate); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, actor, interviewID)
	if err != nil {
		return nil, err
	}
	from := c.iv.Status
	if err := workflow.ConfirmInterview(c.iv, s.now()); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.save(ctx, c, from); err != nil {
		return nil, err
	}
	s.notifyOther(ctx, actor, c, fmt.Sprintf("Entretien confirmé pour « %s »", c.offer.Title))
	return c.iv, nil
}

func (s *interviewService) Reschedule(ctx context.Context, actor models.Identity, interviewID uuid.UUID, req *dto.RescheduleRequest) (*models.Interview, error) {
	c, err := s.load(ctx, actor, interviewID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !req.Date.After(now) {
		return nil, fmt.Errorf("%w: alternative date must be in the future", ErrValidation)
	}
	from := c.iv.Status
	if err := workflow.RescheduleInterview(c.iv, actor.Role, req.Date.UTC(), req.Message, now); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.save(ctx, c, from); err != nil {
		return nil, err
	}
	s.notifyOther(ctx, actor, c, fmt.Sprintf("Nouvelle date proposée pour l'entretien « %s » : %s",
		c.offer.Title, req.Date.UTC().Format("02/01/2006 15:04")))
	return c.iv, nil
}

func (s *interviewService) AcceptAlternative(ctx context.Context, actor models.Identity, interviewID uuid.UUID) (*models.Interview, error) {
	c, err := s.load(ctx, actor, interviewID)
	if err != nil {
		return nil, err
	}
	from := c.iv.Status
	if err := workflow.AcceptAlternative(c.iv, actor.Role, s.now()); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.save(ctx, c, from); err != nil {
		return nil, err
	}
	s.notifyOther(ctx, actor, c, fmt.Sprintf("La nouvelle date de l'entretien « %s » a été acceptée", c.offer.Title))
	return c.iv, nil
}

func (s *interviewService) Cancel(ctx context.Context, actor models.Identity, interviewID uuid.UUID, reason string) (*models.Interview, error) {
	c, err := s.load(ctx, actor, interviewID)
	if err != nil {
		return nil, err
	}
	from := c.iv.Status
	if err := workflow.CancelInterview(c.iv, actor.Role, reason, s.now()); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.save(ctx, c, from); err != nil {
		return nil, err
	}
	s.notifyOther(ctx, actor, c, fmt.Sprintf("L'entretien pour « %s » a été annulé", c.offer.Title))
	return c.iv, nil
}

// Close records the outcome of a confirmed interview. A completed interview
// moves the application to entretien_termine when it is still planned.
func (s *interviewService) Close(ctx context.Context, actor models.Identity, interviewID uuid.UUID, outcome models.InterviewStatus) (*models.Interview, error) {
	if err := requireRole(actor, models.RoleRecruiter); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, actor, interviewID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	from := c.iv.Status
	if err := workflow.CloseInterview(c.iv, outcome, now); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.save(ctx, c, from); err != nil {
		return nil, err
	}

	if outcome == models.InterviewCompleted && c.app.RecruiterStatus == models.StatusEntretienPlanifie {
		appFrom := c.app.RecruiterStatus
		if err := workflow.TransitionApplication(c.app, models.StatusEntretienTermine, actor.UserID, "Entretien terminé", now); err != nil {
			log.Printf("Close: cannot advance application %s: %v", c.app.ID, err)
			return c.iv, nil
		}
		if err := s.Store.Applications.Update(ctx, c.app); err != nil {
			return nil, mapRepoError(err, "updating application status")
		}
		s.transitioned(string(workflow.MachineApplication), string(appFrom), string(c.app.RecruiterStatus))
	}
	return c.iv, nil
}
