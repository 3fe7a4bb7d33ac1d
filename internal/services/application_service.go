package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"recruit-api/internal/mailer"
	"recruit-api/internal/models"
	"recruit-api/internal/transport/dto"
	"recruit-api/internal/workflow"

	"github.com/google/uuid"
)

type applicationService struct {
	*Deps
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(d *Deps) ApplicationService {
	return &applicationService{Deps: d}
}

func (s *applicationService) adjustCounter(ctx context.Context, offerID uuid.UUID, delta int) {
	if err := s.Store.Offers.AdjustApplicationCount(ctx, offerID, delta); err != nil {
		log.Printf("ApplicationService: Error adjusting counter of offer %s by %d: %v", offerID, delta, err)
	}
}

func (s *applicationService) Apply(ctx context.Context, actor models.Identity, req *dto.ApplyRequest) (*models.Application, error) {
	if err := requireRole(actor, models.RoleCandidate); err != nil {
		return nil, err
	}
	user, err := s.Store.Users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, mapRepoError(err, "fetching user")
	}
	if !user.EmailVerified {
		return nil, &PreconditionError{Code: CodeEmailNotVerified, Message: "email address must be verified before applying"}
	}

	offer, err := s.Store.Offers.GetByID(ctx, req.OfferID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching offer %s for application", req.OfferID))
	}
	if !offer.IsVisible() {
		log.Printf("Apply: Attempt to apply to hidden offer %s (status %s, actif %t)", offer.ID, offer.ValidationStatus, offer.Actif)
		return nil, fmt.Errorf("%w: offer %s", ErrNotFound, req.OfferID)
	}

	now := s.now()
	app := workflow.NewApplication(offer.ID, actor.UserID, models.SourceDirect, now)
	app.CoverLetter = req.CoverLetter
	app.CVURL = req.CVURL
	if app.CVURL == "" {
		if cand, err := s.Store.Candidates.GetByUserID(ctx, actor.UserID); err == nil {
			app.CVURL = cand.CVURL
		}
	}
	if err := s.Store.Applications.Create(ctx, app); err != nil {
		return nil, mapRepoError(err, "creating application (already applied?)")
	}
	s.adjustCounter(ctx, offer.ID, 1)

	if userID, err := s.recruiterUserID(ctx, offer.RecruiterID); err == nil {
		s.notify(userID, models.NotificationInfo,
			fmt.Sprintf("Nouvelle candidature de %s pour « %s »", user.Name, offer.Title))
	}
	log.Printf("ApplicationService: Candidate %s applied to offer %s", actor.UserID, offer.ID)
	return app, nil
}

// Propose creates an application on behalf of a candidate. The offer must
// have candidate search switched on.
func (s *applicationService) Propose(ctx context.Context, actor models.Identity, offerID uuid.UUID, req *dto.ProposeCandidateRequest) (*models.Application, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapValidateOffers); err != nil {
		return nil, err
	}
	offer, err := s.Store.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching offer %s for proposal", offerID))
	}
	if !offer.IsVisible() {
		return nil, fmt.Errorf("%w: offer %s is not published", ErrConflict, offerID)
	}
	if offer.CandidateSearchMode != models.SearchManual && offer.CandidateSearchMode != models.SearchAutomatic {
		return nil, &PreconditionError{Code: CodeCandidateSearchOff, Message: "candidate search is disabled for this offer"}
	}
	candidate, err := s.Store.Users.GetByID(ctx, req.CandidateID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching candidate %s", req.CandidateID))
	}
	if candidate.Role != models.RoleCandidate {
		return nil, fmt.Errorf("%w: user %s is not a candidate", ErrValidation, candidate.ID)
	}

	now := s.now()
	app := workflow.NewApplication(offer.ID, candidate.ID, models.SourceAdminProposal, now)
	app.StatusHistory[0].ChangedBy = actor.UserID
	app.StatusHistory[0].Note = strings.TrimSpace(req.Note)
	if cand, err := s.Store.Candidates.GetByUserID(ctx, candidate.ID); err == nil {
		app.CVURL = cand.CVURL
	}
	if err := s.Store.Applications.Create(ctx, app); err != nil {
		return nil, mapRepoError(err, "creating proposed application (already applied?)")
	}
	s.adjustCounter(ctx, offer.ID, 1)

	s.notify(candidate.ID, models.NotificationInfo,
		fmt.Sprintf("Votre profil a été proposé pour l'offre « %s »", offer.Title))
	if userID, err := s.recruiterUserID(ctx, offer.RecruiterID); err == nil {
		s.notify(userID, models.NotificationInfo,
			fmt.Sprintf("Un candidat vous a été proposé pour « %s » : %s", offer.Title, candidate.Name))
	}
	s.audit(ctx, actor.UserID, models.ActionCandidateProposed, models.TargetOffer, offer.ID, models.LogDetails{
		"candidateId":   candidate.ID.String(),
		"applicationId": app.ID.String(),
	})
	return app, nil
}

func (s *applicationService) ListMine(ctx context.Context, actor models.Identity) ([]models.Application, error) {
	if err := requireRole(actor, models.RoleCandidate); err != nil {
		return nil, err
	}
	apps, err := s.Store.Applications.ListByCandidate(ctx, actor.UserID)
	if err != nil {
		return nil, mapRepoError(err, "listing applications")
	}
	return apps, nil
}

func (s *applicationService) GetForCandidate(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, error) {
	return s.candidateApplication(ctx, actor, appID)
}

func (s *applicationService) Withdraw(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, error) {
	app, err := s.candidateApplication(ctx, actor, appID)
	if err != nil {
		return nil, err
	}
	from := app.RecruiterStatus
	now := s.now()
	if err := workflow.Withdraw(app, actor.UserID, now); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.Store.Applications.Update(ctx, app); err != nil {
		return nil, mapRepoError(err, "withdrawing application")
	}
	s.transitioned(string(workflow.MachineApplication), string(from), string(app.RecruiterStatus))
	s.adjustCounter(ctx, app.OfferID, -1)
	s.cancelUpcomingInterviews(ctx, app.ID, now)

	if offer, err := s.Store.Offers.GetByID(ctx, app.OfferID); err == nil {
		if userID, err := s.recruiterUserID(ctx, offer.RecruiterID); err == nil {
			s.notify(userID, models.NotificationInfo,
				fmt.Sprintf("Un candidat a retiré sa candidature pour « %s »", offer.Title))
		}
	}
	return app, nil
}

func (s *applicationService) cancelUpcomingInterviews(ctx context.Context, appID uuid.UUID, now time.Time) {
	interviews, err := s.Store.Interviews.ListByApplication(ctx, appID)
	if err != nil {
		log.Printf("Withdraw: Error listing interviews of application %s: %v", appID, err)
		return
	}
	for i := range interviews {
		iv := &interviews[i]
		if !workflow.CancellableOnWithdraw(iv, now) {
			continue
		}
		from := iv.Status
		if err := workflow.CancelInterview(iv, models.RoleCandidate, "Candidature retirée", now); err != nil {
			continue
		}
		if err := s.Store.Interviews.Update(ctx, iv); err != nil {
			log.Printf("Withdraw: Error cancelling interview %s: %v", iv.ID, err)
			continue
		}
		s.transitioned(string(workflow.MachineInterview), string(from), string(iv.Status))
	}
}

func (s *applicationService) Cancel(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, error) {
	app, err := s.candidateApplication(ctx, actor, appID)
	if err != nil {
		return nil, err
	}
	from := app.RecruiterStatus
	if err := workflow.Cancel(app, actor.UserID, s.now()); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.Store.Applications.Update(ctx, app); err != nil {
		return nil, mapRepoError(err, "cancelling application")
	}
	s.transitioned(string(workflow.MachineApplication), string(from), string(app.RecruiterStatus))
	s.adjustCounter(ctx, app.OfferID, -1)
	return app, nil
}

func (s *applicationService) ListForOffer(ctx context.Context, actor models.Identity, offerID uuid.UUID, status *models.RecruiterStatus) ([]models.Application, error) {
	if _, _, err := s.ownedOffer(ctx, actor, offerID); err != nil {
		return nil, err
	}
	apps, err := s.Store.Applications.ListByOffer(ctx, offerID, status)
	if err != nil {
		return nil, mapRepoError(err, "listing offer applications")
	}
	return apps, nil
}

// GetForRecruiter returns the application detail and marks it seen.
func (s *applicationService) GetForRecruiter(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, error) {
	app, _, err := s.recruiterApplication(ctx, actor, appID)
	if err != nil {
		return nil, err
	}
	from := app.RecruiterStatus
	if workflow.MarkSeen(app, actor.UserID, "", s.now()) {
		if err := s.Store.Applications.Update(ctx, app); err != nil {
			return nil, mapRepoError(err, "marking application seen")
		}
		if from != app.RecruiterStatus {
			s.transitioned(string(workflow.MachineApplication), string(from), string(app.RecruiterStatus))
		}
	}
	return app, nil
}

func (s *applicationService) Transition(ctx context.Context, actor models.Identity, appID uuid.UUID, req *dto.TransitionRequest) (*models.Application, error) {
	app, offer, err := s.recruiterApplication(ctx, actor, appID)
	if err != nil {
		return nil, err
	}
	from := app.RecruiterStatus
	if err := workflow.TransitionApplication(app, req.Status, actor.UserID, req.Note, s.now()); err != nil {
		log.Printf("Transition: rejected %s -> %s on application %s", from, req.Status, app.ID)
		return nil, mapWorkflowError(err)
	}
	if err := s.Store.Applications.Update(ctx, app); err != nil {
		return nil, mapRepoError(err, "updating application status")
	}
	s.transitioned(string(workflow.MachineApplication), string(from), string(app.RecruiterStatus))
	s.notifyDecision(app, offer)
	return app, nil
}

func (s *applicationService) notifyDecision(app *models.Application, offer *models.Offer) {
	var msg string
	switch app.RecruiterStatus {
	case models.StatusRetenue:
		msg = fmt.Sprintf("Félicitations ! Votre candidature pour « %s » a été retenue.", offer.Title)
	case models.StatusRefusee:
		msg = fmt.Sprintf("Votre candidature pour « %s » n'a pas été retenue.", offer.Title)
	default:
		return
	}
	s.notify(app.CandidateID, models.NotificationInfo, msg)
	s.email(app.CandidateID, mailer.TemplateApplicationDecided, map[string]any{"Message": msg})
}

// MarkAllSeen flags every unseen application of the offer. Applications
// still in nouvelle are promoted to consultee.
func (s *applicationService) MarkAllSeen(ctx context.Context, actor models.Identity, offerID uuid.UUID) (*dto.MarkSeenResponse, error) {
	if _, _, err := s.ownedOffer(ctx, actor, offerID); err != nil {
		return nil, err
	}
	apps, err := s.Store.Applications.ListByOffer(ctx, offerID, nil)
	if err != nil {
		return nil, mapRepoError(err, "listing offer applications")
	}
	resp := &dto.MarkSeenResponse{}
	now := s.now()
	for i := range apps {
		app := &apps[i]
		from := app.RecruiterStatus
		if !workflow.MarkSeen(app, actor.UserID, "Marquée comme vue", now) {
			continue
		}
		if err := s.Store.Applications.Update(ctx, app); err != nil {
			return nil, mapRepoError(err, fmt.Sprintf("marking application %s seen", app.ID))
		}
		resp.Seen++
		if from != app.RecruiterStatus {
			resp.Promoted++
			s.transitioned(string(workflow.MachineApplication), string(from), string(app.RecruiterStatus))
		}
	}
	return resp, nil
}

func (s *applicationService) Star(ctx context.Context, actor models.Identity, appID uuid.UUID, starred bool) (*models.Application, error) {
	app, _, err := s.recruiterApplication(ctx, actor, appID)
	if err != nil {
		return nil, err
	}
	if app.IsStarred == starred {
		return app, nil
	}
	app.IsStarred = starred
	app.UpdatedAt = s.now()
	if err := s.Store.Applications.Update(ctx, app); err != nil {
		return nil, mapRepoError(err, "starring application")
	}
	return app, nil
}
