package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"recruit-api/internal/mailer"
	"recruit-api/internal/models"
	"recruit-api/internal/transport/dto"
	"recruit-api/internal/workflow"

	"github.com/google/uuid"
)

type recruiterService struct {
	*Deps
}

// NewRecruiterService creates a new instance of RecruiterService.
func NewRecruiterService(d *Deps) RecruiterService {
	return &recruiterService{Deps: d}
}

// promoteFirstValidated makes the earliest validated recruiter of an active
// company its administrator, unless the company already has one. It returns
// the promoted recruiter, or nil.
func (d *Deps) promoteFirstValidated(ctx context.Context, companyID uuid.UUID, now time.Time) (*models.Recruiter, error) {
	company, err := d.Store.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, mapRepoError(err, "fetching company")
	}
	if company.Status != models.CompanyActive {
		return nil, nil
	}
	team, err := d.Store.Recruiters.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepoError(err, "listing company recruiters")
	}
	var first *models.Recruiter
	for i := range team {
		r := &team[i]
		if r.IsAdmin {
			return nil, nil
		}
		if r.Status != models.RecruiterValidated {
			continue
		}
		if first == nil || validatedBefore(r, first) {
			first = r
		}
	}
	if first == nil {
		return nil, nil
	}
	workflow.PromoteToCompanyAdmin(first, now)
	if err := d.Store.Recruiters.Update(ctx, first); err != nil {
		return nil, mapRepoError(err, "promoting company admin")
	}
	log.Printf("Recruiter %s promoted to admin of company %s", first.ID, companyID)
	d.notify(first.UserID, models.NotificationValidation,
		fmt.Sprintf("Vous êtes désormais administrateur de l'entreprise %s", company.Name))
	return first, nil
}

func validatedBefore(a, b *models.Recruiter) bool {
	ta, tb := a.CreatedAt, b.CreatedAt
	if a.ValidatedAt != nil {
		ta = *a.ValidatedAt
	}
	if b.ValidatedAt != nil {
		tb = *b.ValidatedAt
	}
	return ta.Before(tb)
}

func (s *recruiterService) GetMine(ctx context.Context, actor models.Identity) (*models.Recruiter, error) {
	return s.recruiterFor(ctx, actor)
}

func (s *recruiterService) UpdateMine(ctx context.Context, actor models.Identity, req *dto.UpdateRecruiterProfileRequest) (*models.Recruiter, error) {
	rec, err := s.recruiterFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	if req.Position != nil {
		rec.Position = strings.TrimSpace(*req.Position)
	}
	if req.Phone != nil {
		rec.Phone = strings.TrimSpace(*req.Phone)
	}
	rec.UpdatedAt = s.now()
	if err := s.Store.Recruiters.Update(ctx, rec); err != nil {
		return nil, mapRepoError(err, "updating recruiter profile")
	}
	return rec, nil
}

// RespondToRequest answers one validation request on the recruiter's side.
func (s *recruiterService) RespondToRequest(ctx context.Context, actor models.Identity, requestID uuid.UUID, req *dto.ValidationResponseRequest) (*models.Recruiter, error) {
	rec, err := s.recruiterFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Message) == "" && len(req.Documents) == 0 {
		return nil, fmt.Errorf("%w: a message or at least one document is required", ErrValidation)
	}
	for _, doc := range req.Documents {
		if !s.Blob.Owns(doc) {
			return nil, fmt.Errorf("%w: document %q was not uploaded here", ErrValidation, doc)
		}
	}
	from := rec.Status
	if err := workflow.SubmitValidationResponse(rec, requestID, req.Message, req.Documents, s.now()); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.Store.Recruiters.Update(ctx, rec); err != nil {
		return nil, mapRepoError(err, "saving validation response")
	}
	s.transitioned(string(workflow.MachineRecruiter), string(from), string(rec.Status))
	s.notifyAdmins(models.CapValidateRecruiters, models.NotificationValidation,
		fmt.Sprintf("Un recruteur a répondu à une demande de validation (%s)", rec.ID))
	return rec, nil
}

func (s *recruiterService) ListTeam(ctx context.Context, actor models.Identity) ([]models.Recruiter, error) {
	rec, err := s.recruiterFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	team, err := s.Store.Recruiters.ListByCompany(ctx, rec.CompanyID)
	if err != nil {
		return nil, mapRepoError(err, "listing team")
	}
	return team, nil
}

func (s *recruiterService) UpdateTeamPermissions(ctx context.Context, actor models.Identity, recruiterID uuid.UUID, req *dto.UpdateTeamPermissionsRequest) (*models.Recruiter, error) {
	me, err := s.recruiterFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !me.Permissions.ManageTeam {
		return nil, fmt.Errorf("%w: manageTeam permission required", ErrForbidden)
	}
	if me.ID == recruiterID {
		return nil, fmt.Errorf("%w: cannot change your own permissions", ErrForbidden)
	}
	target, err := s.Store.Recruiters.GetByID(ctx, recruiterID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching recruiter %s", recruiterID))
	}
	if target.CompanyID != me.CompanyID {
		return nil, fmt.Errorf("%w: recruiter %s", ErrNotFound, recruiterID)
	}
	if req.PostJobs != nil {
		target.Permissions.PostJobs = *req.PostJobs
	}
	if req.ReviewJobs != nil {
		target.Permissions.ReviewJobs = *req.ReviewJobs
	}
	if req.ManageTeam != nil {
		target.Permissions.ManageTeam = *req.ManageTeam
	}
	if req.EditCompany != nil {
		target.Permissions.EditCompany = *req.EditCompany
	}
	target.UpdatedAt = s.now()
	if err := s.Store.Recruiters.Update(ctx, target); err != nil {
		return nil, mapRepoError(err, "updating team permissions")
	}
	return target, nil
}

func (s *recruiterService) List(ctx context.Context, actor models.Identity, status *models.RecruiterValidationStatus) ([]models.Recruiter, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapValidateRecruiters); err != nil {
		return nil, err
	}
	recs, err := s.Store.Recruiters.List(ctx, status)
	if err != nil {
		return nil, mapRepoError(err, "listing recruiters")
	}
	return recs, nil
}

func (s *recruiterService) load(ctx context.Context, actor models.Identity, recruiterID uuid.UUID) (*models.Recruiter, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapValidateRecruiters); err != nil {
		return nil, err
	}
	rec, err := s.Store.Recruiters.GetByID(ctx, recruiterID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching recruiter %s", recruiterID))
	}
	return rec, nil
}

func (s *recruiterService) Get(ctx context.Context, actor models.Identity, recruiterID uuid.UUID) (*models.Recruiter, error) {
	return s.load(ctx, actor, recruiterID)
}

func (s *recruiterService) save(ctx context.Context, rec *models.Recruiter, from models.RecruiterValidationStatus, op string) error {
	if err := s.Store.Recruiters.Update(ctx, rec); err != nil {
		return mapRepoError(err, op)
	}
	if from != rec.Status {
		s.transitioned(string(workflow.MachineRecruiter), string(from), string(rec.Status))
	}
	return nil
}

func (s *recruiterService) RequestValidation(ctx context.Context, actor models.Identity, recruiterID uuid.UUID, req *dto.IssueValidationRequestsRequest) (*models.Recruiter, error) {
	rec, err := s.load(ctx, actor, recruiterID)
	if err != nil {
		return nil, err
	}
	batch := make([]models.ValidationRequest, 0, len(req.Requests))
	for _, in := range req.Requests {
		batch = append(batch, models.ValidationRequest{
			ID:                uuid.New(),
			Type:              in.Type,
			Message:           strings.TrimSpace(in.Message),
			RequiredDocuments: in.RequiredDocuments,
			RequiredFields:    in.RequiredFields,
		})
	}
	from := rec.Status
	if err := workflow.IssueValidationRequests(rec, batch, actor.UserID, s.now()); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.save(ctx, rec, from, "issuing validation requests"); err != nil {
		return nil, err
	}

	types := make([]string, 0, len(batch))
	for _, r := range batch {
		if !slices.Contains(types, string(r.Type)) {
			types = append(types, string(r.Type))
		}
	}
	s.audit(ctx, actor.UserID, models.ActionRecruiterInfoRequested, models.TargetRecruiter, rec.ID, models.LogDetails{
		"count":  len(batch),
		"types":  types,
		"status": string(rec.Status),
	})
	s.notify(rec.UserID, models.NotificationAlert,
		"L'équipe de validation a besoin d'informations complémentaires pour valider votre compte.")
	return rec, nil
}

func (s *recruiterService) CancelRequests(ctx context.Context, actor models.Identity, recruiterID uuid.UUID) (*models.Recruiter, error) {
	rec, err := s.load(ctx, actor, recruiterID)
	if err != nil {
		return nil, err
	}
	from := rec.Status
	dropped, err := workflow.CancelValidationRequests(rec, s.now())
	if err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.save(ctx, rec, from, "cancelling validation requests"); err != nil {
		return nil, err
	}
	s.audit(ctx, actor.UserID, models.ActionRecruiterRequestsCancel, models.TargetRecruiter, rec.ID, models.LogDetails{
		"dropped": dropped,
	})
	s.notify(rec.UserID, models.NotificationInfo, "Les demandes d'informations en attente ont été annulées.")
	return rec, nil
}

func (s *recruiterService) ReviewResponse(ctx context.Context, actor models.Identity, recruiterID, requestID uuid.UUID, approve bool) (*models.Recruiter, error) {
	rec, err := s.load(ctx, actor, recruiterID)
	if err != nil {
		return nil, err
	}
	if err := workflow.ReviewValidationResponse(rec, requestID, approve, s.now()); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.save(ctx, rec, rec.Status, "reviewing validation response"); err != nil {
		return nil, err
	}
	s.audit(ctx, actor.UserID, models.ActionRecruiterResponseReview, models.TargetRecruiter, rec.ID, models.LogDetails{
		"requestId": requestID.String(),
		"approved":  approve,
	})
	return rec, nil
}

func (s *recruiterService) Validate(ctx context.Context, actor models.Identity, recruiterID uuid.UUID) (*models.Recruiter, error) {
	rec, err := s.load(ctx, actor, recruiterID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	from := rec.Status
	if err := workflow.ValidateRecruiter(rec, now); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.save(ctx, rec, from, "validating recruiter"); err != nil {
		return nil, err
	}
	if promoted, err := s.promoteFirstValidated(ctx, rec.CompanyID, now); err != nil {
		log.Printf("Validate: company admin promotion for %s failed: %v", rec.CompanyID, err)
	} else if promoted != nil && promoted.ID == rec.ID {
		rec = promoted
	}

	s.audit(ctx, actor.UserID, models.ActionRecruiterValidated, models.TargetRecruiter, rec.ID, models.LogDetails{
		"from":         string(from),
		"companyAdmin": rec.IsAdmin,
	})
	msg := "Votre compte recruteur a été validé. Vous pouvez maintenant publier des offres."
	s.notify(rec.UserID, models.NotificationValidation, msg)
	s.email(rec.UserID, mailer.TemplateRecruiterDecision, map[string]any{"Message": msg})
	return rec, nil
}

func (s *recruiterService) Reject(ctx context.Context, actor models.Identity, recruiterID uuid.UUID, reason string) (*models.Recruiter, error) {
	rec, err := s.load(ctx, actor, recruiterID)
	if err != nil {
		return nil, err
	}
	from := rec.Status
	if err := workflow.RejectRecruiter(rec, reason, s.now()); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.save(ctx, rec, from, "rejecting recruiter"); err != nil {
		return nil, err
	}
	s.audit(ctx, actor.UserID, models.ActionRecruiterRejected, models.TargetRecruiter, rec.ID, models.LogDetails{
		"from":   string(from),
		"reason": rec.RejectionReason,
	})
	msg := fmt.Sprintf("Votre compte recruteur a été refusé. Motif : %s", rec.RejectionReason)
	s.notify(rec.UserID, models.NotificationAlert, msg)
	s.email(rec.UserID, mailer.TemplateRecruiterDecision, map[string]any{"Message": msg})
	return rec, nil
}
