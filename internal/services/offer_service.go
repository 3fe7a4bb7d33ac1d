package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"recruit-api/internal/mailer"
	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"
	"recruit-api/internal/workflow"

	"github.com/google/uuid"
)

type offerService struct {
	*Deps
}

// NewOfferService creates a new instance of OfferService.
func NewOfferService(d *Deps) OfferService {
	return &offerService{Deps: d}
}

// checkCanPost runs the offer creation preconditions in order and reports
// the first one that fails.
func (s *offerService) checkCanPost(ctx context.Context, actor models.Identity) (*models.Recruiter, error) {
	rec, err := s.recruiterFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	user, err := s.Store.Users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, mapRepoError(err, "fetching user")
	}
	if !user.EmailVerified {
		return nil, &PreconditionError{Code: CodeEmailNotVerified, Message: "email address must be verified before posting offers"}
	}
	if rec.Status != models.RecruiterValidated {
		return nil, &PreconditionError{Code: CodeRecruiterNotValidated, Message: "recruiter account has not been validated yet"}
	}
	company, err := s.Store.Companies.GetByID(ctx, rec.CompanyID)
	if err != nil {
		return nil, mapRepoError(err, "fetching company")
	}
	if company.Status != models.CompanyActive {
		return nil, &PreconditionError{Code: CodeCompanyNotActive, Message: "company is not active"}
	}
	if !rec.Permissions.PostJobs {
		return nil, &PreconditionError{Code: CodePostJobsPermissionReqd, Message: "postJobs permission is required"}
	}
	return rec, nil
}

func (s *offerService) Create(ctx context.Context, actor models.Identity, req *dto.CreateOfferRequest) (*models.Offer, error) {
	rec, err := s.checkCanPost(ctx, actor)
	if err != nil {
		return nil, err
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		return nil, fmt.Errorf("%w: salaryMax must not be lower than salaryMin", ErrValidation)
	}

	now := s.now()
	offer := &models.Offer{
		ID:                  uuid.New(),
		RecruiterID:         rec.ID,
		CompanyID:           rec.CompanyID,
		Title:               strings.TrimSpace(req.Title),
		Description:         req.Description,
		Requirements:        req.Requirements,
		Location:            req.Location,
		ContractType:        req.ContractType,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		ValidationStatus:    models.OfferPending,
		CandidateSearchMode: req.CandidateSearchMode,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if offer.CandidateSearchMode == "" {
		offer.CandidateSearchMode = models.SearchDisabled
	}
	if req.Draft {
		offer.ValidationStatus = models.OfferDraft
	}
	if err := s.Store.Offers.Create(ctx, offer); err != nil {
		return nil, mapRepoError(err, "creating offer")
	}
	if offer.ValidationStatus == models.OfferPending {
		s.notifyAdmins(models.CapValidateOffers, models.NotificationValidation,
			fmt.Sprintf("Nouvelle offre à valider : %s", offer.Title))
	}
	log.Printf("OfferService: Recruiter %s created offer %s (%s)", rec.ID, offer.ID, offer.ValidationStatus)
	return offer, nil
}

func applyOfferChanges(o *models.Offer, req *dto.UpdateOfferRequest) models.LogDetails {
	changed := models.LogDetails{}
	if req.Title != nil {
		o.Title = strings.TrimSpace(*req.Title)
		changed["title"] = o.Title
	}
	if req.Description != nil {
		o.Description = *req.Description
		changed["description"] = true
	}
	if req.Requirements != nil {
		o.Requirements = *req.Requirements
		changed["requirements"] = true
	}
	if req.Location != nil {
		o.Location = *req.Location
		changed["location"] = o.Location
	}
	if req.ContractType != nil {
		o.ContractType = *req.ContractType
		changed["contractType"] = o.ContractType
	}
	if req.SalaryMin != nil {
		o.SalaryMin = req.SalaryMin
		changed["salaryMin"] = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		o.SalaryMax = req.SalaryMax
		changed["salaryMax"] = *req.SalaryMax
	}
	if req.CandidateSearchMode != nil {
		o.CandidateSearchMode = *req.CandidateSearchMode
		changed["candidateSearchMode"] = string(o.CandidateSearchMode)
	}
	return changed
}

func (s *offerService) Update(ctx context.Context, actor models.Identity, offerID uuid.UUID, req *dto.UpdateOfferRequest) (*models.Offer, error) {
	offer, _, err := s.ownedOffer(ctx, actor, offerID)
	if err != nil {
		return nil, err
	}
	if !workflow.RecruiterCanEdit(offer.ValidationStatus) {
		return nil, fmt.Errorf("%w: offer cannot be edited while %s", ErrConflict, offer.ValidationStatus)
	}
	applyOfferChanges(offer, req)
	if offer.SalaryMin != nil && offer.SalaryMax != nil && *offer.SalaryMax < *offer.SalaryMin {
		return nil, fmt.Errorf("%w: salaryMax must not be lower than salaryMin", ErrValidation)
	}
	offer.UpdatedAt = s.now()
	if err := s.Store.Offers.Update(ctx, offer); err != nil {
		return nil, mapRepoError(err, "updating offer")
	}
	return offer, nil
}

func (s *offerService) Submit(ctx context.Context, actor models.Identity, offerID uuid.UUID) (*models.Offer, error) {
	offer, _, err := s.ownedOffer(ctx, actor, offerID)
	if err != nil {
		return nil, err
	}
	from := offer.ValidationStatus
	if err := workflow.SubmitOffer(offer, s.now()); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.Store.Offers.Update(ctx, offer); err != nil {
		return nil, mapRepoError(err, "submitting offer")
	}
	s.transitioned(string(workflow.MachineOffer), string(from), string(offer.ValidationStatus))
	s.notifyAdmins(models.CapValidateOffers, models.NotificationValidation,
		fmt.Sprintf("Offre soumise à validation : %s", offer.Title))
	return offer, nil
}

// SetOpen lets the owner close an offer, or reopen it once approved.
func (s *offerService) SetOpen(ctx context.Context, actor models.Identity, offerID uuid.UUID, open bool) (*models.Offer, error) {
	offer, _, err := s.ownedOffer(ctx, actor, offerID)
	if err != nil {
		return nil, err
	}
	if open && offer.ValidationStatus != models.OfferApproved {
		return nil, fmt.Errorf("%w: only approved offers can be opened", ErrConflict)
	}
	offer.Actif = open
	offer.UpdatedAt = s.now()
	if err := s.Store.Offers.Update(ctx, offer); err != nil {
		return nil, mapRepoError(err, "updating offer visibility")
	}
	return offer, nil
}

// Get returns a visible offer to anyone. Hidden offers are only shown to
// their owner and to moderators.
func (s *offerService) Get(ctx context.Context, actor *models.Identity, offerID uuid.UUID) (*models.Offer, error) {
	offer, err := s.Store.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching offer %s", offerID))
	}
	if offer.IsVisible() {
		return offer, nil
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: offer %s", ErrNotFound, offerID)
	}
	switch actor.Role {
	case models.RoleRecruiter:
		rec, err := s.Store.Recruiters.GetByUserID(ctx, actor.UserID)
		if err == nil && rec.ID == offer.RecruiterID {
			return offer, nil
		}
	case models.RoleAdmin:
		if _, err := s.requireCapability(ctx, *actor, models.CapValidateOffers); err == nil {
			return offer, nil
		}
	}
	return nil, fmt.Errorf("%w: offer %s", ErrNotFound, offerID)
}

func (s *offerService) ListPublic(ctx context.Context, req *dto.ListOffersRequest) ([]models.Offer, error) {
	offers, err := s.Store.Offers.List(ctx, storage.OfferFilter{
		Visible:      true,
		Query:        strings.TrimSpace(req.Query),
		Location:     strings.TrimSpace(req.Location),
		ContractType: strings.TrimSpace(req.ContractType),
		Page:         storage.Page{Limit: req.Limit, Offset: req.Offset},
	})
	if err != nil {
		return nil, mapRepoError(err, "listing offers")
	}
	return offers, nil
}

func (s *offerService) ListMine(ctx context.Context, actor models.Identity) ([]models.Offer, error) {
	rec, err := s.recruiterFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	offers, err := s.Store.Offers.List(ctx, storage.OfferFilter{RecruiterID: &rec.ID, Page: storage.Page{Limit: storage.MaxLimit}})
	if err != nil {
		return nil, mapRepoError(err, "listing recruiter offers")
	}
	return offers, nil
}

func (s *offerService) ListForModeration(ctx context.Context, actor models.Identity, req *dto.AdminListOffersRequest) ([]models.Offer, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapValidateOffers); err != nil {
		return nil, err
	}
	offers, err := s.Store.Offers.List(ctx, storage.OfferFilter{
		Status: req.Status,
		Page:   storage.Page{Limit: req.Limit, Offset: req.Offset},
	})
	if err != nil {
		return nil, mapRepoError(err, "listing offers for moderation")
	}
	return offers, nil
}

var moderationActions = map[models.OfferStatus]models.AdminAction{
	models.OfferApproved:         models.ActionOfferApproved,
	models.OfferRejected:         models.ActionOfferRejected,
	models.OfferChangesRequested: models.ActionOfferChangesRequested,
}

func moderationMessage(o *models.Offer, decision models.OfferStatus, reason string) string {
	switch decision {
	case models.OfferApproved:
		return fmt.Sprintf("Votre offre « %s » a été approuvée et est maintenant publiée.", o.Title)
	case models.OfferRejected:
		return fmt.Sprintf("Votre offre « %s » a été refusée. Motif : %s", o.Title, reason)
	default:
		return fmt.Sprintf("Des modifications ont été demandées pour votre offre « %s » : %s", o.Title, reason)
	}
}

func (s *offerService) Moderate(ctx context.Context, actor models.Identity, offerID uuid.UUID, decision models.OfferStatus, reason string) (*models.Offer, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapValidateOffers); err != nil {
		return nil, err
	}
	action, ok := moderationActions[decision]
	if !ok {
		return nil, fmt.Errorf("%w: unknown moderation decision %q", ErrValidation, decision)
	}
	offer, err := s.Store.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching offer %s", offerID))
	}
	from := offer.ValidationStatus
	if err := workflow.ModerateOffer(offer, decision, actor.UserID, reason, s.now()); err != nil {
		return nil, mapWorkflowError(err)
	}
	if err := s.Store.Offers.Update(ctx, offer); err != nil {
		return nil, mapRepoError(err, "saving moderation decision")
	}
	s.transitioned(string(workflow.MachineOffer), string(from), string(decision))

	reason = strings.TrimSpace(reason)
	s.audit(ctx, actor.UserID, action, models.TargetOffer, offer.ID, models.LogDetails{
		"title":  offer.Title,
		"reason": reason,
	})
	msg := moderationMessage(offer, decision, reason)
	typ := models.NotificationValidation
	if decision != models.OfferApproved {
		typ = models.NotificationAlert
	}
	if userID, err := s.recruiterUserID(ctx, offer.RecruiterID); err == nil {
		s.notify(userID, typ, msg)
		s.email(userID, mailer.TemplateOfferModerated, map[string]any{"Message": msg})
	} else {
		log.Printf("Moderate: cannot resolve owner of offer %s: %v", offer.ID, err)
	}
	return offer, nil
}

func (s *offerService) SetVisibility(ctx context.Context, actor models.Identity, offerID uuid.UUID, actif bool) (*models.Offer, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapValidateOffers); err != nil {
		return nil, err
	}
	offer, err := s.Store.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching offer %s", offerID))
	}
	previous := offer.Actif
	offer.Actif = actif
	offer.UpdatedAt = s.now()
	if err := s.Store.Offers.Update(ctx, offer); err != nil {
		return nil, mapRepoError(err, "toggling offer visibility")
	}
	s.audit(ctx, actor.UserID, models.ActionOfferVisibilityToggled, models.TargetOffer, offer.ID, models.LogDetails{
		"from": previous,
		"to":   actif,
	})
	return offer, nil
}

// AdminUpdate edits any field regardless of the moderation state.
func (s *offerService) AdminUpdate(ctx context.Context, actor models.Identity, offerID uuid.UUID, req *dto.UpdateOfferRequest) (*models.Offer, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapValidateOffers); err != nil {
		return nil, err
	}
	offer, err := s.Store.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching offer %s", offerID))
	}
	changed := applyOfferChanges(offer, req)
	if len(changed) == 0 {
		return offer, nil
	}
	offer.UpdatedAt = s.now()
	if err := s.Store.Offers.Update(ctx, offer); err != nil {
		return nil, mapRepoError(err, "updating offer")
	}
	s.audit(ctx, actor.UserID, models.ActionOfferUpdated, models.TargetOffer, offer.ID, changed)
	return offer, nil
}
