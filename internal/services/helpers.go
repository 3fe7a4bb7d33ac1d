package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/workflow"

	"github.com/google/uuid"
)

// mapRepoError maps storage errors to service errors
func mapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	// Log other unexpected errors
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// mapWorkflowError turns engine guard errors into service errors. Transition
// errors pass through untouched so handlers can read current/requested.
func mapWorkflowError(err error) error {
	switch {
	case errors.Is(err, workflow.ErrInvalidTransition):
		return err
	case errors.Is(err, workflow.ErrCancelWindowClosed):
		return fmt.Errorf("%w: %v", ErrForbidden, err)
	case errors.Is(err, workflow.ErrRequestNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, workflow.ErrReasonRequired), errors.Is(err, workflow.ErrNoRequests):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	default:
		return err
	}
}

func requireRole(actor models.Identity, role models.Role) error {
	if actor.Role != role {
		return fmt.Errorf("%w: %s role required", ErrForbidden, role)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// recruiterFor loads the recruiter profile of the acting user.
func (d *Deps) recruiterFor(ctx context.Context, actor models.Identity) (*models.Recruiter, error) {
	if err := requireRole(actor, models.RoleRecruiter); err != nil {
		return nil, err
	}
	rec, err := d.Store.Recruiters.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, mapRepoError(err, "fetching recruiter profile")
	}
	return rec, nil
}

// ownedOffer loads an offer and checks the acting recruiter owns it.
func (d *Deps) ownedOffer(ctx context.Context, actor models.Identity, offerID uuid.UUID) (*models.Offer, *models.Recruiter, error) {
	rec, err := d.recruiterFor(ctx, actor)
	if err != nil {
		return nil, nil, err
	}
	offer, err := d.Store.Offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, nil, mapRepoError(err, fmt.Sprintf("fetching offer %s", offerID))
	}
	if offer.RecruiterID != rec.ID {
		log.Printf("ownedOffer: recruiter %s tried to access offer %s owned by %s", rec.ID, offer.ID, offer.RecruiterID)
		return nil, nil, fmt.Errorf("%w: offer %s", ErrForbidden, offerID)
	}
	return offer, rec, nil
}

// recruiterApplication loads an application whose offer belongs to the
// acting recruiter.
func (d *Deps) recruiterApplication(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, *models.Offer, error) {
	app, err := d.Store.Applications.GetByID(ctx, appID)
	if err != nil {
		return nil, nil, mapRepoError(err, fmt.Sprintf("fetching application %s", appID))
	}
	offer, _, err := d.ownedOffer(ctx, actor, app.OfferID)
	if err != nil {
		return nil, nil, err
	}
	return app, offer, nil
}

// candidateApplication loads an application of the acting candidate. Other
// candidates' applications are reported as not found.
func (d *Deps) candidateApplication(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, error) {
	if err := requireRole(actor, models.RoleCandidate); err != nil {
		return nil, err
	}
	app, err := d.Store.Applications.GetByID(ctx, appID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching application %s", appID))
	}
	if app.CandidateID != actor.UserID {
		return nil, fmt.Errorf("%w: application %s", ErrNotFound, appID)
	}
	return app, nil
}

// recruiterUserID resolves the user behind an offer's recruiter.
func (d *Deps) recruiterUserID(ctx context.Context, recruiterID uuid.UUID) (uuid.UUID, error) {
	rec, err := d.Store.Recruiters.GetByID(ctx, recruiterID)
	if err != nil {
		return uuid.Nil, err
	}
	return rec.UserID, nil
}

func uuidPtr(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
