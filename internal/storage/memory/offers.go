package memory

import (
	"context"
	"strings"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
)

func cloneOffer(o models.Offer) models.Offer {
	o.ValidationHistory = append(models.ValidationHistory(nil), o.ValidationHistory...)
	return o
}

func cloneApplication(a models.Application) models.Application {
	a.StatusHistory = append(models.StatusHistory(nil), a.StatusHistory...)
	return a
}

func cloneInterview(iv models.Interview) models.Interview {
	if iv.ProposedAlternative != nil {
		alt := *iv.ProposedAlternative
		iv.ProposedAlternative = &alt
	}
	return iv
}

// --- offers ---

type OfferRepo struct{ t *table[models.Offer] }

func NewOfferRepo() *OfferRepo { return &OfferRepo{t: newTable(cloneOffer)} }

var _ storage.OfferRepository = (*OfferRepo)(nil)

func (r *OfferRepo) Create(_ context.Context, o *models.Offer) error {
	return r.t.insert(o.ID, *o, nil)
}

func (r *OfferRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Offer, error) {
	o, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Update keeps the stored counter; only AdjustApplicationCount changes it.
func (r *OfferRepo) Update(_ context.Context, o *models.Offer) error {
	return r.t.modify(o.ID, func(stored *models.Offer) {
		count := stored.NombreCandidatures
		*stored = cloneOffer(*o)
		stored.NombreCandidatures = count
	})
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *OfferRepo) List(_ context.Context, f storage.OfferFilter) ([]models.Offer, error) {
	rows := r.t.filter(func(o models.Offer) bool {
		if f.Visible && !o.IsVisible() {
			return false
		}
		if f.Status != nil && o.ValidationStatus != *f.Status {
			return false
		}
		if f.RecruiterID != nil && o.RecruiterID != *f.RecruiterID {
			return false
		}
		if f.CompanyID != nil && o.CompanyID != *f.CompanyID {
			return false
		}
		if f.Query != "" && !containsFold(o.Title, f.Query) && !containsFold(o.Description, f.Query) {
			return false
		}
		if f.Location != "" && !containsFold(o.Location, f.Location) {
			return false
		}
		if f.ContractType != "" && !strings.EqualFold(o.ContractType, f.ContractType) {
			return false
		}
		return true
	}, func(o models.Offer) time.Time { return o.CreatedAt })
	return paginate(rows, f.Page), nil
}

func (r *OfferRepo) AdjustApplicationCount(_ context.Context, offerID uuid.UUID, delta int) error {
	return r.t.modify(offerID, func(o *models.Offer) {
		o.NombreCandidatures += delta
		if o.NombreCandidatures < 0 {
			o.NombreCandidatures = 0
		}
	})
}

// --- applications ---

type ApplicationRepo struct{ t *table[models.Application] }

func NewApplicationRepo() *ApplicationRepo { return &ApplicationRepo{t: newTable(cloneApplication)} }

var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func applicationCreated(a models.Application) time.Time { return a.CreatedAt }

func (r *ApplicationRepo) Create(_ context.Context, app *models.Application) error {
	return r.t.insert(app.ID, *app, func(existing models.Application) bool {
		return existing.OfferID == app.OfferID && existing.CandidateID == app.CandidateID
	})
}

func (r *ApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	app, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepo) Update(_ context.Context, app *models.Application) error {
	return r.t.update(app.ID, *app, nil)
}

func (r *ApplicationRepo) ListByOffer(_ context.Context, offerID uuid.UUID, status *models.RecruiterStatus) ([]models.Application, error) {
	return r.t.filter(func(a models.Application) bool {
		return a.OfferID == offerID && (status == nil || a.RecruiterStatus == *status)
	}, applicationCreated), nil
}

func (r *ApplicationRepo) ListByCandidate(_ context.Context, candidateID uuid.UUID) ([]models.Application, error) {
	return r.t.filter(func(a models.Application) bool { return a.CandidateID == candidateID }, applicationCreated), nil
}

// --- interviews ---

type InterviewRepo struct{ t *table[models.Interview] }

func NewInterviewRepo() *InterviewRepo { return &InterviewRepo{t: newTable(cloneInterview)} }

var _ storage.InterviewRepository = (*InterviewRepo)(nil)

func (r *InterviewRepo) Create(_ context.Context, iv *models.Interview) error {
	return r.t.insert(iv.ID, *iv, nil)
}

func (r *InterviewRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Interview, error) {
	iv, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *InterviewRepo) Update(_ context.Context, iv *models.Interview) error {
	return r.t.update(iv.ID, *iv, nil)
}

func (r *InterviewRepo) ListByApplication(_ context.Context, applicationID uuid.UUID) ([]models.Interview, error) {
	return r.t.filter(func(iv models.Interview) bool {
		return iv.ApplicationID == applicationID
	}, func(iv models.Interview) time.Time { return iv.ScheduledAt }), nil
}
