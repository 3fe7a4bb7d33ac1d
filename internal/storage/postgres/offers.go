package postgres

import (
	"context"
	"fmt"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const offerColumns = `id, recruiter_id, company_id, title, description, requirements, location,
	contract_type, salary_min, salary_max, validation_status, validation_history, actif,
	date_publication, nombre_candidatures, candidate_search_mode, created_at, updated_at`

// OfferRepo implements storage.OfferRepository.
type OfferRepo struct {
	db Querier
}

func NewOfferRepo(db *pgxpool.Pool) *OfferRepo {
	return &OfferRepo{db: db}
}

var _ storage.OfferRepository = (*OfferRepo)(nil)

func (r *OfferRepo) Create(ctx context.Context, o *models.Offer) error {
	query := `
		INSERT INTO offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.db.Exec(ctx, query,
		o.ID, o.RecruiterID, o.CompanyID, o.Title, o.Description, o.Requirements, o.Location,
		o.ContractType, o.SalaryMin, o.SalaryMax, o.ValidationStatus, o.ValidationHistory, o.Actif,
		o.DatePublication, o.NombreCandidatures, o.CandidateSearchMode, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "create offer")
	}
	return nil
}

func (r *OfferRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	return selectOne[models.Offer](ctx, r.db, "get offer",
		`SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
}

// Update rewrites the offer document except nombre_candidatures, which only
// AdjustApplicationCount touches.
func (r *OfferRepo) Update(ctx context.Context, o *models.Offer) error {
	query := `
		UPDATE offers SET title = $2, description = $3, requirements = $4, location = $5,
			contract_type = $6, salary_min = $7, salary_max = $8, validation_status = $9,
			validation_history = $10, actif = $11, date_publication = $12,
			candidate_search_mode = $13, updated_at = $14
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		o.ID, o.Title, o.Description, o.Requirements, o.Location,
		o.ContractType, o.SalaryMin, o.SalaryMax, o.ValidationStatus,
		o.ValidationHistory, o.Actif, o.DatePublication,
		o.CandidateSearchMode, o.UpdatedAt,
	)
	return expectOne(tag, err, "update offer")
}

func (r *OfferRepo) List(ctx context.Context, f storage.OfferFilter) ([]models.Offer, error) {
	var conditions []string
	args := []any{}
	if f.Visible {
		conditions = append(conditions, "validation_status = 'approved'", "actif")
	}
	if f.Status != nil {
		conditions = append(conditions, "validation_status = "+arg(&args, *f.Status))
	}
	if f.RecruiterID != nil {
		conditions = append(conditions, "recruiter_id = "+arg(&args, *f.RecruiterID))
	}
	if f.CompanyID != nil {
		conditions = append(conditions, "company_id = "+arg(&args, *f.CompanyID))
	}
	if f.Query != "" {
		p := arg(&args, "%"+f.Query+"%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
	}
	if f.Location != "" {
		conditions = append(conditions, "location ILIKE "+arg(&args, "%"+f.Location+"%"))
	}
	if f.ContractType != "" {
		conditions = append(conditions, "LOWER(contract_type) = LOWER("+arg(&args, f.ContractType)+")")
	}
	query := listQuery(`SELECT `+offerColumns+` FROM offers`, conditions, &args, "created_at DESC", f.Page)
	return selectMany[models.Offer](ctx, r.db, "list offers", query, args...)
}

// AdjustApplicationCount is a single atomic UPDATE; concurrent applies never
// lose an increment.
func (r *OfferRepo) AdjustApplicationCount(ctx context.Context, offerID uuid.UUID, delta int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE offers SET nombre_candidatures = GREATEST(nombre_candidatures + $2, 0)
		WHERE id = $1
	`, offerID, delta)
	return expectOne(tag, err, "adjust application count")
}

const applicationColumns = `id, offer_id, candidate_id, cover_letter, cv_url, recruiter_status,
	candidate_status, seen_by_recruiter, seen_at, is_starred, source, decision_at, status_history,
	created_at, updated_at`

// ApplicationRepo implements storage.ApplicationRepository.
type ApplicationRepo struct {
	db Querier
}

func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func (r *ApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.OfferID, a.CandidateID, a.CoverLetter, a.CVURL, a.RecruiterStatus,
		a.CandidateStatus, a.SeenByRecruiter, a.SeenAt, a.IsStarred, a.Source, a.DecisionAt, a.StatusHistory,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "create application")
	}
	return nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return selectOne[models.Application](ctx, r.db, "get application",
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
}

func (r *ApplicationRepo) Update(ctx context.Context, a *models.Application) error {
	query := `
		UPDATE applications SET cover_letter = $2, cv_url = $3, recruiter_status = $4,
			candidate_status = $5, seen_by_recruiter = $6, seen_at = $7, is_starred = $8,
			decision_at = $9, status_history = $10, updated_at = $11
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		a.ID, a.CoverLetter, a.CVURL, a.RecruiterStatus,
		a.CandidateStatus, a.SeenByRecruiter, a.SeenAt, a.IsStarred,
		a.DecisionAt, a.StatusHistory, a.UpdatedAt,
	)
	return expectOne(tag, err, "update application")
}

func (r *ApplicationRepo) ListByOffer(ctx context.Context, offerID uuid.UUID, status *models.RecruiterStatus) ([]models.Application, error) {
	if status != nil {
		return selectMany[models.Application](ctx, r.db, "list applications by offer",
			`SELECT `+applicationColumns+` FROM applications
			 WHERE offer_id = $1 AND recruiter_status = $2 ORDER BY created_at DESC`, offerID, *status)
	}
	return selectMany[models.Application](ctx, r.db, "list applications by offer",
		`SELECT `+applicationColumns+` FROM applications WHERE offer_id = $1 ORDER BY created_at DESC`, offerID)
}

func (r *ApplicationRepo) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.Application, error) {
	return selectMany[models.Application](ctx, r.db, "list applications by candidate",
		`SELECT `+applicationColumns+` FROM applications WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
}

const interviewColumns = `id, application_id, scheduled_at, duration_minutes, location, mode, notes,
	status, proposed_alternative, cancellation_reason, created_at, updated_at`

// InterviewRepo implements storage.InterviewRepository.
type InterviewRepo struct {
	db Querier
}

func NewInterviewRepo(db *pgxpool.Pool) *InterviewRepo {
	return &InterviewRepo{db: db}
}

var _ storage.InterviewRepository = (*InterviewRepo)(nil)

func (r *InterviewRepo) Create(ctx context.Context, iv *models.Interview) error {
	query := `
		INSERT INTO interviews (` + interviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		iv.ID, iv.ApplicationID, iv.ScheduledAt, iv.DurationMinutes, iv.Location, iv.Mode, iv.Notes,
		iv.Status, iv.ProposedAlternative, iv.CancellationReason, iv.CreatedAt, iv.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "create interview")
	}
	return nil
}

func (r *InterviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	return selectOne[models.Interview](ctx, r.db, "get interview",
		`SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)
}

func (r *InterviewRepo) Update(ctx context.Context, iv *models.Interview) error {
	query := `
		UPDATE interviews SET scheduled_at = $2, duration_minutes = $3, location = $4, mode = $5,
			notes = $6, status = $7, proposed_alternative = $8, cancellation_reason = $9, updated_at = $10
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		iv.ID, iv.ScheduledAt, iv.DurationMinutes, iv.Location, iv.Mode,
		iv.Notes, iv.Status, iv.ProposedAlternative, iv.CancellationReason, iv.UpdatedAt,
	)
	return expectOne(tag, err, "update interview")
}

func (r *InterviewRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.Interview, error) {
	return selectMany[models.Interview](ctx, r.db, "list interviews",
		`SELECT `+interviewColumns+` FROM interviews WHERE application_id = $1 ORDER BY scheduled_at DESC`, applicationID)
}
