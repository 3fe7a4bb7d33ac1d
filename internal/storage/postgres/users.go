package postgres

import (
	"context"
	"fmt"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, password_hash, role, email_verified, account_status,
	suspended_until, suspension_reason, last_login_at, created_at, updated_at`

// UserRepo implements the storage.UserRepository interface using PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// Compile-time check to ensure UserRepo implements UserRepository
var _ storage.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, email_verified, account_status,
			suspended_until, suspension_reason, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.EmailVerified, u.AccountStatus,
		u.SuspendedUntil, u.SuspensionReason, u.LastLoginAt, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "create user")
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return selectOne[models.User](ctx, r.db, "get user by id",
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return selectOne[models.User](ctx, r.db, "get user by email",
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, password_hash = $4, role = $5, email_verified = $6,
			account_status = $7, suspended_until = $8, suspension_reason = $9, last_login_at = $10,
			updated_at = $11
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.EmailVerified,
		u.AccountStatus, u.SuspendedUntil, u.SuspensionReason, u.LastLoginAt, u.UpdatedAt,
	)
	return expectOne(tag, err, "update user")
}

// Delete removes the user; profile, admin and notification rows cascade.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return expectOne(tag, err, "delete user")
}

func (r *UserRepo) List(ctx context.Context, f storage.UserFilter) ([]models.User, error) {
	var conditions []string
	args := []any{}
	if f.Role != nil {
		conditions = append(conditions, "role = "+arg(&args, *f.Role))
	}
	if f.Status != nil {
		conditions = append(conditions, "account_status = "+arg(&args, *f.Status))
	}
	if f.Query != "" {
		p := arg(&args, "%"+f.Query+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE %s OR email ILIKE %s)", p, p))
	}
	query := listQuery(`SELECT `+userColumns+` FROM users`, conditions, &args, "created_at DESC", f.Page)
	return selectMany[models.User](ctx, r.db, "list users", query, args...)
}

// CandidateRepo implements storage.CandidateRepository.
type CandidateRepo struct {
	db Querier
}

func NewCandidateRepo(db *pgxpool.Pool) *CandidateRepo {
	return &CandidateRepo{db: db}
}

var _ storage.CandidateRepository = (*CandidateRepo)(nil)

func (r *CandidateRepo) Upsert(ctx context.Context, c *models.Candidate) error {
	query := `
		INSERT INTO candidates (user_id, phone, city, headline, skills, cv_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			phone = EXCLUDED.phone, city = EXCLUDED.city, headline = EXCLUDED.headline,
			skills = EXCLUDED.skills, cv_url = EXCLUDED.cv_url, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query, c.UserID, c.Phone, c.City, c.Headline, c.Skills, c.CVURL, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "upsert candidate")
	}
	return nil
}

func (r *CandidateRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Candidate, error) {
	return selectOne[models.Candidate](ctx, r.db, "get candidate",
		`SELECT user_id, phone, city, headline, skills, cv_url, created_at, updated_at
		 FROM candidates WHERE user_id = $1`, userID)
}

const companyColumns = `id, name, description, website, sector, city, status, created_at, updated_at`

// CompanyRepo implements storage.CompanyRepository.
type CompanyRepo struct {
	db Querier
}

func NewCompanyRepo(db *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{db: db}
}

var _ storage.CompanyRepository = (*CompanyRepo)(nil)

func (r *CompanyRepo) Create(ctx context.Context, c *models.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Description, c.Website, c.Sector, c.City, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "create company")
	}
	return nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return selectOne[models.Company](ctx, r.db, "get company",
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*models.Company, error) {
	return selectOne[models.Company](ctx, r.db, "get company by name",
		`SELECT `+companyColumns+` FROM companies WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *CompanyRepo) Update(ctx context.Context, c *models.Company) error {
	query := `
		UPDATE companies SET name = $2, description = $3, website = $4, sector = $5, city = $6,
			status = $7, updated_at = $8
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Description, c.Website, c.Sector, c.City, c.Status, c.UpdatedAt)
	return expectOne(tag, err, "update company")
}

func (r *CompanyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	return expectOne(tag, err, "delete company")
}

func (r *CompanyRepo) List(ctx context.Context, status *models.CompanyStatus) ([]models.Company, error) {
	if status != nil {
		return selectMany[models.Company](ctx, r.db, "list companies",
			`SELECT `+companyColumns+` FROM companies WHERE status = $1 ORDER BY created_at DESC`, *status)
	}
	return selectMany[models.Company](ctx, r.db, "list companies",
		`SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
}

const recruiterColumns = `id, user_id, company_id, position, phone, status, is_admin, permissions,
	validation_requests, rejection_reason, validated_at, anem, created_at, updated_at`

// RecruiterRepo implements storage.RecruiterRepository.
type RecruiterRepo struct {
	db Querier
}

func NewRecruiterRepo(db *pgxpool.Pool) *RecruiterRepo {
	return &RecruiterRepo{db: db}
}

var _ storage.RecruiterRepository = (*RecruiterRepo)(nil)

func (r *RecruiterRepo) Create(ctx context.Context, rec *models.Recruiter) error {
	query := `
		INSERT INTO recruiters (` + recruiterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.UserID, rec.CompanyID, rec.Position, rec.Phone, rec.Status, rec.IsAdmin, rec.Permissions,
		rec.ValidationRequests, rec.RejectionReason, rec.ValidatedAt, rec.Anem, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "create recruiter")
	}
	return nil
}

func (r *RecruiterRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Recruiter, error) {
	return selectOne[models.Recruiter](ctx, r.db, "get recruiter",
		`SELECT `+recruiterColumns+` FROM recruiters WHERE id = $1`, id)
}

func (r *RecruiterRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Recruiter, error) {
	return selectOne[models.Recruiter](ctx, r.db, "get recruiter by user",
		`SELECT `+recruiterColumns+` FROM recruiters WHERE user_id = $1`, userID)
}

// Update rewrites the whole recruiter document.
func (r *RecruiterRepo) Update(ctx context.Context, rec *models.Recruiter) error {
	query := `
		UPDATE recruiters SET company_id = $2, position = $3, phone = $4, status = $5, is_admin = $6,
			permissions = $7, validation_requests = $8, rejection_reason = $9, validated_at = $10,
			anem = $11, updated_at = $12
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		rec.ID, rec.CompanyID, rec.Position, rec.Phone, rec.Status, rec.IsAdmin,
		rec.Permissions, rec.ValidationRequests, rec.RejectionReason, rec.ValidatedAt,
		rec.Anem, rec.UpdatedAt,
	)
	return expectOne(tag, err, "update recruiter")
}

func (r *RecruiterRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Recruiter, error) {
	return selectMany[models.Recruiter](ctx, r.db, "list recruiters by company",
		`SELECT `+recruiterColumns+` FROM recruiters WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
}

func (r *RecruiterRepo) List(ctx context.Context, status *models.RecruiterValidationStatus) ([]models.Recruiter, error) {
	if status != nil {
		return selectMany[models.Recruiter](ctx, r.db, "list recruiters",
			`SELECT `+recruiterColumns+` FROM recruiters WHERE status = $1 ORDER BY created_at DESC`, *status)
	}
	return selectMany[models.Recruiter](ctx, r.db, "list recruiters",
		`SELECT `+recruiterColumns+` FROM recruiters ORDER BY created_at DESC`)
}

// AdminRepo implements storage.AdminRepository.
type AdminRepo struct {
	db Querier
}

func NewAdminRepo(db *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{db: db}
}

var _ storage.AdminRepository = (*AdminRepo)(nil)

func (r *AdminRepo) Create(ctx context.Context, a *models.Admin) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO admins (id, user_id, label, permissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.UserID, a.Label, a.Permissions, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "create admin")
	}
	return nil
}

func (r *AdminRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Admin, error) {
	return selectOne[models.Admin](ctx, r.db, "get admin",
		`SELECT id, user_id, label, permissions, created_at, updated_at FROM admins WHERE user_id = $1`, userID)
}

func (r *AdminRepo) Update(ctx context.Context, a *models.Admin) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE admins SET label = $2, permissions = $3, updated_at = $4 WHERE id = $1
	`, a.ID, a.Label, a.Permissions, a.UpdatedAt)
	return expectOne(tag, err, "update admin")
}

func (r *AdminRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM admins WHERE user_id = $1`, userID)
	return expectOne(tag, err, "delete admin")
}

func (r *AdminRepo) List(ctx context.Context) ([]models.Admin, error) {
	return selectMany[models.Admin](ctx, r.db, "list admins",
		`SELECT id, user_id, label, permissions, created_at, updated_at FROM admins ORDER BY created_at`)
}
