package memory

import (
	"context"
	"strings"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
)

func cloneUser(u models.User) models.User { return u }

func cloneCandidate(c models.Candidate) models.Candidate {
	c.Skills = append(models.StringSlice(nil), c.Skills...)
	return c
}

func cloneCompany(c models.Company) models.Company { return c }

func cloneRecruiter(r models.Recruiter) models.Recruiter {
	r.ValidationRequests = append(models.ValidationRequests(nil), r.ValidationRequests...)
	return r
}

func cloneAdmin(a models.Admin) models.Admin {
	perms := make(models.AdminPermissions, len(a.Permissions))
	for k, v := range a.Permissions {
		perms[k] = v
	}
	a.Permissions = perms
	return a
}

// --- users ---

type UserRepo struct{ t *table[models.User] }

func NewUserRepo() *UserRepo { return &UserRepo{t: newTable(cloneUser)} }

var _ storage.UserRepository = (*UserRepo)(nil)

func sameEmail(email string) func(models.User) bool {
	return func(u models.User) bool { return strings.EqualFold(u.Email, email) }
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	return r.t.insert(user.ID, *user, sameEmail(user.Email))
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, err := r.t.find(sameEmail(email))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Update(_ context.Context, user *models.User) error {
	return r.t.update(user.ID, *user, sameEmail(user.Email))
}

func (r *UserRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.t.remove(id)
}

func (r *UserRepo) List(_ context.Context, f storage.UserFilter) ([]models.User, error) {
	q := strings.ToLower(f.Query)
	rows := r.t.filter(func(u models.User) bool {
		if f.Role != nil && u.Role != *f.Role {
			return false
		}
		if f.Status != nil && u.AccountStatus != *f.Status {
			return false
		}
		if q != "" && !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
			return false
		}
		return true
	}, func(u models.User) time.Time { return u.CreatedAt })
	return paginate(rows, f.Page), nil
}

// --- candidates ---

type CandidateRepo struct{ t *table[models.Candidate] }

func NewCandidateRepo() *CandidateRepo { return &CandidateRepo{t: newTable(cloneCandidate)} }

var _ storage.CandidateRepository = (*CandidateRepo)(nil)

func (r *CandidateRepo) Upsert(_ context.Context, c *models.Candidate) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	r.t.rows[c.UserID] = cloneCandidate(*c)
	return nil
}

func (r *CandidateRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Candidate, error) {
	c, err := r.t.get(userID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// --- companies ---

type CompanyRepo struct{ t *table[models.Company] }

func NewCompanyRepo() *CompanyRepo { return &CompanyRepo{t: newTable(cloneCompany)} }

var _ storage.CompanyRepository = (*CompanyRepo)(nil)

func sameCompanyName(name string) func(models.Company) bool {
	return func(c models.Company) bool { return strings.EqualFold(c.Name, name) }
}

func (r *CompanyRepo) Create(_ context.Context, c *models.Company) error {
	return r.t.insert(c.ID, *c, sameCompanyName(c.Name))
}

func (r *CompanyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Company, error) {
	c, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepo) GetByName(_ context.Context, name string) (*models.Company, error) {
	c, err := r.t.find(sameCompanyName(name))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *models.Company) error {
	return r.t.update(c.ID, *c, sameCompanyName(c.Name))
}

func (r *CompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.t.remove(id)
}

func (r *CompanyRepo) List(_ context.Context, status *models.CompanyStatus) ([]models.Company, error) {
	return r.t.filter(func(c models.Company) bool {
		return status == nil || c.Status == *status
	}, func(c models.Company) time.Time { return c.CreatedAt }), nil
}

// --- recruiters ---

type RecruiterRepo struct{ t *table[models.Recruiter] }

func NewRecruiterRepo() *RecruiterRepo { return &RecruiterRepo{t: newTable(cloneRecruiter)} }

var _ storage.RecruiterRepository = (*RecruiterRepo)(nil)

func recruiterCreated(r models.Recruiter) time.Time { return r.CreatedAt }

func (r *RecruiterRepo) Create(_ context.Context, rec *models.Recruiter) error {
	return r.t.insert(rec.ID, *rec, func(existing models.Recruiter) bool {
		return existing.UserID == rec.UserID
	})
}

func (r *RecruiterRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Recruiter, error) {
	rec, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecruiterRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Recruiter, error) {
	rec, err := r.t.find(func(x models.Recruiter) bool { return x.UserID == userID })
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecruiterRepo) Update(_ context.Context, rec *models.Recruiter) error {
	return r.t.update(rec.ID, *rec, nil)
}

func (r *RecruiterRepo) ListByCompany(_ context.Context, companyID uuid.UUID) ([]models.Recruiter, error) {
	return r.t.filter(func(x models.Recruiter) bool { return x.CompanyID == companyID }, recruiterCreated), nil
}

func (r *RecruiterRepo) List(_ context.Context, status *models.RecruiterValidationStatus) ([]models.Recruiter, error) {
	return r.t.filter(func(x models.Recruiter) bool {
		return status == nil || x.Status == *status
	}, recruiterCreated), nil
}

// --- admins ---

type AdminRepo struct{ t *table[models.Admin] }

func NewAdminRepo() *AdminRepo { return &AdminRepo{t: newTable(cloneAdmin)} }

var _ storage.AdminRepository = (*AdminRepo)(nil)

func (r *AdminRepo) Create(_ context.Context, a *models.Admin) error {
	return r.t.insert(a.ID, *a, func(existing models.Admin) bool { return existing.UserID == a.UserID })
}

func (r *AdminRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Admin, error) {
	a, err := r.t.find(func(x models.Admin) bool { return x.UserID == userID })
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) Update(_ context.Context, a *models.Admin) error {
	return r.t.update(a.ID, *a, nil)
}

func (r *AdminRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	a, err := r.t.find(func(x models.Admin) bool { return x.UserID == userID })
	if err != nil {
		return err
	}
	return r.t.remove(a.ID)
}

func (r *AdminRepo) List(_ context.Context) ([]models.Admin, error) {
	return r.t.filter(nil, func(a models.Admin) time.Time { return a.CreatedAt }), nil
}
