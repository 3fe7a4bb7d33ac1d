package services_test

import (
	"context"
	"testing"
	"time"

	"recruit-api/config"
	"recruit-api/internal/auth"
	"recruit-api/internal/blob"
	"recruit-api/internal/mailer"
	"recruit-api/internal/metrics"
	"recruit-api/internal/models"
	"recruit-api/internal/outbox"
	"recruit-api/internal/services"
	"recruit-api/internal/storage"
	"recruit-api/internal/storage/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t       *testing.T
	ctx     context.Context
	now     time.Time
	store   *storage.Store
	metrics *metrics.Metrics
	deps    *services.Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:       t,
		ctx:     context.Background(),
		now:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		store:   memory.New(),
		metrics: metrics.New(),
	}
	cache := memory.NewCache()
	f.deps = &services.Deps{
		Store:           f.store,
		Cache:           cache,
		Effects:         outbox.NewInline(f.metrics),
		Mailer:          mailer.New(config.EmailConfig{Mode: "development", DevCode: "123456"}, cache),
		Blob:            blob.NewLocalStore(t.TempDir(), "/uploads", 1<<20),
		Tokens:          auth.NewTokens(config.JWTConfig{Secret: "test-secret", Issuer: "test", TTL: time.Hour}, cache),
		Metrics:         f.metrics,
		VerificationTTL: 15 * time.Minute,
		Now:             func() time.Time { return f.now },
	}
	return f
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func (f *fixture) user(role models.Role, verified bool) *models.User {
	f.t.Helper()
	u := &models.User{
		ID:            uuid.New(),
		Name:          string(role) + " user",
		Email:         uuid.NewString() + "@example.com",
		Role:          role,
		EmailVerified: verified,
		AccountStatus: models.AccountActive,
		CreatedAt:     f.now,
		UpdatedAt:     f.now,
	}
	require.NoError(f.t, f.store.Users.Create(f.ctx, u))
	return u
}

func (f *fixture) candidate() models.Identity {
	return f.user(models.RoleCandidate, true).Identity()
}

func (f *fixture) company(status models.CompanyStatus) *models.Company {
	f.t.Helper()
	c := &models.Company{
		ID:        uuid.New(),
		Name:      "Company " + uuid.NewString()[:8],
		Status:    status,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	require.NoError(f.t, f.store.Companies.Create(f.ctx, c))
	return c
}

func (f *fixture) recruiterIn(company *models.Company, status models.RecruiterValidationStatus, verified bool) (models.Identity, *models.Recruiter) {
	f.t.Helper()
	u := f.user(models.RoleRecruiter, verified)
	rec := &models.Recruiter{
		ID:          uuid.New(),
		UserID:      u.ID,
		CompanyID:   company.ID,
		Status:      status,
		Permissions: models.DefaultRecruiterPermissions(),
		CreatedAt:   f.now,
		UpdatedAt:   f.now,
	}
	if status == models.RecruiterValidated {
		validated := f.now
		rec.ValidatedAt = &validated
	}
	require.NoError(f.t, f.store.Recruiters.Create(f.ctx, rec))
	return u.Identity(), rec
}

// recruiter returns a validated recruiter of an active company.
func (f *fixture) recruiter() (models.Identity, *models.Recruiter) {
	return f.recruiterIn(f.company(models.CompanyActive), models.RecruiterValidated, true)
}

func (f *fixture) admin(label models.AdminLabel, caps ...models.Capability) models.Identity {
	f.t.Helper()
	u := f.user(models.RoleAdmin, true)
	perms := models.AdminPermissions{}
	for _, c := range caps {
		perms[c] = true
	}
	require.NoError(f.t, f.store.Admins.Create(f.ctx, &models.Admin{
		ID:          uuid.New(),
		UserID:      u.ID,
		Label:       label,
		Permissions: perms,
		CreatedAt:   f.now,
		UpdatedAt:   f.now,
	}))
	return u.Identity()
}

// visibleOffer stores an approved, actif offer owned by rec.
func (f *fixture) visibleOffer(rec *models.Recruiter) *models.Offer {
	f.t.Helper()
	published := f.now
	o := &models.Offer{
		ID:                  uuid.New(),
		RecruiterID:         rec.ID,
		CompanyID:           rec.CompanyID,
		Title:               "Backend engineer",
		Description:         "Build the platform",
		Location:            "Alger",
		ContractType:        "CDI",
		ValidationStatus:    models.OfferApproved,
		Actif:               true,
		DatePublication:     &published,
		CandidateSearchMode: models.SearchDisabled,
		CreatedAt:           f.now,
		UpdatedAt:           f.now,
	}
	require.NoError(f.t, f.store.Offers.Create(f.ctx, o))
	return o
}

func (f *fixture) offer(id uuid.UUID) *models.Offer {
	f.t.Helper()
	o, err := f.store.Offers.GetByID(f.ctx, id)
	require.NoError(f.t, err)
	return o
}

func (f *fixture) notifications(userID uuid.UUID) []models.Notification {
	f.t.Helper()
	ns, err := f.store.Notifications.ListByUser(f.ctx, userID, false)
	require.NoError(f.t, err)
	return ns
}

func (f *fixture) logs(action models.AdminAction) []models.AdminLog {
	f.t.Helper()
	logs, err := f.store.AdminLogs.List(f.ctx, storage.LogFilter{Action: &action})
	require.NoError(f.t, err)
	return logs
}
