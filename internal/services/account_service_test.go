package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"recruit-api/internal/auth"
	"recruit-api/internal/models"
	"recruit-api/internal/services"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_CandidateLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAccountService(f.deps)

	resp, err := svc.Register(f.ctx, &dto.RegisterRequest{
		Name:     "Amina",
		Email:    "  Amina@Example.com ",
		Password: "s3cret-pass",
		Role:     models.RoleCandidate,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "amina@example.com", resp.User.Email)
	assert.False(t, resp.User.EmailVerified)
	assert.Equal(t, "development", resp.EmailMode)
	actor := resp.User.Identity()

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(f.ctx, &dto.RegisterRequest{
			Name: "Other", Email: "amina@example.com", Password: "another-pass", Role: models.RoleCandidate,
		})
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("wrong code", func(t *testing.T) {
		_, err := svc.VerifyEmail(f.ctx, actor, &dto.VerifyEmailRequest{Code: "000000"})
		assert.ErrorIs(t, err, services.ErrInvalidCode)
	})

	t.Run("development code verifies", func(t *testing.T) {
		verified, err := svc.VerifyEmail(f.ctx, actor, &dto.VerifyEmailRequest{Code: "123456"})
		require.NoError(t, err)
		assert.True(t, verified.User.EmailVerified)

		claims, err := f.deps.Tokens.Parse(f.ctx, verified.Token)
		require.NoError(t, err)
		assert.True(t, claims.EmailVerified)
	})

	t.Run("resend after verification is a conflict", func(t *testing.T) {
		_, err := svc.SendVerification(f.ctx, actor)
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("login", func(t *testing.T) {
		_, err := svc.Login(f.ctx, &dto.LoginRequest{Email: "amina@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
		_, err = svc.Login(f.ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)

		got, err := svc.Login(f.ctx, &dto.LoginRequest{Email: "AMINA@example.com", Password: "s3cret-pass"})
		require.NoError(t, err)
		require.NotNil(t, got.User.LastLoginAt)
		assert.Equal(t, f.now, *got.User.LastLoginAt)
	})

	t.Run("me returns the candidate profile", func(t *testing.T) {
		me, err := svc.Me(f.ctx, actor)
		require.NoError(t, err)
		require.NotNil(t, me.Candidate)
		assert.Nil(t, me.Recruiter)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		claims, err := f.deps.Tokens.Parse(f.ctx, resp.Token)
		require.NoError(t, err)
		require.NoError(t, svc.Logout(f.ctx, claims))
		_, err = f.deps.Tokens.Parse(f.ctx, resp.Token)
		assert.ErrorIs(t, err, auth.ErrTokenRevoked)
	})
}

func TestAccountService_RegisterRecruiter(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAccountService(f.deps)
	validator := f.admin(models.LabelModerator, models.CapValidateRecruiters)

	resp, err := svc.Register(f.ctx, &dto.RegisterRequest{
		Name:     "Karim",
		Email:    "karim@acme.dz",
		Password: "s3cret-pass",
		Role:     models.RoleRecruiter,
		Position: "RH",
		Company:  &dto.CompanyInput{Name: "Acme", Sector: "Industrie"},
	})
	require.NoError(t, err)

	me, err := svc.Me(f.ctx, resp.User.Identity())
	require.NoError(t, err)
	require.NotNil(t, me.Recruiter)
	require.NotNil(t, me.Company)
	assert.Equal(t, models.RecruiterPendingValidation, me.Recruiter.Status)
	assert.Equal(t, models.CompanyPending, me.Company.Status)
	assert.True(t, me.Recruiter.Permissions.PostJobs)
	assert.False(t, me.Recruiter.IsAdmin)
	assert.Len(t, f.notifications(validator.UserID), 1)

	t.Run("same company name is a conflict", func(t *testing.T) {
		_, err := svc.Register(f.ctx, &dto.RegisterRequest{
			Name: "Other", Email: "other@acme.dz", Password: "s3cret-pass",
			Role: models.RoleRecruiter, Company: &dto.CompanyInput{Name: "Acme"},
		})
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("joining an existing company", func(t *testing.T) {
		got, err := svc.Register(f.ctx, &dto.RegisterRequest{
			Name: "Other", Email: "other@acme.dz", Password: "s3cret-pass",
			Role: models.RoleRecruiter, Company: &dto.CompanyInput{ID: &me.Company.ID},
		})
		require.NoError(t, err)
		other, err := svc.Me(f.ctx, got.User.Identity())
		require.NoError(t, err)
		assert.Equal(t, me.Company.ID, other.Recruiter.CompanyID)
	})
}

func TestAccountService_DisabledAccounts(t *testing.T) {
	f := newFixture(t)
	accounts := services.NewAccountService(f.deps)
	admins := services.NewAdminService(f.deps)
	manager := f.admin(models.LabelModerator, models.CapManageUsers)

	resp, err := accounts.Register(f.ctx, &dto.RegisterRequest{
		Name: "Yacine", Email: "yacine@example.com", Password: "s3cret-pass", Role: models.RoleCandidate,
	})
	require.NoError(t, err)
	userID := resp.User.ID
	login := &dto.LoginRequest{Email: "yacine@example.com", Password: "s3cret-pass"}

	t.Run("cannot suspend yourself", func(t *testing.T) {
		_, err := admins.SuspendUser(f.ctx, manager, manager.UserID, &dto.SuspendUserRequest{Reason: "self"})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("suspension expires", func(t *testing.T) {
		until := f.now.Add(24 * time.Hour)
		_, err := admins.SuspendUser(f.ctx, manager, userID, &dto.SuspendUserRequest{Until: &until, Reason: "spam"})
		require.NoError(t, err)
		assert.Len(t, f.logs(models.ActionUserSuspended), 1)

		_, err = accounts.Login(f.ctx, login)
		assert.ErrorIs(t, err, services.ErrAccountDisabled)

		f.advance(25 * time.Hour)
		got, err := accounts.Login(f.ctx, login)
		require.NoError(t, err)
		assert.Equal(t, models.AccountActive, got.User.AccountStatus)
		assert.Nil(t, got.User.SuspendedUntil)
		_, err = f.deps.Tokens.Parse(f.ctx, got.Token)
		assert.NoError(t, err, "login after an expired suspension lifts the token block")
	})

	t.Run("banned users cannot log in", func(t *testing.T) {
		_, err := admins.BanUser(f.ctx, manager, userID, "fraude")
		require.NoError(t, err)
		_, err = accounts.Login(f.ctx, login)
		assert.ErrorIs(t, err, services.ErrAccountDisabled)

		until := f.now.Add(time.Hour)
		_, err = admins.SuspendUser(f.ctx, manager, userID, &dto.SuspendUserRequest{Until: &until, Reason: "x"})
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("reactivation", func(t *testing.T) {
		_, err := admins.ReactivateUser(f.ctx, manager, userID)
		require.NoError(t, err)
		_, err = accounts.Login(f.ctx, login)
		assert.NoError(t, err)
	})
}

func TestAdminService_EmailMode(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAdminService(f.deps)
	settings := f.admin(models.LabelModerator, models.CapManageSettings)

	mode, err := svc.GetEmailMode(f.ctx, settings)
	require.NoError(t, err)
	assert.Equal(t, "development", mode)

	_, err = svc.SetEmailMode(f.ctx, settings, "carrier-pigeon")
	assert.ErrorIs(t, err, services.ErrValidation)

	mode, err = svc.SetEmailMode(f.ctx, settings, "live")
	require.NoError(t, err)
	assert.Equal(t, "live", mode)
	mode, err = svc.GetEmailMode(f.ctx, settings)
	require.NoError(t, err)
	assert.Equal(t, "live", mode)
	assert.Len(t, f.logs(models.ActionSettingsUpdated), 1)

	_, err = svc.GetEmailMode(f.ctx, f.admin(models.LabelSupport, models.CapManageSupport))
	assert.ErrorIs(t, err, services.ErrForbidden)
}

type failingRecruiters struct {
	storage.RecruiterRepository
}

func (failingRecruiters) Create(context.Context, *models.Recruiter) error {
	return errors.New("disk full")
}

func TestAccountService_RegisterRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAccountService(f.deps)
	f.store.Recruiters = failingRecruiters{RecruiterRepository: f.store.Recruiters}

	_, err := svc.Register(f.ctx, &dto.RegisterRequest{
		Name:     "Karim",
		Email:    "karim@acme.dz",
		Password: "s3cret-pass",
		Role:     models.RoleRecruiter,
		Company:  &dto.CompanyInput{Name: "Acme"},
	})
	require.Error(t, err)

	_, err = f.store.Users.GetByEmail(f.ctx, "karim@acme.dz")
	assert.ErrorIs(t, err, storage.ErrNotFound, "user is removed with the failed profile")
	_, err = f.store.Companies.GetByName(f.ctx, "Acme")
	assert.ErrorIs(t, err, storage.ErrNotFound, "company created by the registration is removed")

	t.Run("existing company is kept", func(t *testing.T) {
		company := f.company(models.CompanyActive)
		_, err := svc.Register(f.ctx, &dto.RegisterRequest{
			Name:     "Lina",
			Email:    "lina@acme.dz",
			Password: "s3cret-pass",
			Role:     models.RoleRecruiter,
			Company:  &dto.CompanyInput{ID: &company.ID},
		})
		require.Error(t, err)
		_, err = f.store.Companies.GetByID(f.ctx, company.ID)
		assert.NoError(t, err)
		_, err = f.store.Users.GetByEmail(f.ctx, "lina@acme.dz")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
