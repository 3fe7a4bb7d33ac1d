package services_test

import (
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

func TestAdminService_StatusChangesEndSessions(t *testing.T) {
	f := newFixture(t)
	accounts := services.NewAccountService(f.deps)
	admins := services.NewAdminService(f.deps)
	manager := f.admin(models.LabelModerator, models.CapManageUsers)

	resp, err := accounts.Register(f.ctx, &dto.RegisterRequest{
		Name: "Sofiane", Email: "sofiane@example.com", Password: "s3cret-pass", Role: models.RoleCandidate,
	})
	require.NoError(t, err)
	token := resp.Token
	userID := resp.User.ID

	_, err = admins.BanUser(f.ctx, manager, userID, "fraude")
	require.NoError(t, err)
	_, err = f.deps.Tokens.Parse(f.ctx, token)
	assert.ErrorIs(t, err, auth.ErrAccountBlocked)

	_, err = admins.ReactivateUser(f.ctx, manager, userID)
	require.NoError(t, err)
	_, err = f.deps.Tokens.Parse(f.ctx, token)
	assert.NoError(t, err)

	until := f.now.Add(2 * time.Hour)
	_, err = admins.SuspendUser(f.ctx, manager, userID, &dto.SuspendUserRequest{Until: &until, Reason: "spam"})
	require.NoError(t, err)
	_, err = f.deps.Tokens.Parse(f.ctx, token)
	assert.ErrorIs(t, err, auth.ErrAccountBlocked)
}

func TestAdminService_CompanyReview(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAdminService(f.deps)
	manager := f.admin(models.LabelModerator, models.CapManageCompanies)

	t.Run("only pending companies are activated", func(t *testing.T) {
		company := f.company(models.CompanyPending)
		got, err := svc.ActivateCompany(f.ctx, manager, company.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CompanyActive, got.Status)

		_, err = svc.ActivateCompany(f.ctx, manager, company.ID)
		assert.ErrorIs(t, err, services.ErrConflict)
		_, err = svc.RejectCompany(f.ctx, manager, company.ID, "doublon")
		assert.ErrorIs(t, err, services.ErrConflict)
		assert.Len(t, f.logs(models.ActionCompanyActivated), 1)
	})

	t.Run("only pending companies are rejected", func(t *testing.T) {
		company := f.company(models.CompanyPending)
		_, err := svc.RejectCompany(f.ctx, manager, company.ID, "  ")
		assert.ErrorIs(t, err, services.ErrValidation)

		got, err := svc.RejectCompany(f.ctx, manager, company.ID, "RC invalide")
		require.NoError(t, err)
		assert.Equal(t, models.CompanyRejected, got.Status)

		_, err = svc.ActivateCompany(f.ctx, manager, company.ID)
		assert.ErrorIs(t, err, services.ErrConflict)
		_, err = svc.RejectCompany(f.ctx, manager, company.ID, "encore")
		assert.ErrorIs(t, err, services.ErrConflict)
		stored, err := f.store.Companies.GetByID(f.ctx, company.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CompanyRejected, stored.Status)
	})

	t.Run("admin created companies start active", func(t *testing.T) {
		got, err := svc.CreateCompany(f.ctx, manager, &dto.CreateCompanyRequest{Name: " Sonatrach ", City: "Alger"})
		require.NoError(t, err)
		assert.Equal(t, "Sonatrach", got.Name)
		assert.Equal(t, models.CompanyActive, got.Status)
		logs := f.logs(models.ActionCompanyCreated)
		require.Len(t, logs, 1)
		assert.Equal(t, got.ID, logs[0].TargetID)

		_, err = svc.CreateCompany(f.ctx, manager, &dto.CreateCompanyRequest{Name: "Sonatrach"})
		assert.ErrorIs(t, err, services.ErrConflict)
		_, err = svc.CreateCompany(f.ctx, f.admin(models.LabelSupport, models.CapManageSupport), &dto.CreateCompanyRequest{Name: "Other"})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})
}

func TestAdminService_AdminAccounts(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAdminService(f.deps)
	accounts := services.NewAccountService(f.deps)
	super := f.admin(models.LabelSuperAdmin)
	lead := f.admin(models.LabelModerator, models.CapManageAdmins, models.CapViewLogs, models.CapValidateOffers)

	created, err := svc.CreateAdmin(f.ctx, super, &dto.CreateAdminRequest{
		Name:        "Nadia",
		Email:       "Nadia@Recruit.test",
		Password:    "moderator-pass",
		Label:       models.LabelModerator,
		Permissions: []models.Capability{models.CapValidateOffers, models.CapViewLogs},
	})
	require.NoError(t, err)
	assert.Equal(t, "nadia@recruit.test", created.User.Email)
	assert.Equal(t, models.RoleAdmin, created.User.Role)
	assert.True(t, created.User.EmailVerified)
	assert.True(t, created.Admin.Has(models.CapValidateOffers))
	assert.False(t, created.Admin.Has(models.CapManageUsers))
	require.Len(t, f.logs(models.ActionAdminCreated), 1)

	session, err := accounts.Login(f.ctx, &dto.LoginRequest{Email: "nadia@recruit.test", Password: "moderator-pass"})
	require.NoError(t, err)

	t.Run("grants are bounded by the creator", func(t *testing.T) {
		_, err := svc.CreateAdmin(f.ctx, lead, &dto.CreateAdminRequest{
			Name: "Omar", Email: "omar@recruit.test", Password: "omar-pass-1",
			Label: models.LabelModerator, Permissions: []models.Capability{models.CapManageUsers},
		})
		assert.ErrorIs(t, err, services.ErrForbidden)

		_, err = svc.CreateAdmin(f.ctx, lead, &dto.CreateAdminRequest{
			Name: "Omar", Email: "omar@recruit.test", Password: "omar-pass-1", Label: models.LabelSuperAdmin,
		})
		assert.ErrorIs(t, err, services.ErrForbidden)

		_, err = svc.CreateAdmin(f.ctx, super, &dto.CreateAdminRequest{
			Name: "Omar", Email: "omar@recruit.test", Password: "omar-pass-1",
			Label: models.LabelModerator, Permissions: []models.Capability{"launch_rockets"},
		})
		assert.ErrorIs(t, err, services.ErrValidation)

		_, err = svc.CreateAdmin(f.ctx, super, &dto.CreateAdminRequest{
			Name: "Nadia", Email: "nadia@recruit.test", Password: "moderator-pass", Label: models.LabelSupport,
		})
		assert.ErrorIs(t, err, services.ErrConflict)

		_, err = svc.CreateAdmin(f.ctx, f.admin(models.LabelModerator, models.CapManageUsers), &dto.CreateAdminRequest{
			Name: "Omar", Email: "omar@recruit.test", Password: "omar-pass-1", Label: models.LabelSupport,
		})
		assert.ErrorIs(t, err, services.ErrForbidden)
		_, err = f.store.Users.GetByEmail(f.ctx, "omar@recruit.test")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("edit permissions", func(t *testing.T) {
		got, err := svc.UpdateAdminPermissions(f.ctx, lead, created.User.ID, &dto.AdminPermissionsRequest{
			Permissions: []models.Capability{models.CapViewLogs},
		})
		require.NoError(t, err)
		assert.Equal(t, models.LabelModerator, got.Admin.Label)
		assert.False(t, got.Admin.Has(models.CapValidateOffers))
		assert.True(t, got.Admin.Has(models.CapViewLogs))

		stored, err := f.store.Admins.GetByUserID(f.ctx, created.User.ID)
		require.NoError(t, err)
		assert.False(t, stored.Has(models.CapValidateOffers))
		logs := f.logs(models.ActionAdminUpdated)
		require.Len(t, logs, 1)
		assert.Equal(t, created.User.ID, logs[0].TargetID)

		_, err = svc.UpdateAdminPermissions(f.ctx, lead, lead.UserID, &dto.AdminPermissionsRequest{})
		assert.ErrorIs(t, err, services.ErrForbidden)
		_, err = svc.UpdateAdminPermissions(f.ctx, lead, super.UserID, &dto.AdminPermissionsRequest{})
		assert.ErrorIs(t, err, services.ErrForbidden)
		_, err = svc.UpdateAdminPermissions(f.ctx, lead, f.candidate().UserID, &dto.AdminPermissionsRequest{})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		list, err := svc.ListAdmins(f.ctx, lead)
		require.NoError(t, err)
		assert.Len(t, list, 4)
	})

	t.Run("delete removes the account and its sessions", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteAdmin(f.ctx, lead, lead.UserID), services.ErrForbidden)
		assert.ErrorIs(t, svc.DeleteAdmin(f.ctx, lead, super.UserID), services.ErrForbidden)

		require.NoError(t, svc.DeleteAdmin(f.ctx, lead, created.User.ID))
		_, err := f.store.Users.GetByID(f.ctx, created.User.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = f.store.Admins.GetByUserID(f.ctx, created.User.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = f.deps.Tokens.Parse(f.ctx, session.Token)
		assert.ErrorIs(t, err, auth.ErrAccountBlocked)
		assert.Len(t, f.logs(models.ActionAdminDeleted), 1)

		assert.ErrorIs(t, svc.DeleteAdmin(f.ctx, lead, created.User.ID), services.ErrNotFound)
	})
}
