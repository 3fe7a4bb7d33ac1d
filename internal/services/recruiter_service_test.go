package services_test

import (
	"testing"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestBatch() *dto.IssueValidationRequestsRequest {
	return &dto.IssueValidationRequestsRequest{Requests: []dto.ValidationRequestInput{
		{Type: models.RequestDocument, Message: "Registre de commerce", RequiredDocuments: []string{"rc"}},
		{Type: models.RequestDocument, Message: "Carte d'identité", RequiredDocuments: []string{"id"}},
		{Type: models.RequestInformation, Message: "Précisez votre poste", RequiredFields: []string{"position"}},
	}}
}

func TestRecruiterService_ValidationCycle(t *testing.T) {
	f := newFixture(t)
	svc := services.NewRecruiterService(f.deps)
	admin := f.admin(models.LabelModerator, models.CapValidateRecruiters)
	company := f.company(models.CompanyActive)
	recActor, rec := f.recruiterIn(company, models.RecruiterPendingValidation, true)

	got, err := svc.RequestValidation(f.ctx, admin, rec.ID, requestBatch())
	require.NoError(t, err)
	assert.Equal(t, models.RecruiterPendingInfoAndDocuments, got.Status)
	require.Len(t, got.ValidationRequests, 3)
	for _, r := range got.ValidationRequests {
		assert.Equal(t, models.RequestPending, r.Status)
		assert.Equal(t, admin.UserID, r.RequestedBy)
	}
	logs := f.logs(models.ActionRecruiterInfoRequested)
	require.Len(t, logs, 1)
	assert.EqualValues(t, 3, logs[0].Details["count"])
	assert.Len(t, f.notifications(recActor.UserID), 1)

	t.Run("validation is not allowed while awaiting the recruiter", func(t *testing.T) {
		_, err := svc.Validate(f.ctx, admin, rec.ID)
		assert.ErrorIs(t, err, services.ErrInvalidTransition)
	})

	t.Run("empty answer is rejected", func(t *testing.T) {
		_, err := svc.RespondToRequest(f.ctx, recActor, got.ValidationRequests[0].ID, &dto.ValidationResponseRequest{})
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("documents must come from the upload store", func(t *testing.T) {
		for _, doc := range []string{"https://evil.test/rc.pdf", "/uploads/../etc/passwd"} {
			_, err := svc.RespondToRequest(f.ctx, recActor, got.ValidationRequests[0].ID, &dto.ValidationResponseRequest{
				Documents: []string{"/uploads/documents/ok.pdf", doc},
			})
			assert.ErrorIs(t, err, services.ErrValidation, doc)
		}
		stored, err := f.store.Recruiters.GetByID(f.ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RequestPending, stored.ValidationRequests[0].Status)
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := svc.RespondToRequest(f.ctx, recActor, uuid.New(), &dto.ValidationResponseRequest{Message: "ok"})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	f.advance(time.Hour)
	answered, err := svc.RespondToRequest(f.ctx, recActor, got.ValidationRequests[0].ID, &dto.ValidationResponseRequest{
		Documents: []string{"/uploads/documents/rc.pdf"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RecruiterPendingRevalidation, answered.Status)
	assert.Equal(t, models.RequestSubmitted, answered.ValidationRequests[0].Status)
	assert.Equal(t, models.RequestPending, answered.ValidationRequests[1].Status)
	assert.Len(t, f.notifications(admin.UserID), 1)

	reviewed, err := svc.ReviewResponse(f.ctx, admin, rec.ID, got.ValidationRequests[0].ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, reviewed.ValidationRequests[0].Status)

	validated, err := svc.Validate(f.ctx, admin, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RecruiterValidated, validated.Status)
	require.NotNil(t, validated.ValidatedAt)
	assert.True(t, validated.IsAdmin)
	assert.True(t, validated.Permissions.ManageTeam)
	assert.True(t, validated.Permissions.EditCompany)
	assert.Len(t, f.logs(models.ActionRecruiterValidated), 1)

	stored, err := f.store.Recruiters.GetByID(f.ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)
}

func TestRecruiterService_CancelRequests(t *testing.T) {
	f := newFixture(t)
	svc := services.NewRecruiterService(f.deps)
	admin := f.admin(models.LabelSuperAdmin)
	recActor, rec := f.recruiterIn(f.company(models.CompanyActive), models.RecruiterPendingValidation, true)

	got, err := svc.RequestValidation(f.ctx, admin, rec.ID, requestBatch())
	require.NoError(t, err)
	_, err = svc.RespondToRequest(f.ctx, recActor, got.ValidationRequests[2].ID, &dto.ValidationResponseRequest{Message: "Directeur RH"})
	require.NoError(t, err)

	cancelled, err := svc.CancelRequests(f.ctx, admin, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RecruiterPendingValidation, cancelled.Status)
	require.Len(t, cancelled.ValidationRequests, 1)
	assert.Equal(t, models.RequestSubmitted, cancelled.ValidationRequests[0].Status)

	logs := f.logs(models.ActionRecruiterRequestsCancel)
	require.Len(t, logs, 1)
	assert.EqualValues(t, 2, logs[0].Details["dropped"])
}

func TestRecruiterService_Reject(t *testing.T) {
	f := newFixture(t)
	svc := services.NewRecruiterService(f.deps)
	admin := f.admin(models.LabelModerator, models.CapValidateRecruiters)
	recActor, rec := f.recruiterIn(f.company(models.CompanyActive), models.RecruiterPendingValidation, true)

	_, err := svc.Reject(f.ctx, admin, rec.ID, " ")
	assert.ErrorIs(t, err, services.ErrValidation)

	got, err := svc.Reject(f.ctx, admin, rec.ID, "Entreprise introuvable")
	require.NoError(t, err)
	assert.Equal(t, models.RecruiterRejected, got.Status)
	assert.Equal(t, "Entreprise introuvable", got.RejectionReason)
	ns := f.notifications(recActor.UserID)
	require.Len(t, ns, 1)
	assert.Equal(t, models.NotificationAlert, ns[0].Type)

	_, err = svc.Validate(f.ctx, admin, rec.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestRecruiterService_CapabilityGate(t *testing.T) {
	f := newFixture(t)
	svc := services.NewRecruiterService(f.deps)
	support := f.admin(models.LabelSupport, models.CapManageSupport)
	_, rec := f.recruiterIn(f.company(models.CompanyActive), models.RecruiterPendingValidation, true)

	_, err := svc.Validate(f.ctx, support, rec.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = svc.List(f.ctx, f.candidate(), nil)
	assert.ErrorIs(t, err, services.ErrForbidden)

	stored, err := f.store.Recruiters.GetByID(f.ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RecruiterPendingValidation, stored.Status)
}

func TestRecruiterService_PromotionWaitsForActiveCompany(t *testing.T) {
	f := newFixture(t)
	recruiters := services.NewRecruiterService(f.deps)
	admins := services.NewAdminService(f.deps)
	super := f.admin(models.LabelSuperAdmin)
	company := f.company(models.CompanyPending)

	_, first := f.recruiterIn(company, models.RecruiterPendingValidation, true)
	_, second := f.recruiterIn(company, models.RecruiterPendingValidation, true)

	got, err := recruiters.Validate(f.ctx, super, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsAdmin)
	f.advance(time.Minute)
	_, err = recruiters.Validate(f.ctx, super, second.ID)
	require.NoError(t, err)

	_, err = admins.ActivateCompany(f.ctx, super, company.ID)
	require.NoError(t, err)

	a, err := f.store.Recruiters.GetByID(f.ctx, first.ID)
	require.NoError(t, err)
	b, err := f.store.Recruiters.GetByID(f.ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, a.IsAdmin)
	assert.False(t, b.IsAdmin)
}

func TestRecruiterService_TeamPermissions(t *testing.T) {
	f := newFixture(t)
	svc := services.NewRecruiterService(f.deps)
	company := f.company(models.CompanyActive)
	lead, leadRec := f.recruiterIn(company, models.RecruiterValidated, true)
	leadRec.IsAdmin = true
	leadRec.Permissions.ManageTeam = true
	require.NoError(t, f.store.Recruiters.Update(f.ctx, leadRec))
	member, memberRec := f.recruiterIn(company, models.RecruiterValidated, true)
	_, outsider := f.recruiter()

	off := false
	got, err := svc.UpdateTeamPermissions(f.ctx, lead, memberRec.ID, &dto.UpdateTeamPermissionsRequest{PostJobs: &off})
	require.NoError(t, err)
	assert.False(t, got.Permissions.PostJobs)
	assert.True(t, got.Permissions.ReviewJobs)

	_, err = svc.UpdateTeamPermissions(f.ctx, lead, leadRec.ID, &dto.UpdateTeamPermissionsRequest{PostJobs: &off})
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = svc.UpdateTeamPermissions(f.ctx, lead, outsider.ID, &dto.UpdateTeamPermissionsRequest{PostJobs: &off})
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = svc.UpdateTeamPermissions(f.ctx, member, leadRec.ID, &dto.UpdateTeamPermissionsRequest{PostJobs: &off})
	assert.ErrorIs(t, err, services.ErrForbidden)

	team, err := svc.ListTeam(f.ctx, member)
	require.NoError(t, err)
	assert.Len(t, team, 2)
}
