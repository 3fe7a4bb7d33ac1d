package workflow_test

import (
	"testing"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecruiter() *models.Recruiter {
	return &models.Recruiter{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		CompanyID:   uuid.New(),
		Status:      models.RecruiterPendingValidation,
		Permissions: models.DefaultRecruiterPermissions(),
	}
}

func TestStatusForBatch(t *testing.T) {
	doc := models.ValidationRequest{Type: models.RequestDocument}
	info := models.ValidationRequest{Type: models.RequestInformation}
	clar := models.ValidationRequest{Type: models.RequestClarification}

	assert.Equal(t, models.RecruiterPendingDocuments, workflow.StatusForBatch([]models.ValidationRequest{doc, doc}))
	assert.Equal(t, models.RecruiterPendingInfo, workflow.StatusForBatch([]models.ValidationRequest{info}))
	assert.Equal(t, models.RecruiterPendingInfo, workflow.StatusForBatch([]models.ValidationRequest{clar}))
	assert.Equal(t, models.RecruiterPendingInfoAndDocuments, workflow.StatusForBatch([]models.ValidationRequest{doc, clar}))
}

func TestValidationCycle_SingleActiveStatus(t *testing.T) {
	now := time.Now().UTC()
	admin := uuid.New()
	r := newRecruiter()

	batch := []models.ValidationRequest{
		{Type: models.RequestDocument, Message: "Kbis", RequiredDocuments: []string{"kbis"}},
		{Type: models.RequestDocument, Message: "Pièce d'identité", RequiredDocuments: []string{"id"}},
		{Type: models.RequestInformation, Message: "Numéro SIRET", RequiredFields: []string{"siret"}},
	}
	require.NoError(t, workflow.IssueValidationRequests(r, batch, admin, now))
	assert.Equal(t, models.RecruiterPendingInfoAndDocuments, r.Status)
	require.Len(t, r.ValidationRequests, 3)

	first := r.ValidationRequests[0].ID
	require.NoError(t, workflow.SubmitValidationResponse(r, first, "ci-joint", []string{"/uploads/kbis.pdf"}, now))

	assert.Equal(t, models.RecruiterPendingRevalidation, r.Status)
	assert.Equal(t, models.RequestSubmitted, r.ValidationRequests[0].Status)
	assert.Equal(t, models.RequestPending, r.ValidationRequests[1].Status)
	assert.Equal(t, models.RequestPending, r.ValidationRequests[2].Status)

	// the same request cannot be answered twice
	err := workflow.SubmitValidationResponse(r, first, "again", nil, now)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	// a second answer keeps the single top-level status
	require.NoError(t, workflow.SubmitValidationResponse(r, r.ValidationRequests[2].ID, "123", nil, now))
	assert.Equal(t, models.RecruiterPendingRevalidation, r.Status)
}

func TestSubmitValidationResponse_UnknownRequest(t *testing.T) {
	r := newRecruiter()
	require.NoError(t, workflow.IssueValidationRequests(r, []models.ValidationRequest{{Type: models.RequestInformation}}, uuid.New(), time.Now()))
	err := workflow.SubmitValidationResponse(r, uuid.New(), "x", nil, time.Now())
	assert.ErrorIs(t, err, workflow.ErrRequestNotFound)
}

func TestIssueValidationRequests_Guards(t *testing.T) {
	r := newRecruiter()
	assert.ErrorIs(t, workflow.IssueValidationRequests(r, nil, uuid.New(), time.Now()), workflow.ErrNoRequests)

	r.Status = models.RecruiterValidated
	err := workflow.IssueValidationRequests(r, []models.ValidationRequest{{Type: models.RequestDocument}}, uuid.New(), time.Now())
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestCancelValidationRequests(t *testing.T) {
	now := time.Now().UTC()
	r := newRecruiter()
	batch := []models.ValidationRequest{{Type: models.RequestDocument}, {Type: models.RequestInformation}}
	require.NoError(t, workflow.IssueValidationRequests(r, batch, uuid.New(), now))
	require.NoError(t, workflow.SubmitValidationResponse(r, r.ValidationRequests[0].ID, "ok", nil, now))

	dropped, err := workflow.CancelValidationRequests(r, now)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, models.RecruiterPendingValidation, r.Status)
	require.Len(t, r.ValidationRequests, 1)
	assert.Equal(t, models.RequestSubmitted, r.ValidationRequests[0].Status)

	_, err = workflow.CancelValidationRequests(r, now)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestReviewValidationResponse(t *testing.T) {
	now := time.Now().UTC()
	r := newRecruiter()
	require.NoError(t, workflow.IssueValidationRequests(r, []models.ValidationRequest{{Type: models.RequestDocument}}, uuid.New(), now))
	id := r.ValidationRequests[0].ID

	assert.ErrorIs(t, workflow.ReviewValidationResponse(r, id, true, now), workflow.ErrInvalidTransition)

	require.NoError(t, workflow.SubmitValidationResponse(r, id, "voilà", nil, now))
	require.NoError(t, workflow.ReviewValidationResponse(r, id, true, now))
	assert.Equal(t, models.RequestApproved, r.ValidationRequests[0].Status)
	assert.NotNil(t, r.ValidationRequests[0].ReviewedAt)
}

func TestValidateAndReject(t *testing.T) {
	now := time.Now().UTC()

	r := newRecruiter()
	require.NoError(t, workflow.ValidateRecruiter(r, now))
	assert.Equal(t, models.RecruiterValidated, r.Status)
	require.NotNil(t, r.ValidatedAt)
	assert.ErrorIs(t, workflow.ValidateRecruiter(r, now), workflow.ErrInvalidTransition)
	assert.ErrorIs(t, workflow.RejectRecruiter(r, "late", now), workflow.ErrInvalidTransition)

	r = newRecruiter()
	require.NoError(t, workflow.IssueValidationRequests(r, []models.ValidationRequest{{Type: models.RequestDocument}}, uuid.New(), now))
	assert.ErrorIs(t, workflow.ValidateRecruiter(r, now), workflow.ErrInvalidTransition)
	assert.ErrorIs(t, workflow.RejectRecruiter(r, "  ", now), workflow.ErrReasonRequired)
	require.NoError(t, workflow.RejectRecruiter(r, "documents illisibles", now))
	assert.Equal(t, models.RecruiterRejected, r.Status)
	assert.Equal(t, "documents illisibles", r.RejectionReason)
}

func TestPromoteToCompanyAdmin(t *testing.T) {
	r := newRecruiter()
	workflow.PromoteToCompanyAdmin(r, time.Now())
	assert.True(t, r.IsAdmin)
	assert.True(t, r.Permissions.EditCompany)
	assert.True(t, r.Permissions.ManageTeam)
	assert.True(t, r.Permissions.PostJobs)
}
