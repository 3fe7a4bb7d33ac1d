package workflow_test

import (
	"testing"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterviewNegotiation(t *testing.T) {
	now := time.Now().UTC()
	first := now.Add(48 * time.Hour)
	second := now.Add(72 * time.Hour)
	iv := &models.Interview{Status: models.InterviewProposed, ScheduledAt: first}

	require.NoError(t, workflow.RescheduleInterview(iv, models.RoleCandidate, second, "Plutôt jeudi", now))
	assert.Equal(t, models.InterviewRescheduledByCandidate, iv.Status)

	// the proposer cannot accept their own alternative
	assert.ErrorIs(t, workflow.AcceptAlternative(iv, models.RoleCandidate, now), workflow.ErrInvalidTransition)

	require.NoError(t, workflow.AcceptAlternative(iv, models.RoleRecruiter, now))
	assert.Equal(t, models.InterviewConfirmed, iv.Status)
	assert.Equal(t, second, iv.ScheduledAt)
	assert.Nil(t, iv.ProposedAlternative)

	require.NoError(t, workflow.CloseInterview(iv, models.InterviewCompleted, now))
	assert.Equal(t, models.InterviewCompleted, iv.Status)
	assert.ErrorIs(t, workflow.CancelInterview(iv, models.RoleRecruiter, "", now), workflow.ErrInvalidTransition)
}

func TestConfirmInterview(t *testing.T) {
	now := time.Now().UTC()
	iv := &models.Interview{Status: models.InterviewProposed}
	require.NoError(t, workflow.ConfirmInterview(iv, now))
	assert.Equal(t, models.InterviewConfirmed, iv.Status)
	assert.ErrorIs(t, workflow.ConfirmInterview(iv, now), workflow.ErrInvalidTransition)
}

func TestCloseInterview_RequiresConfirmed(t *testing.T) {
	iv := &models.Interview{Status: models.InterviewProposed}
	assert.ErrorIs(t, workflow.CloseInterview(iv, models.InterviewNoShow, time.Now()), workflow.ErrInvalidTransition)

	iv.Status = models.InterviewConfirmed
	assert.ErrorIs(t, workflow.CloseInterview(iv, models.InterviewProposed, time.Now()), workflow.ErrInvalidTransition)
	require.NoError(t, workflow.CloseInterview(iv, models.InterviewNoShow, time.Now()))
}

func TestCancellableOnWithdraw(t *testing.T) {
	now := time.Now().UTC()
	assert.True(t, workflow.CancellableOnWithdraw(&models.Interview{Status: models.InterviewProposed, ScheduledAt: now.Add(time.Hour)}, now))
	assert.True(t, workflow.CancellableOnWithdraw(&models.Interview{Status: models.InterviewConfirmed, ScheduledAt: now.Add(time.Hour)}, now))
	assert.False(t, workflow.CancellableOnWithdraw(&models.Interview{Status: models.InterviewConfirmed, ScheduledAt: now.Add(-time.Hour)}, now))
	assert.False(t, workflow.CancellableOnWithdraw(&models.Interview{Status: models.InterviewRescheduledByCandidate, ScheduledAt: now.Add(time.Hour)}, now))
}
