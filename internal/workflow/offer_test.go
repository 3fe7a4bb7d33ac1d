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

func TestSubmitOffer(t *testing.T) {
	now := time.Now().UTC()
	for _, s := range []models.OfferStatus{models.OfferDraft, models.OfferChangesRequested} {
		o := &models.Offer{ValidationStatus: s}
		require.NoError(t, workflow.SubmitOffer(o, now))
		assert.Equal(t, models.OfferPending, o.ValidationStatus)
	}
	for _, s := range []models.OfferStatus{models.OfferPending, models.OfferApproved, models.OfferRejected} {
		o := &models.Offer{ValidationStatus: s}
		assert.ErrorIs(t, workflow.SubmitOffer(o, now), workflow.ErrInvalidTransition)
		assert.Equal(t, s, o.ValidationStatus)
	}
}

func TestModerateOffer(t *testing.T) {
	now := time.Now().UTC()
	admin := uuid.New()

	t.Run("approve publishes", func(t *testing.T) {
		o := &models.Offer{ValidationStatus: models.OfferPending}
		require.NoError(t, workflow.ModerateOffer(o, models.OfferApproved, admin, "", now))
		assert.Equal(t, models.OfferApproved, o.ValidationStatus)
		assert.True(t, o.Actif)
		require.NotNil(t, o.DatePublication)
		assert.True(t, o.IsVisible())
		require.Len(t, o.ValidationHistory, 1)
		assert.Equal(t, admin, o.ValidationHistory[0].AdminID)
	})

	t.Run("reject needs a reason", func(t *testing.T) {
		o := &models.Offer{ValidationStatus: models.OfferPending}
		assert.ErrorIs(t, workflow.ModerateOffer(o, models.OfferRejected, admin, " ", now), workflow.ErrReasonRequired)
		assert.Equal(t, models.OfferPending, o.ValidationStatus)
		assert.Empty(t, o.ValidationHistory)

		require.NoError(t, workflow.ModerateOffer(o, models.OfferRejected, admin, "Salaire manquant", now))
		assert.Equal(t, models.OfferRejected, o.ValidationStatus)
		assert.Equal(t, "Salaire manquant", o.ValidationHistory[0].Message)
		assert.False(t, o.IsVisible())
	})

	t.Run("changes requested", func(t *testing.T) {
		o := &models.Offer{ValidationStatus: models.OfferPending}
		require.NoError(t, workflow.ModerateOffer(o, models.OfferChangesRequested, admin, "Préciser le lieu", now))
		assert.Equal(t, models.OfferChangesRequested, o.ValidationStatus)
		require.NoError(t, workflow.SubmitOffer(o, now))
		assert.Equal(t, models.OfferPending, o.ValidationStatus)
	})

	t.Run("only from pending", func(t *testing.T) {
		o := &models.Offer{ValidationStatus: models.OfferDraft}
		assert.ErrorIs(t, workflow.ModerateOffer(o, models.OfferApproved, admin, "", now), workflow.ErrInvalidTransition)
	})

	t.Run("unknown decision", func(t *testing.T) {
		o := &models.Offer{ValidationStatus: models.OfferPending}
		assert.ErrorIs(t, workflow.ModerateOffer(o, models.OfferDraft, admin, "", now), workflow.ErrInvalidTransition)
	})
}

func TestOfferVisibilityGate(t *testing.T) {
	assert.False(t, (&models.Offer{ValidationStatus: models.OfferApproved, Actif: false}).IsVisible())
	assert.False(t, (&models.Offer{ValidationStatus: models.OfferPending, Actif: true}).IsVisible())
	assert.True(t, (&models.Offer{ValidationStatus: models.OfferApproved, Actif: true}).IsVisible())
}

func TestRecruiterCanEdit(t *testing.T) {
	assert.True(t, workflow.RecruiterCanEdit(models.OfferDraft))
	assert.True(t, workflow.RecruiterCanEdit(models.OfferPending))
	assert.True(t, workflow.RecruiterCanEdit(models.OfferChangesRequested))
	assert.False(t, workflow.RecruiterCanEdit(models.OfferApproved))
	assert.False(t, workflow.RecruiterCanEdit(models.OfferRejected))
}
