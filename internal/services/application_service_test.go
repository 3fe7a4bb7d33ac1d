package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/services"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"
	"recruit-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationService_CounterConservation(t *testing.T) {
	f := newFixture(t)
	svc := services.NewApplicationService(f.deps)
	_, rec := f.recruiter()
	offer := f.visibleOffer(rec)

	t.Run("apply then withdraw returns to zero", func(t *testing.T) {
		cand := f.candidate()
		app, err := svc.Apply(f.ctx, cand, &dto.ApplyRequest{OfferID: offer.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, f.offer(offer.ID).NombreCandidatures)

		_, err = svc.Withdraw(f.ctx, cand, app.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, f.offer(offer.ID).NombreCandidatures)
	})

	t.Run("three applications and one cancel leave two", func(t *testing.T) {
		var first *models.Application
		var firstCand models.Identity
		for i := 0; i < 3; i++ {
			cand := f.candidate()
			app, err := svc.Apply(f.ctx, cand, &dto.ApplyRequest{OfferID: offer.ID})
			require.NoError(t, err)
			if first == nil {
				first, firstCand = app, cand
			}
		}
		_, err := svc.Cancel(f.ctx, firstCand, first.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, f.offer(offer.ID).NombreCandidatures)

		apps, err := f.store.Applications.ListByOffer(f.ctx, offer.ID, nil)
		require.NoError(t, err)
		counted := 0
		for i := range apps {
			if apps[i].CountsTowardOffer() {
				counted++
			}
		}
		assert.Equal(t, counted, f.offer(offer.ID).NombreCandidatures)
	})
}

func TestApplicationService_Apply(t *testing.T) {
	f := newFixture(t)
	svc := services.NewApplicationService(f.deps)
	recActor, rec := f.recruiter()
	offer := f.visibleOffer(rec)

	t.Run("duplicate pair is a conflict", func(t *testing.T) {
		cand := f.candidate()
		_, err := svc.Apply(f.ctx, cand, &dto.ApplyRequest{OfferID: offer.ID})
		require.NoError(t, err)
		_, err = svc.Apply(f.ctx, cand, &dto.ApplyRequest{OfferID: offer.ID})
		assert.ErrorIs(t, err, services.ErrConflict)
		assert.Equal(t, 1, f.offer(offer.ID).NombreCandidatures)
	})

	t.Run("unverified email", func(t *testing.T) {
		cand := f.user(models.RoleCandidate, false).Identity()
		_, err := svc.Apply(f.ctx, cand, &dto.ApplyRequest{OfferID: offer.ID})
		var pre *services.PreconditionError
		require.ErrorAs(t, err, &pre)
		assert.Equal(t, services.CodeEmailNotVerified, pre.Code)
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("hidden offer is not found", func(t *testing.T) {
		hidden := f.visibleOffer(rec)
		hidden.Actif = false
		require.NoError(t, f.store.Offers.Update(f.ctx, hidden))
		_, err := svc.Apply(f.ctx, f.candidate(), &dto.ApplyRequest{OfferID: hidden.ID})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("recruiter cannot apply", func(t *testing.T) {
		_, err := svc.Apply(f.ctx, recActor, &dto.ApplyRequest{OfferID: offer.ID})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("recruiter is notified", func(t *testing.T) {
		assert.NotEmpty(t, f.notifications(recActor.UserID))
	})
}

func TestApplicationService_Propose(t *testing.T) {
	f := newFixture(t)
	svc := services.NewApplicationService(f.deps)
	recActor, rec := f.recruiter()
	moderator := f.admin(models.LabelModerator, models.CapValidateOffers)
	offer := f.visibleOffer(rec)
	offer.CandidateSearchMode = models.SearchManual
	require.NoError(t, f.store.Offers.Update(f.ctx, offer))

	cand := f.candidate()
	require.NoError(t, f.store.Candidates.Upsert(f.ctx, &models.Candidate{UserID: cand.UserID, CVURL: "/uploads/cv/a.pdf"}))

	app, err := svc.Propose(f.ctx, moderator, offer.ID, &dto.ProposeCandidateRequest{CandidateID: cand.UserID, Note: "Profil solide"})
	require.NoError(t, err)
	assert.Equal(t, models.SourceAdminProposal, app.Source)
	assert.Equal(t, models.StatusNouvelle, app.RecruiterStatus)
	assert.Equal(t, "/uploads/cv/a.pdf", app.CVURL)
	require.Len(t, app.StatusHistory, 1)
	assert.Equal(t, moderator.UserID, app.StatusHistory[0].ChangedBy)
	assert.Equal(t, 1, f.offer(offer.ID).NombreCandidatures)
	assert.Len(t, f.notifications(cand.UserID), 1)
	assert.Len(t, f.notifications(recActor.UserID), 1)
	logs := f.logs(models.ActionCandidateProposed)
	require.Len(t, logs, 1)
	assert.Equal(t, offer.ID, logs[0].TargetID)

	mine, err := svc.ListMine(f.ctx, cand)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, app.ID, mine[0].ID)

	t.Run("pair stays unique", func(t *testing.T) {
		_, err := svc.Propose(f.ctx, moderator, offer.ID, &dto.ProposeCandidateRequest{CandidateID: cand.UserID})
		assert.ErrorIs(t, err, services.ErrConflict)
		_, err = svc.Apply(f.ctx, cand, &dto.ApplyRequest{OfferID: offer.ID})
		assert.ErrorIs(t, err, services.ErrConflict)
		assert.Equal(t, 1, f.offer(offer.ID).NombreCandidatures)
	})

	t.Run("automatic search also accepts proposals", func(t *testing.T) {
		auto := f.visibleOffer(rec)
		auto.CandidateSearchMode = models.SearchAutomatic
		require.NoError(t, f.store.Offers.Update(f.ctx, auto))
		_, err := svc.Propose(f.ctx, moderator, auto.ID, &dto.ProposeCandidateRequest{CandidateID: cand.UserID})
		assert.NoError(t, err)
	})

	t.Run("search disabled", func(t *testing.T) {
		closed := f.visibleOffer(rec)
		_, err := svc.Propose(f.ctx, moderator, closed.ID, &dto.ProposeCandidateRequest{CandidateID: cand.UserID})
		var pre *services.PreconditionError
		require.ErrorAs(t, err, &pre)
		assert.Equal(t, services.CodeCandidateSearchOff, pre.Code)
		assert.Equal(t, 0, f.offer(closed.ID).NombreCandidatures)
	})

	t.Run("only candidates can be proposed", func(t *testing.T) {
		_, err := svc.Propose(f.ctx, moderator, offer.ID, &dto.ProposeCandidateRequest{CandidateID: recActor.UserID})
		assert.ErrorIs(t, err, services.ErrValidation)
		_, err = svc.Propose(f.ctx, moderator, offer.ID, &dto.ProposeCandidateRequest{CandidateID: uuid.New()})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("capability required", func(t *testing.T) {
		_, err := svc.Propose(f.ctx, f.admin(models.LabelSupport, models.CapManageSupport), offer.ID, &dto.ProposeCandidateRequest{CandidateID: f.candidate().UserID})
		assert.ErrorIs(t, err, services.ErrForbidden)
		_, err = svc.Propose(f.ctx, recActor, offer.ID, &dto.ProposeCandidateRequest{CandidateID: f.candidate().UserID})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})
}

func TestApplicationService_Transition(t *testing.T) {
	f := newFixture(t)
	svc := services.NewApplicationService(f.deps)
	recActor, rec := f.recruiter()
	offer := f.visibleOffer(rec)
	cand := f.candidate()
	app, err := svc.Apply(f.ctx, cand, &dto.ApplyRequest{OfferID: offer.ID})
	require.NoError(t, err)

	t.Run("illegal transition carries both statuses", func(t *testing.T) {
		_, err := svc.Transition(f.ctx, recActor, app.ID, &dto.TransitionRequest{Status: models.StatusRetenue})
		require.ErrorIs(t, err, services.ErrInvalidTransition)
		var te *workflow.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "nouvelle", te.Current)
		assert.Equal(t, "retenue", te.Requested)

		stored, err := f.store.Applications.GetByID(f.ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusNouvelle, stored.RecruiterStatus)
	})

	t.Run("another recruiter is forbidden", func(t *testing.T) {
		other, _ := f.recruiter()
		_, err := svc.Transition(f.ctx, other, app.ID, &dto.TransitionRequest{Status: models.StatusConsultee})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("unknown application", func(t *testing.T) {
		_, err := svc.Transition(f.ctx, recActor, uuid.New(), &dto.TransitionRequest{Status: models.StatusConsultee})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("refusal derives candidate status and notifies", func(t *testing.T) {
		got, err := svc.Transition(f.ctx, recActor, app.ID, &dto.TransitionRequest{Status: models.StatusRefusee, Note: "profil"})
		require.NoError(t, err)
		assert.Equal(t, models.CandidateNonRetenue, got.CandidateStatus)
		require.NotNil(t, got.DecisionAt)
		last := got.StatusHistory[len(got.StatusHistory)-1]
		assert.Equal(t, recActor.UserID, last.ChangedBy)
		assert.Equal(t, "profil", last.Note)
		assert.Len(t, f.notifications(cand.UserID), 1)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TransitionsTotal.WithLabelValues("application", "nouvelle", "refusee")))
	})
}

func TestApplicationService_CancelWindow(t *testing.T) {
	f := newFixture(t)
	svc := services.NewApplicationService(f.deps)
	recActor, rec := f.recruiter()
	offer := f.visibleOffer(rec)
	cand := f.candidate()
	app, err := svc.Apply(f.ctx, cand, &dto.ApplyRequest{OfferID: offer.ID})
	require.NoError(t, err)

	seen, err := svc.GetForRecruiter(f.ctx, recActor, app.ID)
	require.NoError(t, err)
	assert.True(t, seen.SeenByRecruiter)
	assert.Equal(t, models.StatusConsultee, seen.RecruiterStatus)

	_, err = svc.Cancel(f.ctx, cand, app.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Equal(t, 1, f.offer(offer.ID).NombreCandidatures)

	// withdraw is still possible
	got, err := svc.Withdraw(f.ctx, cand, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CandidateRetiree, got.CandidateStatus)
}

func TestApplicationService_OtherCandidateSeesNotFound(t *testing.T) {
	f := newFixture(t)
	svc := services.NewApplicationService(f.deps)
	_, rec := f.recruiter()
	offer := f.visibleOffer(rec)
	app, err := svc.Apply(f.ctx, f.candidate(), &dto.ApplyRequest{OfferID: offer.ID})
	require.NoError(t, err)

	_, err = svc.GetForCandidate(f.ctx, f.candidate(), app.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = svc.Withdraw(f.ctx, f.candidate(), app.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestApplicationService_MarkAllSeen(t *testing.T) {
	f := newFixture(t)
	svc := services.NewApplicationService(f.deps)
	recActor, rec := f.recruiter()
	offer := f.visibleOffer(rec)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		app, err := svc.Apply(f.ctx, f.candidate(), &dto.ApplyRequest{OfferID: offer.ID})
		require.NoError(t, err)
		ids = append(ids, app.ID)
	}
	// one already moved past nouvelle without being opened
	_, err := svc.Transition(f.ctx, recActor, ids[0], &dto.TransitionRequest{Status: models.StatusPreselection})
	require.NoError(t, err)

	resp, err := svc.MarkAllSeen(f.ctx, recActor, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Seen)
	assert.Equal(t, 2, resp.Promoted)

	for _, id := range ids[1:] {
		app, err := f.store.Applications.GetByID(f.ctx, id)
		require.NoError(t, err)
		assert.True(t, app.SeenByRecruiter)
		assert.Equal(t, models.StatusConsultee, app.RecruiterStatus)
		assert.Len(t, app.StatusHistory, 2)
	}

	resp, err = svc.MarkAllSeen(f.ctx, recActor, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Seen)
}

func TestApplicationService_WithdrawCancelsUpcomingInterviews(t *testing.T) {
	f := newFixture(t)
	apps := services.NewApplicationService(f.deps)
	ivs := services.NewInterviewService(f.deps)
	recActor, rec := f.recruiter()
	offer := f.visibleOffer(rec)
	cand := f.candidate()

	app, err := apps.Apply(f.ctx, cand, &dto.ApplyRequest{OfferID: offer.ID})
	require.NoError(t, err)
	_, err = apps.Transition(f.ctx, recActor, app.ID, &dto.TransitionRequest{Status: models.StatusPreselection})
	require.NoError(t, err)
	iv, err := ivs.Propose(f.ctx, recActor, app.ID, &dto.ProposeInterviewRequest{ScheduledAt: f.now.Add(48 * time.Hour)})
	require.NoError(t, err)

	_, err = apps.Withdraw(f.ctx, cand, app.ID)
	require.NoError(t, err)

	stored, err := f.store.Interviews.GetByID(f.ctx, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCancelledByCandidate, stored.Status)
}

// failingNotifications rejects every write.
type failingNotifications struct {
	storage.NotificationRepository
}

func (failingNotifications) Create(context.Context, *models.Notification) error {
	return errors.New("inbox unavailable")
}

func TestApplicationService_SideEffectFailureDoesNotFailTransition(t *testing.T) {
	f := newFixture(t)
	f.store.Notifications = failingNotifications{f.store.Notifications}
	svc := services.NewApplicationService(f.deps)
	recActor, rec := f.recruiter()
	offer := f.visibleOffer(rec)

	app, err := svc.Apply(f.ctx, f.candidate(), &dto.ApplyRequest{OfferID: offer.ID})
	require.NoError(t, err)
	got, err := svc.Transition(f.ctx, recActor, app.ID, &dto.TransitionRequest{Status: models.StatusRefusee})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRefusee, got.RecruiterStatus)

	stored, err := f.store.Applications.GetByID(f.ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRefusee, stored.RecruiterStatus)
	assert.GreaterOrEqual(t, testutil.ToFloat64(f.metrics.SideEffectsTotal.WithLabelValues("notification", "error")), 2.0)
}
