// Package storagetest holds the behaviour every storage backend must share.
// Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises store. Every subtest creates its own rows, so the store may
// be shared and does not need to be empty.
func Run(t *testing.T, store *storage.Store) {
	t.Run("Users", func(t *testing.T) { testUsers(t, store) })
	t.Run("Offers", func(t *testing.T) { testOffers(t, store) })
	t.Run("Applications", func(t *testing.T) { testApplications(t, store) })
	t.Run("Notifications", func(t *testing.T) { testNotifications(t, store) })
	t.Run("AdminLogs", func(t *testing.T) { testAdminLogs(t, store) })
	t.Run("Admins", func(t *testing.T) { testAdmins(t, store) })
}

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// NewUser inserts a verified active user with a unique email.
func NewUser(t *testing.T, store *storage.Store, role models.Role) *models.User {
	t.Helper()
	id := uuid.New()
	u := &models.User{
		ID:            id,
		Name:          "User " + id.String()[:8],
		Email:         id.String()[:8] + "@store.test",
		PasswordHash:  "hash",
		Role:          role,
		EmailVerified: true,
		AccountStatus: models.AccountActive,
		CreatedAt:     base,
		UpdatedAt:     base,
	}
	require.NoError(t, store.Users.Create(context.Background(), u))
	return u
}

// NewRecruiter inserts a validated recruiter with its own active company.
func NewRecruiter(t *testing.T, store *storage.Store) *models.Recruiter {
	t.Helper()
	ctx := context.Background()
	user := NewUser(t, store, models.RoleRecruiter)
	company := &models.Company{
		ID:        uuid.New(),
		Name:      "Company " + user.ID.String()[:8],
		Status:    models.CompanyActive,
		CreatedAt: base,
		UpdatedAt: base,
	}
	require.NoError(t, store.Companies.Create(ctx, company))
	rec := &models.Recruiter{
		ID:        uuid.New(),
		UserID:    user.ID,
		CompanyID: company.ID,
		Status:    models.RecruiterValidated,
		IsAdmin:   true,
		CreatedAt: base,
		UpdatedAt: base,
	}
	require.NoError(t, store.Recruiters.Create(ctx, rec))
	return rec
}

// NewOffer inserts an offer for rec with the given moderation state.
func NewOffer(t *testing.T, store *storage.Store, rec *models.Recruiter, status models.OfferStatus, actif bool, created time.Time) *models.Offer {
	t.Helper()
	o := &models.Offer{
		ID:                  uuid.New(),
		RecruiterID:         rec.ID,
		CompanyID:           rec.CompanyID,
		Title:               "Offer " + created.Format(time.Kitchen),
		Location:            "Alger",
		ContractType:        "CDI",
		ValidationStatus:    status,
		ValidationHistory:   models.ValidationHistory{},
		Actif:               actif,
		CandidateSearchMode: models.SearchDisabled,
		CreatedAt:           created,
		UpdatedAt:           created,
	}
	require.NoError(t, store.Offers.Create(context.Background(), o))
	return o
}

func testUsers(t *testing.T, store *storage.Store) {
	ctx := context.Background()
	u := NewUser(t, store, models.RoleCandidate)

	got, err := store.Users.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	dup := *u
	dup.ID = uuid.New()
	assert.ErrorIs(t, store.Users.Create(ctx, &dup), storage.ErrConflict)

	_, err = store.Users.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got.AccountStatus = models.AccountSuspended
	got.SuspensionReason = "spam"
	require.NoError(t, store.Users.Update(ctx, got))
	reread, err := store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AccountSuspended, reread.AccountStatus)
	assert.Equal(t, "spam", reread.SuspensionReason)

	require.NoError(t, store.Users.Delete(ctx, u.ID))
	_, err = store.Users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, store.Users.Delete(ctx, u.ID), storage.ErrNotFound)

	company := &models.Company{ID: uuid.New(), Name: "Gone " + u.ID.String()[:8], Status: models.CompanyPending, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, store.Companies.Create(ctx, company))
	require.NoError(t, store.Companies.Delete(ctx, company.ID))
	_, err = store.Companies.GetByName(ctx, company.Name)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testOffers(t *testing.T, store *storage.Store) {
	ctx := context.Background()
	rec := NewRecruiter(t, store)

	visible := NewOffer(t, store, rec, models.OfferApproved, true, base.Add(3*time.Hour))
	closed := NewOffer(t, store, rec, models.OfferApproved, false, base.Add(2*time.Hour))
	pending := NewOffer(t, store, rec, models.OfferPending, false, base.Add(time.Hour))

	mine, err := store.Offers.List(ctx, storage.OfferFilter{RecruiterID: &rec.ID})
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, []uuid.UUID{visible.ID, closed.ID, pending.ID},
		[]uuid.UUID{mine[0].ID, mine[1].ID, mine[2].ID}, "newest first")

	public, err := store.Offers.List(ctx, storage.OfferFilter{Visible: true, RecruiterID: &rec.ID})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, visible.ID, public[0].ID)

	status := models.OfferPending
	queue, err := store.Offers.List(ctx, storage.OfferFilter{Status: &status, RecruiterID: &rec.ID})
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, pending.ID, queue[0].ID)

	page, err := store.Offers.List(ctx, storage.OfferFilter{RecruiterID: &rec.ID, Page: storage.Page{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, closed.ID, page[0].ID)

	t.Run("CounterNeverNegative", func(t *testing.T) {
		require.NoError(t, store.Offers.AdjustApplicationCount(ctx, visible.ID, 2))
		require.NoError(t, store.Offers.AdjustApplicationCount(ctx, visible.ID, -5))
		got, err := store.Offers.GetByID(ctx, visible.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.NombreCandidatures)

		assert.ErrorIs(t, store.Offers.AdjustApplicationCount(ctx, uuid.New(), 1), storage.ErrNotFound)
	})

	t.Run("UpdateKeepsCounter", func(t *testing.T) {
		require.NoError(t, store.Offers.AdjustApplicationCount(ctx, closed.ID, 1))
		stale, err := store.Offers.GetByID(ctx, closed.ID)
		require.NoError(t, err)
		stale.NombreCandidatures = 40
		stale.Title = "Renamed"
		require.NoError(t, store.Offers.Update(ctx, stale))

		got, err := store.Offers.GetByID(ctx, closed.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, 1, got.NombreCandidatures)
	})
}

func testApplications(t *testing.T, store *storage.Store) {
	ctx := context.Background()
	rec := NewRecruiter(t, store)
	offer := NewOffer(t, store, rec, models.OfferApproved, true, base)
	candidate := NewUser(t, store, models.RoleCandidate)

	app := &models.Application{
		ID:              uuid.New(),
		OfferID:         offer.ID,
		CandidateID:     candidate.ID,
		RecruiterStatus: models.StatusNouvelle,
		CandidateStatus: models.CandidateEnvoyee,
		Source:          models.SourceDirect,
		StatusHistory:   models.StatusHistory{},
		CreatedAt:       base,
		UpdatedAt:       base,
	}
	require.NoError(t, store.Applications.Create(ctx, app))

	again := *app
	again.ID = uuid.New()
	assert.ErrorIs(t, store.Applications.Create(ctx, &again), storage.ErrConflict)

	app.RecruiterStatus = models.StatusConsultee
	app.CandidateStatus = models.CandidateEnCours
	app.StatusHistory = append(app.StatusHistory, models.StatusChange{
		CandidateStatus: models.CandidateEnCours,
		RecruiterStatus: models.StatusConsultee,
		ChangedBy:       rec.UserID,
		ChangedAt:       base.Add(time.Minute),
	})
	require.NoError(t, store.Applications.Update(ctx, app))

	consultee := models.StatusConsultee
	byOffer, err := store.Applications.ListByOffer(ctx, offer.ID, &consultee)
	require.NoError(t, err)
	require.Len(t, byOffer, 1)
	assert.Len(t, byOffer[0].StatusHistory, 1)

	nouvelle := models.StatusNouvelle
	none, err := store.Applications.ListByOffer(ctx, offer.ID, &nouvelle)
	require.NoError(t, err)
	assert.Empty(t, none)

	mine, err := store.Applications.ListByCandidate(ctx, candidate.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.CandidateEnCours, mine[0].CandidateStatus)
}

func testNotifications(t *testing.T, store *storage.Store) {
	ctx := context.Background()
	user := NewUser(t, store, models.RoleCandidate)
	other := NewUser(t, store, models.RoleCandidate)

	var first uuid.UUID
	for i := 0; i < 3; i++ {
		n := &models.Notification{
			ID:        uuid.New(),
			UserID:    user.ID,
			Message:   "update",
			Type:      models.NotificationInfo,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Notifications.Create(ctx, n))
		if i == 0 {
			first = n.ID
		}
	}

	assert.ErrorIs(t, store.Notifications.MarkRead(ctx, other.ID, first), storage.ErrNotFound)
	require.NoError(t, store.Notifications.MarkRead(ctx, user.ID, first))

	unread, err := store.Notifications.CountUnread(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	changed, err := store.Notifications.MarkAllRead(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	pending, err := store.Notifications.ListByUser(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := store.Notifications.ListByUser(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func testAdminLogs(t *testing.T, store *storage.Store) {
	ctx := context.Background()
	admin := NewUser(t, store, models.RoleAdmin)
	target := uuid.New()

	for _, action := range []models.AdminAction{models.ActionOfferApproved, models.ActionUserSuspended} {
		require.NoError(t, store.AdminLogs.Create(ctx, &models.AdminLog{
			ID:         uuid.New(),
			ActorID:    admin.ID,
			Action:     action,
			TargetType: models.TargetOffer,
			TargetID:   target,
			CreatedAt:  base,
		}))
	}

	action := models.ActionOfferApproved
	logs, err := store.AdminLogs.List(ctx, storage.LogFilter{ActorID: &admin.ID, Action: &action})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, target, logs[0].TargetID)

	all, err := store.AdminLogs.List(ctx, storage.LogFilter{TargetID: &target})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testAdmins(t *testing.T, store *storage.Store) {
	ctx := context.Background()
	user := NewUser(t, store, models.RoleAdmin)
	admin := &models.Admin{
		ID:          uuid.New(),
		UserID:      user.ID,
		Label:       models.LabelModerator,
		Permissions: models.AdminPermissions{models.CapViewLogs: true},
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	require.NoError(t, store.Admins.Create(ctx, admin))

	admin.Permissions = models.AdminPermissions{models.CapValidateOffers: true}
	admin.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, store.Admins.Update(ctx, admin))
	got, err := store.Admins.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Has(models.CapValidateOffers))
	assert.False(t, got.Has(models.CapViewLogs))

	require.NoError(t, store.Admins.DeleteByUserID(ctx, user.ID))
	_, err = store.Admins.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, store.Admins.DeleteByUserID(ctx, user.ID), storage.ErrNotFound)
}
