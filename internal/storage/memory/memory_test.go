package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/storage/storagetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, New())
}

func TestUserEmailIsCaseInsensitive(t *testing.T) {
	store := New()
	u := storagetest.NewUser(t, store, models.RoleCandidate)

	got, err := store.Users.GetByEmail(context.Background(), strings.ToUpper(u.Email))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	dup := *u
	dup.ID = uuid.New()
	dup.Email = strings.ToUpper(u.Email)
	assert.ErrorIs(t, store.Users.Create(context.Background(), &dup), storage.ErrConflict)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	store := New()
	rec := storagetest.NewRecruiter(t, store)
	offer := storagetest.NewOffer(t, store, rec, models.OfferPending, false, time.Now())

	got, err := store.Offers.GetByID(ctx, offer.ID)
	require.NoError(t, err)
	got.Title = "mutated"
	got.ValidationHistory = append(got.ValidationHistory, models.ValidationEntry{Status: models.OfferApproved})

	again, err := store.Offers.GetByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.Title, again.Title)
	assert.Empty(t, again.ValidationHistory)
}

func TestPageBounds(t *testing.T) {
	ctx := context.Background()
	store := New()
	rec := storagetest.NewRecruiter(t, store)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < storage.MaxLimit+5; i++ {
		storagetest.NewOffer(t, store, rec, models.OfferApproved, true, start.Add(time.Duration(i)*time.Minute))
	}

	def, err := store.Offers.List(ctx, storage.OfferFilter{})
	require.NoError(t, err)
	assert.Len(t, def, storage.DefaultLimit)

	capped, err := store.Offers.List(ctx, storage.OfferFilter{Page: storage.Page{Limit: 1000}})
	require.NoError(t, err)
	assert.Len(t, capped, storage.MaxLimit)

	tail, err := store.Offers.List(ctx, storage.OfferFilter{Page: storage.Page{Limit: 10, Offset: storage.MaxLimit}})
	require.NoError(t, err)
	assert.Len(t, tail, 5)
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "code", "123456", time.Minute))
	require.NoError(t, c.Set(ctx, "mode", "live", 0))

	v, err := c.Get(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, "123456", v)

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "code")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	v, err = c.Get(ctx, "mode")
	require.NoError(t, err)
	assert.Equal(t, "live", v)

	require.NoError(t, c.Delete(ctx, "mode"))
	_, err = c.Get(ctx, "mode")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
