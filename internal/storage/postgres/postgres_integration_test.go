package postgres

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/storage/storagetest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTables = []string{
	"admin_logs", "notifications", "support_tickets", "conversations", "interviews",
	"applications", "offers", "admins", "recruiters", "companies", "candidates", "users",
}

// getTestPool connects to TEST_DATABASE_URL and applies the schema. Tests
// are skipped when the variable is not set.
func getTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx), "Failed to reach test database")
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	cleanupTables(ctx, t, pool)
	return pool
}

// cleanupTables truncates every table for test isolation.
func cleanupTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, "TRUNCATE "+strings.Join(allTables, ", ")+" CASCADE")
	require.NoError(t, err, "Failed to truncate tables")
	log.Printf("Cleaned tables: %s", strings.Join(allTables, ", "))
}

func TestPostgresStoreContract(t *testing.T) {
	pool := getTestPool(t)
	storagetest.Run(t, New(pool))
}

func TestPostgresForeignKeys(t *testing.T) {
	pool := getTestPool(t)
	store := New(pool)
	rec := storagetest.NewRecruiter(t, store)

	orphan := *storagetest.NewOffer(t, store, rec, models.OfferDraft, false, time.Now())
	orphan.ID = uuid.New()
	orphan.RecruiterID = uuid.New()
	err := store.Offers.Create(context.Background(), &orphan)
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestMigrateIsIdempotent(t *testing.T) {
	pool := getTestPool(t)
	assert.NoError(t, Migrate(context.Background(), pool))
}
