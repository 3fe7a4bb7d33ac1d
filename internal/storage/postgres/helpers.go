package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"recruit-api/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db Querier) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("Database schema is up to date")
	return nil
}

// New builds a Store whose repositories share the pool.
func New(pool *pgxpool.Pool) *storage.Store {
	return &storage.Store{
		Users:         NewUserRepo(pool),
		Candidates:    NewCandidateRepo(pool),
		Companies:     NewCompanyRepo(pool),
		Recruiters:    NewRecruiterRepo(pool),
		Admins:        NewAdminRepo(pool),
		Offers:        NewOfferRepo(pool),
		Applications:  NewApplicationRepo(pool),
		Interviews:    NewInterviewRepo(pool),
		Conversations: NewConversationRepo(pool),
		Tickets:       NewTicketRepo(pool),
		Notifications: NewNotificationRepo(pool),
		AdminLogs:     NewAdminLogRepo(pool),
	}
}

// mapWriteError converts constraint violations into storage errors.
func mapWriteError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			log.Printf("%s: unique violation on %s: %v", op, pgErr.ConstraintName, err)
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		case "23503": // foreign_key_violation
			log.Printf("%s: foreign key violation on %s: %v", op, pgErr.ConstraintName, err)
			return fmt.Errorf("%s: invalid reference: %w", op, storage.ErrConflict)
		}
	}
	log.Printf("Error during %s: %v", op, err)
	return fmt.Errorf("failed to %s: %w", op, err)
}

// mapReadError turns pgx.ErrNoRows into storage.ErrNotFound.
func mapReadError(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	log.Printf("Error during %s: %v", op, err)
	return fmt.Errorf("failed to %s: %w", op, err)
}

// expectOne reports ErrNotFound when an UPDATE touched no row.
func expectOne(tag pgconn.CommandTag, err error, op string) error {
	if err != nil {
		return mapWriteError(err, op)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// selectOne runs a single-row query and scans it by column name.
func selectOne[T any](ctx context.Context, db Querier, op, query string, args ...any) (*T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapReadError(err, op)
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, mapReadError(err, op)
	}
	return v, nil
}

// selectMany runs a query and scans every row by column name. It never
// returns a nil slice.
func selectMany[T any](ctx context.Context, db Querier, op, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapReadError(err, op)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, mapReadError(err, op)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// listQuery appends WHERE, ORDER BY and paging clauses to base.
func listQuery(base string, conditions []string, args *[]any, orderBy string, page storage.Page) string {
	var b strings.Builder
	b.WriteString(base)

	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}

	b.WriteString(" ORDER BY ")
	b.WriteString(orderBy)

	limit, offset := page.Bounds()
	*args = append(*args, limit)
	b.WriteString(fmt.Sprintf(" LIMIT $%d", len(*args)))
	*args = append(*args, offset)
	b.WriteString(fmt.Sprintf(" OFFSET $%d", len(*args)))

	return b.String()
}

// arg appends v and returns its placeholder.
func arg(args *[]any, v any) string {
	*args = append(*args, v)
	return fmt.Sprintf("$%d", len(*args))
}
