package postgres

import (
	"context"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const conversationColumns = `id, application_id, recruiter_user_id, candidate_id, messages,
	unread_by_recruiter, unread_by_candidate, candidate_has_replied, last_message_at, created_at, updated_at`

// ConversationRepo implements storage.ConversationRepository.
type ConversationRepo struct {
	db Querier
}

func NewConversationRepo(db *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{db: db}
}

var _ storage.ConversationRepository = (*ConversationRepo)(nil)

func (r *ConversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	query := `
		INSERT INTO conversations (` + conversationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.ApplicationID, c.RecruiterUserID, c.CandidateID, c.Messages,
		c.UnreadByRecruiter, c.UnreadByCandidate, c.CandidateHasReplied, c.LastMessageAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "create conversation")
	}
	return nil
}

func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	return selectOne[models.Conversation](ctx, r.db, "get conversation",
		`SELECT `+conversationColumns+` FROM conversations WHERE id = $1`, id)
}

func (r *ConversationRepo) GetByApplication(ctx context.Context, applicationID uuid.UUID) (*models.Conversation, error) {
	return selectOne[models.Conversation](ctx, r.db, "get conversation by application",
		`SELECT `+conversationColumns+` FROM conversations WHERE application_id = $1`, applicationID)
}

func (r *ConversationRepo) Update(ctx context.Context, c *models.Conversation) error {
	query := `
		UPDATE conversations SET messages = $2, unread_by_recruiter = $3, unread_by_candidate = $4,
			candidate_has_replied = $5, last_message_at = $6, updated_at = $7
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		c.ID, c.Messages, c.UnreadByRecruiter, c.UnreadByCandidate,
		c.CandidateHasReplied, c.LastMessageAt, c.UpdatedAt,
	)
	return expectOne(tag, err, "update conversation")
}

func (r *ConversationRepo) ListByParticipant(ctx context.Context, userID uuid.UUID, role models.Role) ([]models.Conversation, error) {
	column := "candidate_id"
	if role == models.RoleRecruiter {
		column = "recruiter_user_id"
	}
	return selectMany[models.Conversation](ctx, r.db, "list conversations",
		`SELECT `+conversationColumns+` FROM conversations WHERE `+column+` = $1
		 ORDER BY COALESCE(last_message_at, created_at) DESC`, userID)
}

const ticketColumns = `id, user_id, subject, category, status, messages, created_at, updated_at`

// TicketRepo implements storage.TicketRepository.
type TicketRepo struct {
	db Querier
}

func NewTicketRepo(db *pgxpool.Pool) *TicketRepo {
	return &TicketRepo{db: db}
}

var _ storage.TicketRepository = (*TicketRepo)(nil)

func (r *TicketRepo) Create(ctx context.Context, t *models.SupportTicket) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO support_tickets (`+ticketColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, t.UserID, t.Subject, t.Category, t.Status, t.Messages, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "create ticket")
	}
	return nil
}

func (r *TicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error) {
	return selectOne[models.SupportTicket](ctx, r.db, "get ticket",
		`SELECT `+ticketColumns+` FROM support_tickets WHERE id = $1`, id)
}

func (r *TicketRepo) Update(ctx context.Context, t *models.SupportTicket) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE support_tickets SET subject = $2, category = $3, status = $4, messages = $5, updated_at = $6
		WHERE id = $1
	`, t.ID, t.Subject, t.Category, t.Status, t.Messages, t.UpdatedAt)
	return expectOne(tag, err, "update ticket")
}

func (r *TicketRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SupportTicket, error) {
	return selectMany[models.SupportTicket](ctx, r.db, "list tickets by user",
		`SELECT `+ticketColumns+` FROM support_tickets WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
}

func (r *TicketRepo) List(ctx context.Context, status *models.TicketStatus) ([]models.SupportTicket, error) {
	if status != nil {
		return selectMany[models.SupportTicket](ctx, r.db, "list tickets",
			`SELECT `+ticketColumns+` FROM support_tickets WHERE status = $1 ORDER BY updated_at DESC`, *status)
	}
	return selectMany[models.SupportTicket](ctx, r.db, "list tickets",
		`SELECT `+ticketColumns+` FROM support_tickets ORDER BY updated_at DESC`)
}

// NotificationRepo implements storage.NotificationRepository.
type NotificationRepo struct {
	db Querier
}

func NewNotificationRepo(db *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{db: db}
}

var _ storage.NotificationRepository = (*NotificationRepo)(nil)

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (id, user_id, message, type, lu, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, n.ID, n.UserID, n.Message, n.Type, n.Read, n.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create notification")
	}
	return nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	query := `SELECT id, user_id, message, type, lu, created_at FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND NOT lu`
	}
	query += ` ORDER BY created_at DESC LIMIT 200`
	return selectMany[models.Notification](ctx, r.db, "list notifications", query, userID)
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT lu`, userID).Scan(&n)
	if err != nil {
		return 0, mapReadError(err, "count unread notifications")
	}
	return n, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET lu = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	return expectOne(tag, err, "mark notification read")
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET lu = TRUE WHERE user_id = $1 AND NOT lu`, userID)
	if err != nil {
		return 0, mapWriteError(err, "mark all notifications read")
	}
	return int(tag.RowsAffected()), nil
}

// AdminLogRepo implements storage.AdminLogRepository. Rows are never
// updated or deleted.
type AdminLogRepo struct {
	db Querier
}

func NewAdminLogRepo(db *pgxpool.Pool) *AdminLogRepo {
	return &AdminLogRepo{db: db}
}

var _ storage.AdminLogRepository = (*AdminLogRepo)(nil)

const adminLogColumns = `id, actor_id, action, target_type, target_id, details, ip, user_agent, created_at`

func (r *AdminLogRepo) Create(ctx context.Context, e *models.AdminLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO admin_logs (`+adminLogColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.ActorID, e.Action, e.TargetType, e.TargetID, e.Details, e.IP, e.UserAgent, e.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create admin log")
	}
	return nil
}

func (r *AdminLogRepo) List(ctx context.Context, f storage.LogFilter) ([]models.AdminLog, error) {
	var conditions []string
	args := []any{}
	if f.ActorID != nil {
		conditions = append(conditions, "actor_id = "+arg(&args, *f.ActorID))
	}
	if f.Action != nil {
		conditions = append(conditions, "action = "+arg(&args, *f.Action))
	}
	if f.TargetType != nil {
		conditions = append(conditions, "target_type = "+arg(&args, *f.TargetType))
	}
	if f.TargetID != nil {
		conditions = append(conditions, "target_id = "+arg(&args, *f.TargetID))
	}
	query := listQuery(`SELECT `+adminLogColumns+` FROM admin_logs`, conditions, &args, "created_at DESC", f.Page)
	return selectMany[models.AdminLog](ctx, r.db, "list admin logs", query, args...)
}
