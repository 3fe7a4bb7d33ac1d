package memory

import (
	"context"
	"time"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
)

func cloneConversation(c models.Conversation) models.Conversation {
	c.Messages = append(models.Messages(nil), c.Messages...)
	return c
}

func cloneTicket(t models.SupportTicket) models.SupportTicket {
	t.Messages = append(models.Messages(nil), t.Messages...)
	return t
}

func cloneNotification(n models.Notification) models.Notification { return n }

func cloneLog(l models.AdminLog) models.AdminLog {
	details := make(models.LogDetails, len(l.Details))
	for k, v := range l.Details {
		details[k] = v
	}
	l.Details = details
	return l
}

// --- conversations ---

type ConversationRepo struct{ t *table[models.Conversation] }

func NewConversationRepo() *ConversationRepo { return &ConversationRepo{t: newTable(cloneConversation)} }

var _ storage.ConversationRepository = (*ConversationRepo)(nil)

func (r *ConversationRepo) Create(_ context.Context, c *models.Conversation) error {
	return r.t.insert(c.ID, *c, func(existing models.Conversation) bool {
		return existing.ApplicationID == c.ApplicationID
	})
}

func (r *ConversationRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Conversation, error) {
	c, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConversationRepo) GetByApplication(_ context.Context, applicationID uuid.UUID) (*models.Conversation, error) {
	c, err := r.t.find(func(x models.Conversation) bool { return x.ApplicationID == applicationID })
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConversationRepo) Update(_ context.Context, c *models.Conversation) error {
	return r.t.update(c.ID, *c, nil)
}

func (r *ConversationRepo) ListByParticipant(_ context.Context, userID uuid.UUID, role models.Role) ([]models.Conversation, error) {
	return r.t.filter(func(c models.Conversation) bool {
		if role == models.RoleRecruiter {
			return c.RecruiterUserID == userID
		}
		return c.CandidateID == userID
	}, func(c models.Conversation) time.Time {
		if c.LastMessageAt != nil {
			return *c.LastMessageAt
		}
		return c.CreatedAt
	}), nil
}

// --- support tickets ---

type TicketRepo struct{ t *table[models.SupportTicket] }

func NewTicketRepo() *TicketRepo { return &TicketRepo{t: newTable(cloneTicket)} }

var _ storage.TicketRepository = (*TicketRepo)(nil)

func ticketUpdated(t models.SupportTicket) time.Time { return t.UpdatedAt }

func (r *TicketRepo) Create(_ context.Context, t *models.SupportTicket) error {
	return r.t.insert(t.ID, *t, nil)
}

func (r *TicketRepo) GetByID(_ context.Context, id uuid.UUID) (*models.SupportTicket, error) {
	t, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) Update(_ context.Context, t *models.SupportTicket) error {
	return r.t.update(t.ID, *t, nil)
}

func (r *TicketRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.SupportTicket, error) {
	return r.t.filter(func(t models.SupportTicket) bool { return t.UserID == userID }, ticketUpdated), nil
}

func (r *TicketRepo) List(_ context.Context, status *models.TicketStatus) ([]models.SupportTicket, error) {
	return r.t.filter(func(t models.SupportTicket) bool {
		return status == nil || t.Status == *status
	}, ticketUpdated), nil
}

// --- notifications ---

type NotificationRepo struct{ t *table[models.Notification] }

func NewNotificationRepo() *NotificationRepo { return &NotificationRepo{t: newTable(cloneNotification)} }

var _ storage.NotificationRepository = (*NotificationRepo)(nil)

func (r *NotificationRepo) Create(_ context.Context, n *models.Notification) error {
	return r.t.insert(n.ID, *n, nil)
}

func (r *NotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	return r.t.filter(func(n models.Notification) bool {
		return n.UserID == userID && (!unreadOnly || !n.Read)
	}, func(n models.Notification) time.Time { return n.CreatedAt }), nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	unread, err := r.ListByUser(ctx, userID, true)
	return len(unread), err
}

func (r *NotificationRepo) MarkRead(_ context.Context, userID, id uuid.UUID) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	n, ok := r.t.rows[id]
	if !ok || n.UserID != userID {
		return storage.ErrNotFound
	}
	n.Read = true
	r.t.rows[id] = n
	return nil
}

func (r *NotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	changed := 0
	for id, n := range r.t.rows {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.t.rows[id] = n
			changed++
		}
	}
	return changed, nil
}

// --- audit log ---

type AdminLogRepo struct{ t *table[models.AdminLog] }

func NewAdminLogRepo() *AdminLogRepo { return &AdminLogRepo{t: newTable(cloneLog)} }

var _ storage.AdminLogRepository = (*AdminLogRepo)(nil)

func (r *AdminLogRepo) Create(_ context.Context, entry *models.AdminLog) error {
	return r.t.insert(entry.ID, *entry, nil)
}

func (r *AdminLogRepo) List(_ context.Context, f storage.LogFilter) ([]models.AdminLog, error) {
	rows := r.t.filter(func(l models.AdminLog) bool {
		if f.ActorID != nil && l.ActorID != *f.ActorID {
			return false
		}
		if f.Action != nil && l.Action != *f.Action {
			return false
		}
		if f.TargetType != nil && l.TargetType != *f.TargetType {
			return false
		}
		if f.TargetID != nil && l.TargetID != *f.TargetID {
			return false
		}
		return true
	}, func(l models.AdminLog) time.Time { return l.CreatedAt })
	return paginate(rows, f.Page), nil
}
