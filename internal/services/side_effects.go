package services

import (
	"context"
	"fmt"

	"recruit-api/internal/models"
	"recruit-api/internal/outbox"

	"github.com/google/uuid"
)

// Side-effect kinds, used as the metrics label.
const (
	effectNotify     = "notification"
	effectAudit      = "audit"
	effectEmail      = "email"
	effectBlobDelete = "blob_delete"
)

func outboxTask(kind string, run func(ctx context.Context) error) outbox.Task {
	return outbox.Task{Kind: kind, Run: run}
}

// notify drops a message into a user's inbox once the primary write is done.
func (d *Deps) notify(userID uuid.UUID, typ models.NotificationType, message string) {
	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		Type:      typ,
		CreatedAt: d.now(),
	}
	d.Effects.Enqueue(outboxTask(effectNotify, func(ctx context.Context) error {
		return d.Store.Notifications.Create(ctx, n)
	}))
}

// notifyAdmins reaches every admin holding capability c.
func (d *Deps) notifyAdmins(c models.Capability, typ models.NotificationType, message string) {
	createdAt := d.now()
	d.Effects.Enqueue(outboxTask(effectNotify, func(ctx context.Context) error {
		admins, err := d.Store.Admins.List(ctx)
		if err != nil {
			return fmt.Errorf("listing admins: %w", err)
		}
		for i := range admins {
			if !admins[i].Has(c) {
				continue
			}
			n := &models.Notification{
				ID:        uuid.New(),
				UserID:    admins[i].UserID,
				Message:   message,
				Type:      typ,
				CreatedAt: createdAt,
			}
			if err := d.Store.Notifications.Create(ctx, n); err != nil {
				return fmt.Errorf("notifying admin %s: %w", admins[i].UserID, err)
			}
		}
		return nil
	}))
}

// audit appends an admin log entry. Request details are captured before
// the task leaves the request goroutine.
func (d *Deps) audit(ctx context.Context, actorID uuid.UUID, action models.AdminAction, targetType models.TargetType, targetID uuid.UUID, details models.LogDetails) {
	meta := requestMetaFrom(ctx)
	entry := &models.AdminLog{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		IP:         meta.IP,
		UserAgent:  meta.UserAgent,
		CreatedAt:  d.now(),
	}
	d.Effects.Enqueue(outboxTask(effectAudit, func(ctx context.Context) error {
		return d.Store.AdminLogs.Create(ctx, entry)
	}))
}

// email sends a templated message to a user looked up by id.
func (d *Deps) email(userID uuid.UUID, template string, data map[string]any) {
	d.Effects.Enqueue(outboxTask(effectEmail, func(ctx context.Context) error {
		user, err := d.Store.Users.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading recipient %s: %w", userID, err)
		}
		if data == nil {
			data = map[string]any{}
		}
		if _, ok := data["Name"]; !ok {
			data["Name"] = user.Name
		}
		_, err = d.Mailer.Send(ctx, user.Email, template, data)
		return err
	}))
}

func (d *Deps) deleteBlob(url string) {
	if url == "" {
		return
	}
	d.Effects.Enqueue(outboxTask(effectBlobDelete, func(ctx context.Context) error {
		d.Blob.Delete(ctx, url)
		return nil
	}))
}

func (d *Deps) transitioned(machine, from, to string) {
	d.Metrics.Transition(machine, from, to)
}
