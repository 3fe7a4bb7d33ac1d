package services

import (
	"context"

	"recruit-api/internal/models"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
)

type notificationService struct {
	*Deps
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(d *Deps) NotificationService {
	return &notificationService{Deps: d}
}

func (s *notificationService) List(ctx context.Context, actor models.Identity, unreadOnly bool) (*dto.NotificationsResponse, error) {
	items, err := s.Store.Notifications.ListByUser(ctx, actor.UserID, unreadOnly)
	if err != nil {
		return nil, mapRepoError(err, "listing notifications")
	}
	unread, err := s.Store.Notifications.CountUnread(ctx, actor.UserID)
	if err != nil {
		return nil, mapRepoError(err, "counting unread notifications")
	}
	if items == nil {
		items = []models.Notification{}
	}
	return &dto.NotificationsResponse{Items: items, Unread: unread}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor models.Identity, id uuid.UUID) error {
	if err := s.Store.Notifications.MarkRead(ctx, actor.UserID, id); err != nil {
		return mapRepoError(err, "marking notification read")
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor models.Identity) (int, error) {
	n, err := s.Store.Notifications.MarkAllRead(ctx, actor.UserID)
	if err != nil {
		return 0, mapRepoError(err, "marking notifications read")
	}
	return n, nil
}
