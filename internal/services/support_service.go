package services

import (
	"context"
	"fmt"
	"strings"

	"recruit-api/internal/models"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
)

type supportService struct {
	*Deps
}

// NewSupportService creates a new instance of SupportService.
func NewSupportService(d *Deps) SupportService {
	return &supportService{Deps: d}
}

func (s *supportService) Open(ctx context.Context, actor models.Identity, req *dto.CreateTicketRequest) (*models.SupportTicket, error) {
	now := s.now()
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "general"
	}
	ticket := &models.SupportTicket{
		ID:       uuid.New(),
		UserID:   actor.UserID,
		Subject:  strings.TrimSpace(req.Subject),
		Category: category,
		Status:   models.TicketOpen,
		Messages: models.Messages{{
			ID:         uuid.New(),
			SenderID:   actor.UserID,
			SenderRole: actor.Role,
			Content:    strings.TrimSpace(req.Message),
			SentAt:     now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Tickets.Create(ctx, ticket); err != nil {
		return nil, mapRepoError(err, "creating ticket")
	}
	s.notifyAdmins(models.CapManageSupport, models.NotificationInfo,
		fmt.Sprintf("Nouveau ticket de support : %s", ticket.Subject))
	return ticket, nil
}

func (s *supportService) ListMine(ctx context.Context, actor models.Identity) ([]models.SupportTicket, error) {
	tickets, err := s.Store.Tickets.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, mapRepoError(err, "listing tickets")
	}
	return tickets, nil
}

// visible loads a ticket its author or a support admin may see.
func (s *supportService) visible(ctx context.Context, actor models.Identity, ticketID uuid.UUID) (*models.SupportTicket, bool, error) {
	ticket, err := s.Store.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, false, mapRepoError(err, fmt.Sprintf("fetching ticket %s", ticketID))
	}
	if ticket.UserID == actor.UserID {
		return ticket, false, nil
	}
	if actor.Role == models.RoleAdmin {
		if _, err := s.requireCapability(ctx, actor, models.CapManageSupport); err == nil {
			return ticket, true, nil
		}
	}
	return nil, false, fmt.Errorf("%w: ticket %s", ErrNotFound, ticketID)
}

func (s *supportService) Get(ctx context.Context, actor models.Identity, ticketID uuid.UUID) (*models.SupportTicket, error) {
	ticket, _, err := s.visible(ctx, actor, ticketID)
	return ticket, err
}

func (s *supportService) Reply(ctx context.Context, actor models.Identity, ticketID uuid.UUID, req *dto.SendMessageRequest) (*models.SupportTicket, error) {
	ticket, asSupport, err := s.visible(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == models.TicketClosed {
		return nil, fmt.Errorf("%w: ticket is closed", ErrConflict)
	}
	now := s.now()
	ticket.Messages = append(ticket.Messages, models.Message{
		ID:         uuid.New(),
		SenderID:   actor.UserID,
		SenderRole: actor.Role,
		Content:    strings.TrimSpace(req.Content),
		SentAt:     now,
	})
	if asSupport && ticket.Status == models.TicketOpen {
		ticket.Status = models.TicketInProgress
	}
	ticket.UpdatedAt = now
	if err := s.Store.Tickets.Update(ctx, ticket); err != nil {
		return nil, mapRepoError(err, "replying to ticket")
	}
	if asSupport {
		s.notify(ticket.UserID, models.NotificationInfo,
			fmt.Sprintf("Le support a répondu à votre ticket « %s »", ticket.Subject))
	}
	return ticket, nil
}

func (s *supportService) List(ctx context.Context, actor models.Identity, status *models.TicketStatus) ([]models.SupportTicket, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapManageSupport); err != nil {
		return nil, err
	}
	tickets, err := s.Store.Tickets.List(ctx, status)
	if err != nil {
		return nil, mapRepoError(err, "listing tickets")
	}
	return tickets, nil
}

func (s *supportService) SetStatus(ctx context.Context, actor models.Identity, ticketID uuid.UUID, status models.TicketStatus) (*models.SupportTicket, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapManageSupport); err != nil {
		return nil, err
	}
	ticket, err := s.Store.Tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching ticket %s", ticketID))
	}
	if ticket.Status == status {
		return ticket, nil
	}
	previous := ticket.Status
	ticket.Status = status
	ticket.UpdatedAt = s.now()
	if err := s.Store.Tickets.Update(ctx, ticket); err != nil {
		return nil, mapRepoError(err, "updating ticket status")
	}
	s.audit(ctx, actor.UserID, models.ActionTicketStatusChanged, models.TargetTicket, ticket.ID, models.LogDetails{
		"from": string(previous),
		"to":   string(status),
	})
	s.notify(ticket.UserID, models.NotificationInfo,
		fmt.Sprintf("Votre ticket « %s » est maintenant : %s", ticket.Subject, status))
	return ticket, nil
}
