package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
)

type conversationService struct {
	*Deps
}

// NewConversationService creates a new instance of ConversationService.
func NewConversationService(d *Deps) ConversationService {
	return &conversationService{Deps: d}
}

// Open returns the thread of an application, creating it on first use.
func (s *conversationService) Open(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Conversation, error) {
	app, _, err := s.recruiterApplication(ctx, actor, appID)
	if err != nil {
		return nil, err
	}
	conv, err := s.Store.Conversations.GetByApplication(ctx, app.ID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, mapRepoError(err, "fetching conversation")
	}

	now := s.now()
	conv = &models.Conversation{
		ID:              uuid.New(),
		ApplicationID:   app.ID,
		RecruiterUserID: actor.UserID,
		CandidateID:     app.CandidateID,
		Messages:        models.Messages{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.Conversations.Create(ctx, conv); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// opened concurrently
			existing, getErr := s.Store.Conversations.GetByApplication(ctx, app.ID)
			if getErr == nil {
				return existing, nil
			}
		}
		return nil, mapRepoError(err, "creating conversation")
	}
	return conv, nil
}

func (s *conversationService) participant(ctx context.Context, actor models.Identity, convID uuid.UUID) (*models.Conversation, error) {
	conv, err := s.Store.Conversations.GetByID(ctx, convID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching conversation %s", convID))
	}
	switch {
	case actor.Role == models.RoleRecruiter && conv.RecruiterUserID == actor.UserID:
	case actor.Role == models.RoleCandidate && conv.CandidateID == actor.UserID:
	default:
		return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, convID)
	}
	return conv, nil
}

func (s *conversationService) Get(ctx context.Context, actor models.Identity, convID uuid.UUID) (*models.Conversation, error) {
	return s.participant(ctx, actor, convID)
}

func (s *conversationService) List(ctx context.Context, actor models.Identity, activeOnly bool) ([]models.Conversation, error) {
	if actor.Role != models.RoleRecruiter && actor.Role != models.RoleCandidate {
		return nil, fmt.Errorf("%w: conversations are for candidates and recruiters", ErrForbidden)
	}
	convs, err := s.Store.Conversations.ListByParticipant(ctx, actor.UserID, actor.Role)
	if err != nil {
		return nil, mapRepoError(err, "listing conversations")
	}
	if !activeOnly {
		return convs, nil
	}
	active := convs[:0]
	for _, c := range convs {
		if c.CandidateHasReplied {
			active = append(active, c)
		}
	}
	return active, nil
}

func (s *conversationService) Send(ctx context.Context, actor models.Identity, convID uuid.UUID, req *dto.SendMessageRequest) (*models.Conversation, error) {
	conv, err := s.participant(ctx, actor, convID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: message is empty", ErrValidation)
	}
	now := s.now()
	conv.Messages = append(conv.Messages, models.Message{
		ID:         uuid.New(),
		SenderID:   actor.UserID,
		SenderRole: actor.Role,
		Content:    content,
		SentAt:     now,
	})
	recipient := conv.CandidateID
	if actor.Role == models.RoleCandidate {
		conv.UnreadByRecruiter++
		conv.CandidateHasReplied = true
		recipient = conv.RecruiterUserID
	} else {
		conv.UnreadByCandidate++
	}
	conv.LastMessageAt = &now
	conv.UpdatedAt = now
	if err := s.Store.Conversations.Update(ctx, conv); err != nil {
		return nil, mapRepoError(err, "sending message")
	}
	s.notify(recipient, models.NotificationInfo, "Vous avez reçu un nouveau message")
	return conv, nil
}

func (s *conversationService) MarkRead(ctx context.Context, actor models.Identity, convID uuid.UUID) (*models.Conversation, error) {
	conv, err := s.participant(ctx, actor, convID)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleCandidate {
		if conv.UnreadByCandidate == 0 {
			return conv, nil
		}
		conv.UnreadByCandidate = 0
	} else {
		if conv.UnreadByRecruiter == 0 {
			return conv, nil
		}
		conv.UnreadByRecruiter = 0
	}
	conv.UpdatedAt = s.now()
	if err := s.Store.Conversations.Update(ctx, conv); err != nil {
		return nil, mapRepoError(err, "marking conversation read")
	}
	return conv, nil
}
