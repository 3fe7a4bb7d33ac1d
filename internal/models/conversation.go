package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one entry of a conversation or a support ticket thread.
type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"senderId"`
	SenderRole Role      `json:"senderRole"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sentAt"`
}

type Messages []Message

// Conversation is the thread attached to one application.
type Conversation struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	ApplicationID       uuid.UUID  `json:"applicationId" db:"application_id"`
	RecruiterUserID     uuid.UUID  `json:"recruiterUserId" db:"recruiter_user_id"`
	CandidateID         uuid.UUID  `json:"candidateId" db:"candidate_id"`
	Messages            Messages   `json:"messages" db:"messages"`
	UnreadByRecruiter   int        `json:"unreadByRecruiter" db:"unread_by_recruiter"`
	UnreadByCandidate   int        `json:"unreadByCandidate" db:"unread_by_candidate"`
	CandidateHasReplied bool       `json:"candidateHasReplied" db:"candidate_has_replied"`
	LastMessageAt       *time.Time `json:"lastMessageAt,omitempty" db:"last_message_at"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// SupportTicket is a user request to the platform support team.
type SupportTicket struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	UserID    uuid.UUID    `json:"userId" db:"user_id"`
	Subject   string       `json:"subject" db:"subject"`
	Category  string       `json:"category" db:"category"`
	Status    TicketStatus `json:"status" db:"status"`
	Messages  Messages     `json:"messages" db:"messages"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" db:"updated_at"`
}
