package storage

import (
	"context"
	"time"

	"recruit-api/internal/models"

	"github.com/google/uuid"
)

// Page bounds list queries. A zero Limit means the backend default.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Bounds returns the normalized limit and offset.
func (p Page) Bounds() (limit, offset int) {
	limit, offset = p.Limit, p.Offset
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role   *models.Role
	Status *models.AccountStatus
	Query  string // substring of name or email
	Page
}

// OfferFilter narrows offer listings. Visible restricts to offers that are
// approved and actif.
type OfferFilter struct {
	Visible      bool
	Status       *models.OfferStatus
	RecruiterID  *uuid.UUID
	CompanyID    *uuid.UUID
	Query        string
	Location     string
	ContractType string
	Page
}

// LogFilter narrows the audit log listing.
type LogFilter struct {
	ActorID    *uuid.UUID
	Action     *models.AdminAction
	TargetType *models.TargetType
	TargetID   *uuid.UUID
	Page
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	// Delete hard-deletes the account. Only admin removal and rolled back
	// registrations use it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CandidateRepository stores candidate profiles keyed by user id.
type CandidateRepository interface {
	Upsert(ctx context.Context, candidate *models.Candidate) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Candidate, error)
}

// CompanyRepository defines the interface for company data operations.
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetByName(ctx context.Context, name string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	List(ctx context.Context, status *models.CompanyStatus) ([]models.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecruiterRepository stores recruiter profiles. Update writes the whole
// document, validation requests included.
type RecruiterRepository interface {
	Create(ctx context.Context, recruiter *models.Recruiter) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recruiter, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Recruiter, error)
	Update(ctx context.Context, recruiter *models.Recruiter) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Recruiter, error)
	List(ctx context.Context, status *models.RecruiterValidationStatus) ([]models.Recruiter, error)
}

// AdminRepository stores admin capability records.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	List(ctx context.Context) ([]models.Admin, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// OfferRepository defines the interface for offer data operations.
type OfferRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	List(ctx context.Context, filter OfferFilter) ([]models.Offer, error)
	// AdjustApplicationCount atomically adds delta to nombreCandidatures,
	// never going below zero.
	AdjustApplicationCount(ctx context.Context, offerID uuid.UUID, delta int) error
}

// ApplicationRepository defines the interface for application data
// operations. Create returns ErrConflict when the candidate already applied
// to the offer.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	ListByOffer(ctx context.Context, offerID uuid.UUID, status *models.RecruiterStatus) ([]models.Application, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.Application, error)
}

// InterviewRepository defines the interface for interview data operations.
type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error)
	Update(ctx context.Context, interview *models.Interview) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]models.Interview, error)
}

// ConversationRepository stores one thread per application.
type ConversationRepository interface {
	Create(ctx context.Context, conv *models.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	GetByApplication(ctx context.Context, applicationID uuid.UUID) (*models.Conversation, error)
	Update(ctx context.Context, conv *models.Conversation) error
	ListByParticipant(ctx context.Context, userID uuid.UUID, role models.Role) ([]models.Conversation, error)
}

// TicketRepository defines the interface for support ticket operations.
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.SupportTicket) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SupportTicket, error)
	Update(ctx context.Context, ticket *models.SupportTicket) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SupportTicket, error)
	List(ctx context.Context, status *models.TicketStatus) ([]models.SupportTicket, error)
}

// NotificationRepository is the append-only per-user inbox.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
}

// AdminLogRepository is the append-only audit trail.
type AdminLogRepository interface {
	Create(ctx context.Context, entry *models.AdminLog) error
	List(ctx context.Context, filter LogFilter) ([]models.AdminLog, error)
}

// CacheStore is a small key/value store with expiry, used for system
// settings, verification codes and revoked token ids. Get returns
// ErrNotFound for missing or expired keys. A zero ttl never expires.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Store groups every repository of one backend.
type Store struct {
	Users         UserRepository
	Candidates    CandidateRepository
	Companies     CompanyRepository
	Recruiters    RecruiterRepository
	Admins        AdminRepository
	Offers        OfferRepository
	Applications  ApplicationRepository
	Interviews    InterviewRepository
	Conversations ConversationRepository
	Tickets       TicketRepository
	Notifications NotificationRepository
	AdminLogs     AdminLogRepository
}
