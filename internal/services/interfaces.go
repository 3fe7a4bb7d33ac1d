package services

import (
	"context"
	"io"

	"recruit-api/internal/auth"
	"recruit-api/internal/models"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
)

// AccountService defines registration, login and session operations.
type AccountService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	SendVerification(ctx context.Context, actor models.Identity) (*dto.VerificationSentResponse, error)
	VerifyEmail(ctx context.Context, actor models.Identity, req *dto.VerifyEmailRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Me(ctx context.Context, actor models.Identity) (*dto.MeResponse, error)
}

// ProfileService manages candidate profiles and file uploads.
type ProfileService interface {
	GetCandidate(ctx context.Context, actor models.Identity) (*models.Candidate, error)
	UpdateCandidate(ctx context.Context, actor models.Identity, req *dto.UpdateCandidateRequest) (*models.Candidate, error)
	UploadCV(ctx context.Context, actor models.Identity, r io.Reader, filename, contentType string) (*models.Candidate, error)
	Upload(ctx context.Context, actor models.Identity, r io.Reader, filename, contentType string) (string, error)
}

// OfferService defines offer authoring, listing and moderation.
type OfferService interface {
	Create(ctx context.Context, actor models.Identity, req *dto.CreateOfferRequest) (*models.Offer, error)
	Update(ctx context.Context, actor models.Identity, offerID uuid.UUID, req *dto.UpdateOfferRequest) (*models.Offer, error)
	Submit(ctx context.Context, actor models.Identity, offerID uuid.UUID) (*models.Offer, error)
	SetOpen(ctx context.Context, actor models.Identity, offerID uuid.UUID, open bool) (*models.Offer, error)
	Get(ctx context.Context, actor *models.Identity, offerID uuid.UUID) (*models.Offer, error)
	ListPublic(ctx context.Context, req *dto.ListOffersRequest) ([]models.Offer, error)
	ListMine(ctx context.Context, actor models.Identity) ([]models.Offer, error)

	ListForModeration(ctx context.Context, actor models.Identity, req *dto.AdminListOffersRequest) ([]models.Offer, error)
	Moderate(ctx context.Context, actor models.Identity, offerID uuid.UUID, decision models.OfferStatus, reason string) (*models.Offer, error)
	SetVisibility(ctx context.Context, actor models.Identity, offerID uuid.UUID, actif bool) (*models.Offer, error)
	AdminUpdate(ctx context.Context, actor models.Identity, offerID uuid.UUID, req *dto.UpdateOfferRequest) (*models.Offer, error)
}

// ApplicationService drives the application pipeline.
type ApplicationService interface {
	Apply(ctx context.Context, actor models.Identity, req *dto.ApplyRequest) (*models.Application, error)
	Propose(ctx context.Context, actor models.Identity, offerID uuid.UUID, req *dto.ProposeCandidateRequest) (*models.Application, error)
	ListMine(ctx context.Context, actor models.Identity) ([]models.Application, error)
	GetForCandidate(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, error)
	Withdraw(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, error)
	Cancel(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, error)

	ListForOffer(ctx context.Context, actor models.Identity, offerID uuid.UUID, status *models.RecruiterStatus) ([]models.Application, error)
	GetForRecruiter(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Application, error)
	Transition(ctx context.Context, actor models.Identity, appID uuid.UUID, req *dto.TransitionRequest) (*models.Application, error)
	MarkAllSeen(ctx context.Context, actor models.Identity, offerID uuid.UUID) (*dto.MarkSeenResponse, error)
	Star(ctx context.Context, actor models.Identity, appID uuid.UUID, starred bool) (*models.Application, error)
}

// InterviewService schedules and negotiates interviews.
type InterviewService interface {
	Propose(ctx context.Context, actor models.Identity, appID uuid.UUID, req *dto.ProposeInterviewRequest) (*models.Interview, error)
	ListForApplication(ctx context.Context, actor models.Identity, appID uuid.UUID) ([]models.Interview, error)
	Confirm(ctx context.Context, actor models.Identity, interviewID uuid.UUID) (*models.Interview, error)
	Reschedule(ctx context.Context, actor models.Identity, interviewID uuid.UUID, req *dto.RescheduleRequest) (*models.Interview, error)
	AcceptAlternative(ctx context.Context, actor models.Identity, interviewID uuid.UUID) (*models.Interview, error)
	Cancel(ctx context.Context, actor models.Identity, interviewID uuid.UUID, reason string) (*models.Interview, error)
	Close(ctx context.Context, actor models.Identity, interviewID uuid.UUID, outcome models.InterviewStatus) (*models.Interview, error)
}

// ConversationService handles application threads.
type ConversationService interface {
	Open(ctx context.Context, actor models.Identity, appID uuid.UUID) (*models.Conversation, error)
	Get(ctx context.Context, actor models.Identity, convID uuid.UUID) (*models.Conversation, error)
	List(ctx context.Context, actor models.Identity, activeOnly bool) ([]models.Conversation, error)
	Send(ctx context.Context, actor models.Identity, convID uuid.UUID, req *dto.SendMessageRequest) (*models.Conversation, error)
	MarkRead(ctx context.Context, actor models.Identity, convID uuid.UUID) (*models.Conversation, error)
}

// RecruiterService covers the validation workflow and company teams.
type RecruiterService interface {
	GetMine(ctx context.Context, actor models.Identity) (*models.Recruiter, error)
	UpdateMine(ctx context.Context, actor models.Identity, req *dto.UpdateRecruiterProfileRequest) (*models.Recruiter, error)
	RespondToRequest(ctx context.Context, actor models.Identity, requestID uuid.UUID, req *dto.ValidationResponseRequest) (*models.Recruiter, error)
	ListTeam(ctx context.Context, actor models.Identity) ([]models.Recruiter, error)
	UpdateTeamPermissions(ctx context.Context, actor models.Identity, recruiterID uuid.UUID, req *dto.UpdateTeamPermissionsRequest) (*models.Recruiter, error)

	List(ctx context.Context, actor models.Identity, status *models.RecruiterValidationStatus) ([]models.Recruiter, error)
	Get(ctx context.Context, actor models.Identity, recruiterID uuid.UUID) (*models.Recruiter, error)
	RequestValidation(ctx context.Context, actor models.Identity, recruiterID uuid.UUID, req *dto.IssueValidationRequestsRequest) (*models.Recruiter, error)
	CancelRequests(ctx context.Context, actor models.Identity, recruiterID uuid.UUID) (*models.Recruiter, error)
	ReviewResponse(ctx context.Context, actor models.Identity, recruiterID, requestID uuid.UUID, approve bool) (*models.Recruiter, error)
	Validate(ctx context.Context, actor models.Identity, recruiterID uuid.UUID) (*models.Recruiter, error)
	Reject(ctx context.Context, actor models.Identity, recruiterID uuid.UUID, reason string) (*models.Recruiter, error)
}

// AdminService covers user, company, audit and settings administration.
type AdminService interface {
	ListUsers(ctx context.Context, actor models.Identity, req *dto.ListUsersRequest) ([]models.User, error)
	SuspendUser(ctx context.Context, actor models.Identity, userID uuid.UUID, req *dto.SuspendUserRequest) (*models.User, error)
	BanUser(ctx context.Context, actor models.Identity, userID uuid.UUID, reason string) (*models.User, error)
	ReactivateUser(ctx context.Context, actor models.Identity, userID uuid.UUID) (*models.User, error)

	ListCompanies(ctx context.Context, actor models.Identity, status *models.CompanyStatus) ([]models.Company, error)
	ActivateCompany(ctx context.Context, actor models.Identity, companyID uuid.UUID) (*models.Company, error)
	RejectCompany(ctx context.Context, actor models.Identity, companyID uuid.UUID, reason string) (*models.Company, error)
	CreateCompany(ctx context.Context, actor models.Identity, req *dto.CreateCompanyRequest) (*models.Company, error)

	ListAdmins(ctx context.Context, actor models.Identity) ([]dto.AdminAccount, error)
	CreateAdmin(ctx context.Context, actor models.Identity, req *dto.CreateAdminRequest) (*dto.AdminAccount, error)
	UpdateAdminPermissions(ctx context.Context, actor models.Identity, userID uuid.UUID, req *dto.AdminPermissionsRequest) (*dto.AdminAccount, error)
	DeleteAdmin(ctx context.Context, actor models.Identity, userID uuid.UUID) error

	ListLogs(ctx context.Context, actor models.Identity, req *dto.ListLogsRequest) ([]models.AdminLog, error)
	GetEmailMode(ctx context.Context, actor models.Identity) (string, error)
	SetEmailMode(ctx context.Context, actor models.Identity, mode string) (string, error)
}

// SupportService handles support tickets.
type SupportService interface {
	Open(ctx context.Context, actor models.Identity, req *dto.CreateTicketRequest) (*models.SupportTicket, error)
	ListMine(ctx context.Context, actor models.Identity) ([]models.SupportTicket, error)
	Get(ctx context.Context, actor models.Identity, ticketID uuid.UUID) (*models.SupportTicket, error)
	Reply(ctx context.Context, actor models.Identity, ticketID uuid.UUID, req *dto.SendMessageRequest) (*models.SupportTicket, error)
	List(ctx context.Context, actor models.Identity, status *models.TicketStatus) ([]models.SupportTicket, error)
	SetStatus(ctx context.Context, actor models.Identity, ticketID uuid.UUID, status models.TicketStatus) (*models.SupportTicket, error)
}

// NotificationService exposes a user's inbox.
type NotificationService interface {
	List(ctx context.Context, actor models.Identity, unreadOnly bool) (*dto.NotificationsResponse, error)
	MarkRead(ctx context.Context, actor models.Identity, id uuid.UUID) error
	MarkAllRead(ctx context.Context, actor models.Identity) (int, error)
}
