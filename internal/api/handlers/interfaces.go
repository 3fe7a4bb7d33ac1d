package handlers

import "github.com/gin-gonic/gin"

// AuthHandlerInterface defines the methods needed by the auth routes.
type AuthHandlerInterface interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	SendVerification(c *gin.Context)
	VerifyEmail(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
}

// ProfileHandlerInterface defines the methods needed by the candidate and upload routes.
type ProfileHandlerInterface interface {
	GetCandidate(c *gin.Context)
	UpdateCandidate(c *gin.Context)
	UploadCV(c *gin.Context)
	Upload(c *gin.Context)
}

// OfferHandlerInterface defines the methods needed by the offer routes.
type OfferHandlerInterface interface {
	ListOffers(c *gin.Context)
	GetOffer(c *gin.Context)
	CreateOffer(c *gin.Context)
	ListMyOffers(c *gin.Context)
	UpdateOffer(c *gin.Context)
	SubmitOffer(c *gin.Context)
	SetOfferOpen(c *gin.Context)
	ListModerationQueue(c *gin.Context)
	ModerateOffer(c *gin.Context)
	SetOfferVisibility(c *gin.Context)
	AdminUpdateOffer(c *gin.Context)
}

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	Apply(c *gin.Context)
	ListMyApplications(c *gin.Context)
	ProposeCandidate(c *gin.Context)
	GetMyApplication(c *gin.Context)
	WithdrawApplication(c *gin.Context)
	CancelApplication(c *gin.Context)
	ListOfferApplications(c *gin.Context)
	MarkOfferApplicationsSeen(c *gin.Context)
	GetApplication(c *gin.Context)
	TransitionApplication(c *gin.Context)
	StarApplication(c *gin.Context)
}

// InterviewHandlerInterface defines the methods needed by the interview routes.
type InterviewHandlerInterface interface {
	ProposeInterview(c *gin.Context)
	ListInterviews(c *gin.Context)
	ConfirmInterview(c *gin.Context)
	RescheduleInterview(c *gin.Context)
	AcceptAlternative(c *gin.Context)
	CancelInterview(c *gin.Context)
	CloseInterview(c *gin.Context)
}

// ConversationHandlerInterface defines the methods needed by the conversation routes.
type ConversationHandlerInterface interface {
	OpenConversation(c *gin.Context)
	ListConversations(c *gin.Context)
	GetConversation(c *gin.Context)
	SendMessage(c *gin.Context)
	MarkConversationRead(c *gin.Context)
}

// RecruiterHandlerInterface defines the methods needed by the recruiter routes.
type RecruiterHandlerInterface interface {
	GetMyProfile(c *gin.Context)
	UpdateMyProfile(c *gin.Context)
	RespondToRequest(c *gin.Context)
	ListTeam(c *gin.Context)
	UpdateTeamPermissions(c *gin.Context)
	ListRecruiters(c *gin.Context)
	GetRecruiter(c *gin.Context)
	RequestValidation(c *gin.Context)
	CancelRequests(c *gin.Context)
	ReviewResponse(c *gin.Context)
	ValidateRecruiter(c *gin.Context)
	RejectRecruiter(c *gin.Context)
}

// AdminHandlerInterface defines the methods needed by the admin routes.
type AdminHandlerInterface interface {
	ListUsers(c *gin.Context)
	SuspendUser(c *gin.Context)
	BanUser(c *gin.Context)
	ReactivateUser(c *gin.Context)
	ListCompanies(c *gin.Context)
	ActivateCompany(c *gin.Context)
	RejectCompany(c *gin.Context)
	CreateCompany(c *gin.Context)
	ListAdmins(c *gin.Context)
	CreateAdmin(c *gin.Context)
	UpdateAdminPermissions(c *gin.Context)
	DeleteAdmin(c *gin.Context)
	ListLogs(c *gin.Context)
	GetEmailMode(c *gin.Context)
	SetEmailMode(c *gin.Context)
}

// SupportHandlerInterface defines the methods needed by the support routes.
type SupportHandlerInterface interface {
	OpenTicket(c *gin.Context)
	ListMyTickets(c *gin.Context)
	GetTicket(c *gin.Context)
	ReplyTicket(c *gin.Context)
	ListTickets(c *gin.Context)
	SetTicketStatus(c *gin.Context)
}

// NotificationHandlerInterface defines the methods needed by the notification routes.
type NotificationHandlerInterface interface {
	ListNotifications(c *gin.Context)
	MarkNotificationRead(c *gin.Context)
	MarkAllNotificationsRead(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var _ AuthHandlerInterface = (*AuthHandler)(nil)
var _ ProfileHandlerInterface = (*ProfileHandler)(nil)
var _ OfferHandlerInterface = (*OfferHandler)(nil)
var _ ApplicationHandlerInterface = (*ApplicationHandler)(nil)
var _ InterviewHandlerInterface = (*InterviewHandler)(nil)
var _ ConversationHandlerInterface = (*ConversationHandler)(nil)
var _ RecruiterHandlerInterface = (*RecruiterHandler)(nil)
var _ AdminHandlerInterface = (*AdminHandler)(nil)
var _ SupportHandlerInterface = (*SupportHandler)(nil)
var _ NotificationHandlerInterface = (*NotificationHandler)(nil)
