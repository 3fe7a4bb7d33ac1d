package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"recruit-api/internal/mailer"
	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
)

type adminService struct {
	*Deps
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(d *Deps) AdminService {
	return &adminService{Deps: d}
}

func (s *adminService) ListUsers(ctx context.Context, actor models.Identity, req *dto.ListUsersRequest) ([]models.User, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapManageUsers); err != nil {
		return nil, err
	}
	users, err := s.Store.Users.List(ctx, storage.UserFilter{
		Role:   req.Role,
		Status: req.Status,
		Query:  strings.TrimSpace(req.Query),
		Page:   storage.Page{Limit: req.Limit, Offset: req.Offset},
	})
	if err != nil {
		return nil, mapRepoError(err, "listing users")
	}
	return users, nil
}

// targetUser loads a user an admin wants to act on. Admins cannot act on
// their own account.
func (s *adminService) targetUser(ctx context.Context, actor models.Identity, userID uuid.UUID) (*models.User, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapManageUsers); err != nil {
		return nil, err
	}
	if actor.UserID == userID {
		return nil, fmt.Errorf("%w: cannot change your own account status", ErrForbidden)
	}
	user, err := s.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching user %s", userID))
	}
	return user, nil
}

func (s *adminService) SuspendUser(ctx context.Context, actor models.Identity, userID uuid.UUID, req *dto.SuspendUserRequest) (*models.User, error) {
	user, err := s.targetUser(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if req.Until != nil && !req.Until.After(now) {
		return nil, fmt.Errorf("%w: suspension end must be in the future", ErrValidation)
	}
	if user.AccountStatus == models.AccountBanned {
		return nil, fmt.Errorf("%w: user is banned", ErrConflict)
	}
	user.AccountStatus = models.AccountSuspended
	user.SuspendedUntil = nil
	if req.Until != nil {
		until := req.Until.UTC()
		user.SuspendedUntil = &until
	}
	user.SuspensionReason = strings.TrimSpace(req.Reason)
	user.UpdatedAt = now
	if err := s.Store.Users.Update(ctx, user); err != nil {
		return nil, mapRepoError(err, "suspending user")
	}
	block := s.Tokens.TTL()
	if user.SuspendedUntil != nil {
		block = min(block, user.SuspendedUntil.Sub(now))
	}
	s.blockSessions(ctx, user.ID, block)
	details := models.LogDetails{"reason": user.SuspensionReason}
	if user.SuspendedUntil != nil {
		details["until"] = user.SuspendedUntil.Format("2006-01-02T15:04:05Z07:00")
	}
	s.audit(ctx, actor.UserID, models.ActionUserSuspended, models.TargetUser, user.ID, details)
	return user, nil
}

func (s *adminService) BanUser(ctx context.Context, actor models.Identity, userID uuid.UUID, reason string) (*models.User, error) {
	user, err := s.targetUser(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	user.AccountStatus = models.AccountBanned
	user.SuspendedUntil = nil
	user.SuspensionReason = strings.TrimSpace(reason)
	user.UpdatedAt = s.now()
	if err := s.Store.Users.Update(ctx, user); err != nil {
		return nil, mapRepoError(err, "banning user")
	}
	s.blockSessions(ctx, user.ID, s.Tokens.TTL())
	s.audit(ctx, actor.UserID, models.ActionUserBanned, models.TargetUser, user.ID, models.LogDetails{"reason": user.SuspensionReason})
	return user, nil
}

func (s *adminService) ReactivateUser(ctx context.Context, actor models.Identity, userID uuid.UUID) (*models.User, error) {
	user, err := s.targetUser(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	if user.AccountStatus == models.AccountActive {
		return user, nil
	}
	previous := user.AccountStatus
	user.AccountStatus = models.AccountActive
	user.SuspendedUntil = nil
	user.SuspensionReason = ""
	user.UpdatedAt = s.now()
	if err := s.Store.Users.Update(ctx, user); err != nil {
		return nil, mapRepoError(err, "reactivating user")
	}
	if err := s.Tokens.UnblockUser(ctx, user.ID); err != nil {
		log.Printf("ReactivateUser: Error lifting token block of %s: %v", user.ID, err)
	}
	s.audit(ctx, actor.UserID, models.ActionUserReactivated, models.TargetUser, user.ID, models.LogDetails{"from": string(previous)})
	return user, nil
}

// blockSessions rejects the live tokens of userID for d.
func (s *adminService) blockSessions(ctx context.Context, userID uuid.UUID, d time.Duration) {
	if err := s.Tokens.BlockUser(ctx, userID, d); err != nil {
		log.Printf("blockSessions: Error blocking tokens of %s: %v", userID, err)
	}
}

func (s *adminService) ListCompanies(ctx context.Context, actor models.Identity, status *models.CompanyStatus) ([]models.Company, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapManageCompanies); err != nil {
		return nil, err
	}
	companies, err := s.Store.Companies.List(ctx, status)
	if err != nil {
		return nil, mapRepoError(err, "listing companies")
	}
	return companies, nil
}

func (s *adminService) company(ctx context.Context, actor models.Identity, companyID uuid.UUID) (*models.Company, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapManageCompanies); err != nil {
		return nil, err
	}
	company, err := s.Store.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching company %s", companyID))
	}
	return company, nil
}

func (s *adminService) notifyCompany(ctx context.Context, companyID uuid.UUID, typ models.NotificationType, msg string) {
	team, err := s.Store.Recruiters.ListByCompany(ctx, companyID)
	if err != nil {
		log.Printf("notifyCompany: Error listing recruiters of %s: %v", companyID, err)
		return
	}
	for _, r := range team {
		s.notify(r.UserID, typ, msg)
	}
}

// ActivateCompany opens the company for publishing and promotes its first
// validated recruiter when it has no administrator yet.
func (s *adminService) ActivateCompany(ctx context.Context, actor models.Identity, companyID uuid.UUID) (*models.Company, error) {
	company, err := s.company(ctx, actor, companyID)
	if err != nil {
		return nil, err
	}
	if company.Status != models.CompanyPending {
		return nil, fmt.Errorf("%w: company is %s", ErrConflict, company.Status)
	}
	previous := company.Status
	now := s.now()
	company.Status = models.CompanyActive
	company.UpdatedAt = now
	if err := s.Store.Companies.Update(ctx, company); err != nil {
		return nil, mapRepoError(err, "activating company")
	}
	details := models.LogDetails{"from": string(previous), "name": company.Name}
	if promoted, err := s.promoteFirstValidated(ctx, company.ID, now); err != nil {
		log.Printf("ActivateCompany: company admin promotion for %s failed: %v", company.ID, err)
	} else if promoted != nil {
		details["promotedRecruiter"] = promoted.ID.String()
	}
	s.audit(ctx, actor.UserID, models.ActionCompanyActivated, models.TargetCompany, company.ID, details)
	s.notifyCompany(ctx, company.ID, models.NotificationValidation,
		fmt.Sprintf("L'entreprise %s a été activée.", company.Name))
	return company, nil
}

func (s *adminService) RejectCompany(ctx context.Context, actor models.Identity, companyID uuid.UUID, reason string) (*models.Company, error) {
	company, err := s.company(ctx, actor, companyID)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a reason is required", ErrValidation)
	}
	if company.Status != models.CompanyPending {
		return nil, fmt.Errorf("%w: company is %s", ErrConflict, company.Status)
	}
	previous := company.Status
	company.Status = models.CompanyRejected
	company.UpdatedAt = s.now()
	if err := s.Store.Companies.Update(ctx, company); err != nil {
		return nil, mapRepoError(err, "rejecting company")
	}
	s.audit(ctx, actor.UserID, models.ActionCompanyRejected, models.TargetCompany, company.ID, models.LogDetails{
		"from":   string(previous),
		"reason": reason,
	})
	s.notifyCompany(ctx, company.ID, models.NotificationAlert,
		fmt.Sprintf("L'entreprise %s a été refusée. Motif : %s", company.Name, reason))
	return company, nil
}

// CreateCompany registers a company directly as active.
func (s *adminService) CreateCompany(ctx context.Context, actor models.Identity, req *dto.CreateCompanyRequest) (*models.Company, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapManageCompanies); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", ErrValidation)
	}
	if _, err := s.Store.Companies.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: company %q already exists", ErrConflict, name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, mapRepoError(err, "checking company name")
	}
	now := s.now()
	company := &models.Company{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
		Website:     req.Website,
		Sector:      req.Sector,
		City:        req.City,
		Status:      models.CompanyActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Companies.Create(ctx, company); err != nil {
		return nil, mapRepoError(err, "creating company")
	}
	s.audit(ctx, actor.UserID, models.ActionCompanyCreated, models.TargetCompany, company.ID, models.LogDetails{"name": company.Name})
	return company, nil
}

func (s *adminService) ListLogs(ctx context.Context, actor models.Identity, req *dto.ListLogsRequest) ([]models.AdminLog, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapViewLogs); err != nil {
		return nil, err
	}
	logs, err := s.Store.AdminLogs.List(ctx, storage.LogFilter{
		ActorID:    uuidPtr(req.ActorID),
		Action:     req.Action,
		TargetType: req.TargetType,
		TargetID:   uuidPtr(req.TargetID),
		Page:       storage.Page{Limit: req.Limit, Offset: req.Offset},
	})
	if err != nil {
		return nil, mapRepoError(err, "listing admin logs")
	}
	return logs, nil
}

func (s *adminService) GetEmailMode(ctx context.Context, actor models.Identity) (string, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapManageSettings); err != nil {
		return "", err
	}
	return string(s.Mailer.Mode(ctx)), nil
}

func (s *adminService) SetEmailMode(ctx context.Context, actor models.Identity, mode string) (string, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapManageSettings); err != nil {
		return "", err
	}
	next := mailer.Mode(mode)
	if !next.Valid() {
		return "", fmt.Errorf("%w: unknown email mode %q", ErrValidation, mode)
	}
	previous := s.Mailer.Mode(ctx)
	if err := s.Mailer.SetMode(ctx, next); err != nil {
		log.Printf("SetEmailMode: Error persisting mode: %v", err)
		return "", fmt.Errorf("internal error saving email mode: %w", err)
	}
	s.audit(ctx, actor.UserID, models.ActionSettingsUpdated, models.TargetSetting, uuid.Nil, models.LogDetails{
		"setting": "email_mode",
		"from":    string(previous),
		"to":      string(next),
	})
	return string(next), nil
}
