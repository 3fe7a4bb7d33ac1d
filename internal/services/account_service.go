package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"recruit-api/internal/auth"
	"recruit-api/internal/mailer"
	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultVerificationTTL = 15 * time.Minute

type accountService struct {
	*Deps
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(d *Deps) AccountService {
	return &accountService{Deps: d}
}

func verificationKey(userID uuid.UUID) string { return "verify:" + userID.String() }

func (s *accountService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.Store.Users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, mapRepoError(err, "checking email")
	}

	var company *models.Company
	newCompany := false
	if req.Role == models.RoleRecruiter {
		var err error
		company, newCompany, err = s.resolveCompany(ctx, req.Company)
		if err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("AccountService: Error hashing password: %v", err)
		return nil, fmt.Errorf("internal error hashing password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  string(hash),
		Role:          req.Role,
		AccountStatus: models.AccountActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Users.Create(ctx, user); err != nil {
		return nil, mapRepoError(err, "creating user")
	}

	switch req.Role {
	case models.RoleCandidate:
		cand := &models.Candidate{UserID: user.ID, Phone: req.Phone, CreatedAt: now, UpdatedAt: now}
		if err := s.Store.Candidates.Upsert(ctx, cand); err != nil {
			s.discardRegistration(ctx, user, nil)
			return nil, mapRepoError(err, "creating candidate profile")
		}
	case models.RoleRecruiter:
		var created *models.Company
		if newCompany {
			if err := s.Store.Companies.Create(ctx, company); err != nil {
				s.discardRegistration(ctx, user, nil)
				return nil, mapRepoError(err, "creating company")
			}
			created = company
		}
		rec := &models.Recruiter{
			ID:          uuid.New(),
			UserID:      user.ID,
			CompanyID:   company.ID,
			Position:    req.Position,
			Phone:       req.Phone,
			Status:      models.RecruiterPendingValidation,
			Permissions: models.DefaultRecruiterPermissions(),
			Anem:        models.AnemRecord{Status: "not_registered"},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Store.Recruiters.Create(ctx, rec); err != nil {
			s.discardRegistration(ctx, user, created)
			return nil, mapRepoError(err, "creating recruiter profile")
		}
		s.notifyAdmins(models.CapValidateRecruiters, models.NotificationValidation,
			fmt.Sprintf("Nouveau recruteur à valider : %s (%s)", user.Name, company.Name))
	}

	mode := s.sendVerification(ctx, user)
	resp, err := s.session(user)
	if err != nil {
		return nil, err
	}
	resp.EmailMode = string(mode)
	log.Printf("AccountService: Registered %s account %s", user.Role, user.ID)
	return resp, nil
}

// discardRegistration deletes the rows of a registration that failed after
// the user was stored. company is only set when this registration created it.
func (s *accountService) discardRegistration(ctx context.Context, user *models.User, company *models.Company) {
	if company != nil {
		if err := s.Store.Companies.Delete(ctx, company.ID); err != nil {
			log.Printf("AccountService: Error discarding company %s: %v", company.ID, err)
		}
	}
	if err := s.Store.Users.Delete(ctx, user.ID); err != nil {
		log.Printf("AccountService: Error discarding user %s: %v", user.ID, err)
		return
	}
	log.Printf("AccountService: Discarded incomplete %s registration %s", user.Role, user.ID)
}

// resolveCompany returns the company named in a recruiter registration and
// whether it still has to be created.
func (s *accountService) resolveCompany(ctx context.Context, in *dto.CompanyInput) (*models.Company, bool, error) {
	if in == nil {
		return nil, false, fmt.Errorf("%w: company is required for recruiters", ErrValidation)
	}
	if in.ID != nil {
		company, err := s.Store.Companies.GetByID(ctx, *in.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, false, fmt.Errorf("%w: unknown company %s", ErrValidation, *in.ID)
			}
			return nil, false, mapRepoError(err, "fetching company")
		}
		return company, false, nil
	}
	name := strings.TrimSpace(in.Name)
	if _, err := s.Store.Companies.GetByName(ctx, name); err == nil {
		return nil, false, fmt.Errorf("%w: company %q already exists", ErrConflict, name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, mapRepoError(err, "checking company name")
	}
	now := s.now()
	return &models.Company{
		ID:          uuid.New(),
		Name:        name,
		Description: in.Description,
		Website:     in.Website,
		Sector:      in.Sector,
		City:        in.City,
		Status:      models.CompanyPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, true, nil
}

func (s *accountService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	user, err := s.Store.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("Login attempt failed for email %s: user not found", email)
			return nil, ErrInvalidCredentials
		}
		log.Printf("Error fetching user by email %s during login: %v", email, err)
		return nil, fmt.Errorf("internal error during login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("Login attempt failed for email %s: invalid password", email)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if !user.CanLogin(now) {
		log.Printf("Login refused for user %s: account %s", user.ID, user.AccountStatus)
		return nil, ErrAccountDisabled
	}
	if user.AccountStatus == models.AccountSuspended {
		// suspension has expired
		user.AccountStatus = models.AccountActive
		user.SuspendedUntil = nil
		user.SuspensionReason = ""
		if err := s.Tokens.UnblockUser(ctx, user.ID); err != nil {
			log.Printf("Login: Error lifting token block of %s: %v", user.ID, err)
		}
	}
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := s.Store.Users.Update(ctx, user); err != nil {
		return nil, mapRepoError(err, "recording login")
	}
	return s.session(user)
}

func (s *accountService) session(user *models.User) (*dto.AuthResponse, error) {
	token, expires, err := s.Tokens.Issue(user.Identity())
	if err != nil {
		log.Printf("Error generating JWT token for user %s: %v", user.Email, err)
		return nil, fmt.Errorf("failed to generate login token: %w", err)
	}
	return &dto.AuthResponse{Token: token, ExpiresAt: expires, User: user}, nil
}

// sendVerification stores a fresh code and emails it. In development mode
// the code is the fixed dev code and the mail is only logged.
func (s *accountService) sendVerification(ctx context.Context, user *models.User) mailer.Mode {
	mode := s.Mailer.Mode(ctx)
	code := s.Mailer.DevCode()
	if mode == mailer.ModeLive || code == "" {
		var err error
		if code, err = randomCode(); err != nil {
			log.Printf("AccountService: Error generating verification code: %v", err)
			return mode
		}
	}
	ttl := s.VerificationTTL
	if ttl <= 0 {
		ttl = defaultVerificationTTL
	}
	if err := s.Cache.Set(ctx, verificationKey(user.ID), code, ttl); err != nil {
		log.Printf("AccountService: Error storing verification code for %s: %v", user.ID, err)
		return mode
	}
	s.email(user.ID, mailer.TemplateVerification, map[string]any{
		"Name":    user.Name,
		"Code":    code,
		"Minutes": int(ttl.Minutes()),
	})
	return mode
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *accountService) SendVerification(ctx context.Context, actor models.Identity) (*dto.VerificationSentResponse, error) {
	user, err := s.Store.Users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, mapRepoError(err, "fetching user")
	}
	if user.EmailVerified {
		return nil, fmt.Errorf("%w: email already verified", ErrConflict)
	}
	mode := s.sendVerification(ctx, user)
	return &dto.VerificationSentResponse{Sent: true, Mode: string(mode)}, nil
}

func (s *accountService) VerifyEmail(ctx context.Context, actor models.Identity, req *dto.VerifyEmailRequest) (*dto.AuthResponse, error) {
	user, err := s.Store.Users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, mapRepoError(err, "fetching user")
	}
	if user.EmailVerified {
		return s.session(user)
	}
	stored, err := s.Cache.Get(ctx, verificationKey(user.ID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("internal error reading verification code: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(req.Code)) != 1 {
		log.Printf("VerifyEmail: wrong code for user %s", user.ID)
		return nil, ErrInvalidCode
	}

	user.EmailVerified = true
	user.UpdatedAt = s.now()
	if err := s.Store.Users.Update(ctx, user); err != nil {
		return nil, mapRepoError(err, "verifying email")
	}
	if err := s.Cache.Delete(ctx, verificationKey(user.ID)); err != nil {
		log.Printf("VerifyEmail: Error clearing code for user %s: %v", user.ID, err)
	}
	return s.session(user)
}

func (s *accountService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.Tokens.Revoke(ctx, claims); err != nil {
		log.Printf("Logout: Error revoking token %s: %v", claims.ID, err)
		return fmt.Errorf("internal error during logout: %w", err)
	}
	return nil
}

func (s *accountService) Me(ctx context.Context, actor models.Identity) (*dto.MeResponse, error) {
	user, err := s.Store.Users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, mapRepoError(err, "fetching user")
	}
	resp := &dto.MeResponse{User: user}
	switch user.Role {
	case models.RoleCandidate:
		if cand, err := s.Store.Candidates.GetByUserID(ctx, user.ID); err == nil {
			resp.Candidate = cand
		}
	case models.RoleRecruiter:
		rec, err := s.Store.Recruiters.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, mapRepoError(err, "fetching recruiter profile")
		}
		resp.Recruiter = rec
		if company, err := s.Store.Companies.GetByID(ctx, rec.CompanyID); err == nil {
			resp.Company = company
		}
	case models.RoleAdmin:
		if admin, err := s.Store.Admins.GetByUserID(ctx, user.ID); err == nil {
			resp.Admin = admin
		}
	}
	return resp, nil
}
