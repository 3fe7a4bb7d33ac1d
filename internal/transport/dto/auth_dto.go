package dto

import (
	"time"

	"recruit-api/internal/models"

	"github.com/google/uuid"
)

// --- Auth Request DTOs ---

// CompanyInput names the employer of a registering recruiter: either an
// existing company id or the details of a new company.
type CompanyInput struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Name        string     `json:"name" validate:"required_without=ID,omitempty,min=2,max=120"`
	Description string     `json:"description" validate:"max=2000"`
	Website     string     `json:"website" validate:"omitempty,url"`
	Sector      string     `json:"sector" validate:"max=120"`
	City        string     `json:"city" validate:"max=120"`
}

// RegisterRequest creates a candidate or recruiter account.
type RegisterRequest struct {
	Name     string        `json:"name" validate:"required,min=2,max=120"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=8,max=72"`
	Role     models.Role   `json:"role" validate:"required,oneof=candidate recruiter"`
	Company  *CompanyInput `json:"company,omitempty" validate:"required_if=Role recruiter,omitempty"`
	Position string        `json:"position" validate:"max=120"`
	Phone    string        `json:"phone" validate:"max=40"`
}

// LoginRequest defines the structure for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyEmailRequest carries the code received by email.
type VerifyEmailRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// --- Auth Response DTOs ---

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
	EmailMode string       `json:"emailMode,omitempty"`
}

// MeResponse describes the authenticated account and its role profile.
type MeResponse struct {
	User      *models.User      `json:"user"`
	Candidate *models.Candidate `json:"candidate,omitempty"`
	Recruiter *models.Recruiter `json:"recruiter,omitempty"`
	Company   *models.Company   `json:"company,omitempty"`
	Admin     *models.Admin     `json:"admin,omitempty"`
}

// VerificationSentResponse tells the client how the code was delivered.
type VerificationSentResponse struct {
	Sent bool   `json:"sent"`
	Mode string `json:"mode"`
}
