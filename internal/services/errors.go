package services

import (
	"errors"

	"recruit-api/internal/workflow"
)

// Define common service errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict") // e.g., duplicate email, state conflict
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is suspended or banned")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
	ErrInvalidTransition  = workflow.ErrInvalidTransition
)

// Precondition codes returned when an action is not yet allowed.
const (
	CodeEmailNotVerified       = "EMAIL_NOT_VERIFIED"
	CodeRecruiterNotValidated  = "RECRUITER_NOT_VALIDATED"
	CodeCompanyNotActive       = "COMPANY_NOT_ACTIVE"
	CodePostJobsPermissionReqd = "POST_JOBS_PERMISSION_REQUIRED"
	CodeCandidateSearchOff     = "CANDIDATE_SEARCH_DISABLED"
)

// PreconditionError is a Forbidden error carrying a machine-readable code.
type PreconditionError struct {
	Code    string
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

func (e *PreconditionError) Unwrap() error { return ErrForbidden }
