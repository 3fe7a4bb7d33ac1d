package dto

import "recruit-api/internal/models"

// --- Offer Request DTOs ---

// CreateOfferRequest defines the structure for creating an offer. Draft
// keeps it out of moderation until it is submitted.
type CreateOfferRequest struct {
	Title               string            `json:"title" validate:"required,min=3,max=200"`
	Description         string            `json:"description" validate:"required,min=10"`
	Requirements        string            `json:"requirements"`
	Location            string            `json:"location" validate:"required,max=120"`
	ContractType        string            `json:"contractType" validate:"required,max=40"`
	SalaryMin           *int              `json:"salaryMin,omitempty" validate:"omitempty,gte=0"`
	SalaryMax           *int              `json:"salaryMax,omitempty" validate:"omitempty,gte=0"`
	CandidateSearchMode models.SearchMode `json:"candidateSearchMode,omitempty" validate:"omitempty,oneof=disabled manual automatic"`
	Draft               bool              `json:"draft"`
}

// UpdateOfferRequest changes offer content. Nil fields are left untouched.
type UpdateOfferRequest struct {
	Title               *string            `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description         *string            `json:"description,omitempty" validate:"omitempty,min=10"`
	Requirements        *string            `json:"requirements,omitempty"`
	Location            *string            `json:"location,omitempty" validate:"omitempty,max=120"`
	ContractType        *string            `json:"contractType,omitempty" validate:"omitempty,max=40"`
	SalaryMin           *int               `json:"salaryMin,omitempty" validate:"omitempty,gte=0"`
	SalaryMax           *int               `json:"salaryMax,omitempty" validate:"omitempty,gte=0"`
	CandidateSearchMode *models.SearchMode `json:"candidateSearchMode,omitempty" validate:"omitempty,oneof=disabled manual automatic"`
}

// ListOffersRequest defines the public listing filters.
type ListOffersRequest struct {
	Query        string `form:"q" validate:"max=100"`
	Location     string `form:"location" validate:"max=120"`
	ContractType string `form:"contractType" validate:"max=40"`
	Limit        int    `form:"limit,default=20" validate:"gte=0,lte=100"`
	Offset       int    `form:"offset,default=0" validate:"gte=0"`
}

// AdminListOffersRequest filters the moderation queue.
type AdminListOffersRequest struct {
	Status *models.OfferStatus `form:"status" validate:"omitempty,oneof=draft pending approved rejected changes_requested"`
	Limit  int                 `form:"limit,default=50" validate:"gte=0,lte=200"`
	Offset int                 `form:"offset,default=0" validate:"gte=0"`
}

// ReasonRequest carries the mandatory justification of a negative decision.
type ReasonRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=2000"`
}

// VisibilityRequest flips the actif flag.
type VisibilityRequest struct {
	Actif *bool `json:"actif" validate:"required"`
}

// ModerateOfferRequest records a moderation decision. Reason is mandatory
// for anything but approval.
type ModerateOfferRequest struct {
	Decision models.OfferStatus `json:"decision" validate:"required,oneof=approved rejected changes_requested"`
	Reason   string             `json:"reason" validate:"max=2000"`
}
