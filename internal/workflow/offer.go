package workflow

import (
	"strings"
	"time"

	"recruit-api/internal/models"

	"github.com/google/uuid"
)

// SubmitOffer sends a draft, or an offer sent back for changes, to moderation.
func SubmitOffer(o *models.Offer, now time.Time) error {
	switch o.ValidationStatus {
	case models.OfferDraft, models.OfferChangesRequested:
		o.ValidationStatus = models.OfferPending
		o.UpdatedAt = now
		return nil
	default:
		return invalid(MachineOffer, o.ValidationStatus, models.OfferPending)
	}
}

// RecruiterCanEdit reports whether the owner may still change the content.
func RecruiterCanEdit(s models.OfferStatus) bool {
	switch s {
	case models.OfferDraft, models.OfferPending, models.OfferChangesRequested:
		return true
	default:
		return false
	}
}

// ModerateOffer records an admin decision on a pending offer.
func ModerateOffer(o *models.Offer, decision models.OfferStatus, adminID uuid.UUID, reason string, now time.Time) error {
	if o.ValidationStatus != models.OfferPending {
		return invalid(MachineOffer, o.ValidationStatus, decision)
	}
	reason = strings.TrimSpace(reason)
	switch decision {
	case models.OfferApproved:
		o.Actif = true
		published := now
		o.DatePublication = &published
	case models.OfferRejected, models.OfferChangesRequested:
		if reason == "" {
			return ErrReasonRequired
		}
	default:
		return invalid(MachineOffer, o.ValidationStatus, decision)
	}
	o.ValidationStatus = decision
	o.ValidationHistory = append(o.ValidationHistory, models.ValidationEntry{
		Status:  decision,
		Message: reason,
		AdminID: adminID,
		Date:    now,
	})
	o.UpdatedAt = now
	return nil
}
