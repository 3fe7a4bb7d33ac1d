package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
)

// requireCapability loads the acting admin and checks it holds c. Every
// admin operation goes through here.
func (d *Deps) requireCapability(ctx context.Context, actor models.Identity, c models.Capability) (*models.Admin, error) {
	if actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	admin, err := d.Store.Admins.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Printf("requireCapability: user %s has role admin but no admin record", actor.UserID)
			return nil, fmt.Errorf("%w: no admin record", ErrForbidden)
		}
		return nil, mapRepoError(err, "fetching admin record")
	}
	if !admin.Has(c) {
		return nil, fmt.Errorf("%w: capability %s required", ErrForbidden, c)
	}
	return admin, nil
}
