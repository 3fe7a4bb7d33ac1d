package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"
	"recruit-api/internal/transport/dto"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// grantable builds the permission set an admin may hand out. Only a
// super_admin creates super_admins and nobody grants a capability they lack.
func grantable(holder *models.Admin, label models.AdminLabel, caps []models.Capability) (models.AdminPermissions, error) {
	if label == models.LabelSuperAdmin && holder.Label != models.LabelSuperAdmin {
		return nil, fmt.Errorf("%w: only a super admin can grant the super_admin label", ErrForbidden)
	}
	perms := models.AdminPermissions{}
	for _, c := range caps {
		if !c.Known() {
			return nil, fmt.Errorf("%w: unknown capability %q", ErrValidation, c)
		}
		if !holder.Has(c) {
			return nil, fmt.Errorf("%w: cannot grant %s", ErrForbidden, c)
		}
		perms[c] = true
	}
	return perms, nil
}

// targetAdmin loads the admin record of userID for a change by actor.
func (s *adminService) targetAdmin(ctx context.Context, actor models.Identity, userID uuid.UUID) (*models.Admin, *models.Admin, error) {
	holder, err := s.requireCapability(ctx, actor, models.CapManageAdmins)
	if err != nil {
		return nil, nil, err
	}
	if actor.UserID == userID {
		return nil, nil, fmt.Errorf("%w: cannot change your own admin account", ErrForbidden)
	}
	target, err := s.Store.Admins.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, mapRepoError(err, fmt.Sprintf("fetching admin %s", userID))
	}
	if target.Label == models.LabelSuperAdmin && holder.Label != models.LabelSuperAdmin {
		return nil, nil, fmt.Errorf("%w: only a super admin can change a super admin", ErrForbidden)
	}
	return holder, target, nil
}

func (s *adminService) ListAdmins(ctx context.Context, actor models.Identity) ([]dto.AdminAccount, error) {
	if _, err := s.requireCapability(ctx, actor, models.CapManageAdmins); err != nil {
		return nil, err
	}
	admins, err := s.Store.Admins.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, "listing admins")
	}
	accounts := make([]dto.AdminAccount, 0, len(admins))
	for i := range admins {
		user, err := s.Store.Users.GetByID(ctx, admins[i].UserID)
		if err != nil {
			log.Printf("ListAdmins: admin %s has no user: %v", admins[i].ID, err)
			continue
		}
		accounts = append(accounts, dto.AdminAccount{User: user, Admin: &admins[i]})
	}
	return accounts, nil
}

func (s *adminService) CreateAdmin(ctx context.Context, actor models.Identity, req *dto.CreateAdminRequest) (*dto.AdminAccount, error) {
	holder, err := s.requireCapability(ctx, actor, models.CapManageAdmins)
	if err != nil {
		return nil, err
	}
	perms, err := grantable(holder, req.Label, req.Permissions)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	if _, err := s.Store.Users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, mapRepoError(err, "checking email")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("CreateAdmin: Error hashing password: %v", err)
		return nil, fmt.Errorf("internal error hashing password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  string(hash),
		Role:          models.RoleAdmin,
		EmailVerified: true,
		AccountStatus: models.AccountActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Users.Create(ctx, user); err != nil {
		return nil, mapRepoError(err, "creating admin user")
	}
	admin := &models.Admin{
		ID:          uuid.New(),
		UserID:      user.ID,
		Label:       req.Label,
		Permissions: perms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Admins.Create(ctx, admin); err != nil {
		if delErr := s.Store.Users.Delete(ctx, user.ID); delErr != nil {
			log.Printf("CreateAdmin: Error discarding user %s: %v", user.ID, delErr)
		}
		return nil, mapRepoError(err, "creating admin record")
	}
	s.audit(ctx, actor.UserID, models.ActionAdminCreated, models.TargetAdmin, user.ID, models.LogDetails{
		"email":       user.Email,
		"label":       string(admin.Label),
		"permissions": capabilityNames(perms),
	})
	return &dto.AdminAccount{User: user, Admin: admin}, nil
}

func (s *adminService) UpdateAdminPermissions(ctx context.Context, actor models.Identity, userID uuid.UUID, req *dto.AdminPermissionsRequest) (*dto.AdminAccount, error) {
	holder, target, err := s.targetAdmin(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	label := target.Label
	if req.Label != "" {
		label = req.Label
	}
	perms, err := grantable(holder, label, req.Permissions)
	if err != nil {
		return nil, err
	}
	details := models.LogDetails{
		"from":      capabilityNames(target.Permissions),
		"to":        capabilityNames(perms),
		"fromLabel": string(target.Label),
		"toLabel":   string(label),
	}
	target.Label = label
	target.Permissions = perms
	target.UpdatedAt = s.now()
	if err := s.Store.Admins.Update(ctx, target); err != nil {
		return nil, mapRepoError(err, "updating admin")
	}
	user, err := s.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, "fetching admin user")
	}
	s.audit(ctx, actor.UserID, models.ActionAdminUpdated, models.TargetAdmin, userID, details)
	return &dto.AdminAccount{User: user, Admin: target}, nil
}

// DeleteAdmin removes the admin record and its user. This is the only hard
// delete of an account.
func (s *adminService) DeleteAdmin(ctx context.Context, actor models.Identity, userID uuid.UUID) error {
	_, target, err := s.targetAdmin(ctx, actor, userID)
	if err != nil {
		return err
	}
	user, err := s.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return mapRepoError(err, "fetching admin user")
	}
	if err := s.Store.Users.Delete(ctx, userID); err != nil {
		return mapRepoError(err, "deleting admin user")
	}
	// the postgres schema cascades the admin row
	if err := s.Store.Admins.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return mapRepoError(err, "deleting admin record")
	}
	s.blockSessions(ctx, userID, s.Tokens.TTL())
	s.audit(ctx, actor.UserID, models.ActionAdminDeleted, models.TargetAdmin, userID, models.LogDetails{
		"email": user.Email,
		"label": string(target.Label),
	})
	return nil
}

func capabilityNames(perms models.AdminPermissions) []string {
	names := []string{}
	for _, c := range models.AllCapabilities {
		if perms[c] {
			names = append(names, string(c))
		}
	}
	return names
}
