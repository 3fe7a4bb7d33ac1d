package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EnsureSuperAdmin creates a verified super_admin account for email unless
// a user with that email already exists.
func EnsureSuperAdmin(ctx context.Context, d *Deps, name, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}
	if _, err := d.Store.Users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("checking bootstrap admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing bootstrap admin password: %w", err)
	}
	now := d.now()
	user := &models.User{
		ID:            uuid.New(),
		Name:          name,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          models.RoleAdmin,
		EmailVerified: true,
		AccountStatus: models.AccountActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := d.Store.Users.Create(ctx, user); err != nil {
		return fmt.Errorf("creating bootstrap admin: %w", err)
	}
	admin := &models.Admin{
		ID:          uuid.New(),
		UserID:      user.ID,
		Label:       models.LabelSuperAdmin,
		Permissions: models.AdminPermissions{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := d.Store.Admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating bootstrap admin record: %w", err)
	}
	log.Printf("Bootstrap super admin %s created", email)
	return nil
}
