package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// scanEnumString extracts the textual value of an enum column.
func scanEnumString(value interface{}, kind string) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("failed to scan %s: value is not string or []byte", kind)
	}
}

// --- User Role Enum ---
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// --- Account Status Enum ---
type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountBanned    AccountStatus = "banned"
)

// Scan implements the sql.Scanner interface for AccountStatus
func (s *AccountStatus) Scan(value interface{}) error {
	strVal, err := scanEnumString(value, "AccountStatus")
	if err != nil {
		return err
	}
	v := AccountStatus(strVal)
	switch v {
	case AccountActive, AccountSuspended, AccountBanned:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid AccountStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for AccountStatus
func (s AccountStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// --- Company Status Enum ---
type CompanyStatus string

const (
	CompanyPending  CompanyStatus = "pending"
	CompanyActive   CompanyStatus = "active"
	CompanyRejected CompanyStatus = "rejected"
)

// Identity is the claim set carried by a session token.
type Identity struct {
	UserID        uuid.UUID `json:"id"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
}

// User represents an account on the platform
type User struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	Name             string        `json:"name" db:"name"`
	Email            string        `json:"email" db:"email"`
	PasswordHash     string        `json:"-" db:"password_hash"`
	Role             Role          `json:"role" db:"role"`
	EmailVerified    bool          `json:"emailVerified" db:"email_verified"`
	AccountStatus    AccountStatus `json:"accountStatus" db:"account_status"`
	SuspendedUntil   *time.Time    `json:"suspendedUntil,omitempty" db:"suspended_until"`
	SuspensionReason string        `json:"suspensionReason,omitempty" db:"suspension_reason"`
	LastLoginAt      *time.Time    `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`
}

// CanLogin reports whether the account is allowed to open a session at t.
// An expired suspension counts as active.
func (u *User) CanLogin(t time.Time) bool {
	switch u.AccountStatus {
	case AccountBanned:
		return false
	case AccountSuspended:
		return u.SuspendedUntil != nil && !t.Before(*u.SuspendedUntil)
	default:
		return true
	}
}

// Identity returns the claim set for this user.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Role: u.Role, EmailVerified: u.EmailVerified}
}

// Candidate is the profile attached to a user with role candidate.
type Candidate struct {
	UserID    uuid.UUID   `json:"userId" db:"user_id"`
	Phone     string      `json:"phone" db:"phone"`
	City      string      `json:"city" db:"city"`
	Headline  string      `json:"headline" db:"headline"`
	Skills    StringSlice `json:"skills" db:"skills"`
	CVURL     string      `json:"cvUrl,omitempty" db:"cv_url"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// Company is the employer a recruiter belongs to.
type Company struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Website     string        `json:"website" db:"website"`
	Sector      string        `json:"sector" db:"sector"`
	City        string        `json:"city" db:"city"`
	Status      CompanyStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}

// Notification types
type NotificationType string

const (
	NotificationInfo       NotificationType = "info"
	NotificationAlert      NotificationType = "alerte"
	NotificationValidation NotificationType = "validation"
)

// Notification is an entry in a user's inbox.
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"userId" db:"user_id"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	Read      bool             `json:"lu" db:"lu"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
