// Package auth issues and verifies session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruit-api/config"
	"recruit-api/internal/models"
	"recruit-api/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenRevoked = errors.New("token has been revoked")
	// ErrAccountBlocked rejects tokens of a user banned, suspended or
	// removed after the token was issued.
	ErrAccountBlocked = errors.New("account is blocked")
)

// Claims carry the identity consumed by every handler.
type Claims struct {
	Role          models.Role `json:"role"`
	EmailVerified bool        `json:"email_verified"`
	jwt.RegisteredClaims
}

// Identity converts the claims back to a models.Identity.
func (c *Claims) Identity() (models.Identity, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return models.Identity{UserID: id, Role: c.Role, EmailVerified: c.EmailVerified}, nil
}

// Tokens signs HS256 tokens and tracks revoked ids in the cache store.
type Tokens struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	revoked storage.CacheStore
	now     func() time.Time
}

func NewTokens(cfg config.JWTConfig, revoked storage.CacheStore) *Tokens {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{secret: []byte(cfg.Secret), issuer: cfg.Issuer, ttl: ttl, revoked: revoked, now: time.Now}
}

// Issue signs a token for the identity.
func (t *Tokens) Issue(id models.Identity) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := Claims{
		Role:          id.Role,
		EmailVerified: id.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   id.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

// TTL is the lifetime of issued tokens.
func (t *Tokens) TTL() time.Duration { return t.ttl }

// Parse validates signature, issuer, expiry and revocation.
func (t *Tokens) Parse(ctx context.Context, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
	)
	_, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID != "" {
		if _, err := t.revoked.Get(ctx, revokedKey(claims.ID)); err == nil {
			return nil, ErrTokenRevoked
		} else if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to check revocation: %w", err)
		}
	}
	if _, err := t.revoked.Get(ctx, blockedKey(claims.Subject)); err == nil {
		return nil, ErrAccountBlocked
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account block: %w", err)
	}
	return claims, nil
}

// BlockUser rejects every token of the user for ttl. A ttl above the token
// lifetime is capped since no live token can outlast it.
func (t *Tokens) BlockUser(ctx context.Context, userID uuid.UUID, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	ttl = min(ttl, t.ttl)
	return t.revoked.Set(ctx, blockedKey(userID.String()), "1", ttl)
}

// UnblockUser lifts a BlockUser early.
func (t *Tokens) UnblockUser(ctx context.Context, userID uuid.UUID) error {
	return t.revoked.Delete(ctx, blockedKey(userID.String()))
}

// Revoke blacklists the token id until it would have expired anyway.
func (t *Tokens) Revoke(ctx context.Context, claims *Claims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(t.now())
	if ttl <= 0 {
		return nil
	}
	return t.revoked.Set(ctx, revokedKey(claims.ID), "1", ttl)
}

func revokedKey(jti string) string { return "revoked:" + jti }

func blockedKey(sub string) string { return "blocked:" + sub }
