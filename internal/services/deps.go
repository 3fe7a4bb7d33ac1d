package services

import (
	"context"
	"time"

	"recruit-api/internal/auth"
	"recruit-api/internal/blob"
	"recruit-api/internal/mailer"
	"recruit-api/internal/metrics"
	"recruit-api/internal/models"
	"recruit-api/internal/outbox"
	"recruit-api/internal/storage"
)

// Deps holds the collaborators shared by every service.
type Deps struct {
	Store           *storage.Store
	Cache           storage.CacheStore
	Effects         *outbox.Dispatcher
	Mailer          *mailer.Mailer
	Blob            blob.Store
	Tokens          *auth.Tokens
	Metrics         *metrics.Metrics
	VerificationTTL time.Duration
	Now             func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

type requestMetaKey struct{}

// WithRequestMeta attaches the caller's network details for audit entries.
func WithRequestMeta(ctx context.Context, meta models.RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

func requestMetaFrom(ctx context.Context) models.RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(models.RequestMeta)
	return meta
}
