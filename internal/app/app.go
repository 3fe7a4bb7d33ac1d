// Package app wires configuration, storage and services into one container.
package app

import (
	"time"

	"recruit-api/config"
	"recruit-api/internal/api/handlers"
	"recruit-api/internal/auth"
	"recruit-api/internal/blob"
	"recruit-api/internal/mailer"
	"recruit-api/internal/metrics"
	"recruit-api/internal/outbox"
	"recruit-api/internal/services"
	"recruit-api/internal/storage"

	"github.com/go-playground/validator/v10"
)

// Application holds core application dependencies.
type Application struct {
	Config    *config.Config
	Store     *storage.Store
	Cache     storage.CacheStore
	Validator *validator.Validate
	Metrics   *metrics.Metrics
	Effects   *outbox.Dispatcher
	Tokens    *auth.Tokens
	Deps      *services.Deps

	// Readiness probes, keyed by dependency name.
	Checks map[string]handlers.Pinger

	Accounts      services.AccountService
	Profiles      services.ProfileService
	Offers        services.OfferService
	Applications  services.ApplicationService
	Interviews    services.InterviewService
	Conversations services.ConversationService
	Recruiters    services.RecruiterService
	Admin         services.AdminService
	Support       services.SupportService
	Notifications services.NotificationService
}

// Option tweaks the container before services are built.
type Option func(*Application)

// WithBlobStore replaces the local file store.
func WithBlobStore(b blob.Store) Option {
	return func(a *Application) { a.Deps.Blob = b }
}

// WithClock pins the service clock.
func WithClock(now func() time.Time) Option {
	return func(a *Application) { a.Deps.Now = now }
}

// WithMailer replaces the mailer, typically to stub the SMTP transport.
func WithMailer(m *mailer.Mailer) Option {
	return func(a *Application) { a.Deps.Mailer = m }
}

// New builds the container on top of already opened storage.
func New(cfg *config.Config, store *storage.Store, cache storage.CacheStore, opts ...Option) *Application {
	m := metrics.New()

	var effects *outbox.Dispatcher
	if cfg.SideEffects.Workers > 0 {
		effects = outbox.New(cfg.SideEffects.Workers, cfg.SideEffects.QueueSize, m)
	} else {
		effects = outbox.NewInline(m)
	}

	tokens := auth.NewTokens(cfg.JWT, cache)
	a := &Application{
		Config:    cfg,
		Store:     store,
		Cache:     cache,
		Validator: validator.New(),
		Metrics:   m,
		Effects:   effects,
		Tokens:    tokens,
		Checks:    map[string]handlers.Pinger{},
		Deps: &services.Deps{
			Store:           store,
			Cache:           cache,
			Effects:         effects,
			Mailer:          mailer.New(cfg.Email, cache),
			Blob:            blob.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.PublicURL, cfg.Uploads.MaxBytes),
			Tokens:          tokens,
			Metrics:         m,
			VerificationTTL: cfg.Email.VerificationTTL,
		},
	}
	for _, opt := range opts {
		opt(a)
	}

	d := a.Deps
	a.Accounts = services.NewAccountService(d)
	a.Profiles = services.NewProfileService(d)
	a.Offers = services.NewOfferService(d)
	a.Applications = services.NewApplicationService(d)
	a.Interviews = services.NewInterviewService(d)
	a.Conversations = services.NewConversationService(d)
	a.Recruiters = services.NewRecruiterService(d)
	a.Admin = services.NewAdminService(d)
	a.Support = services.NewSupportService(d)
	a.Notifications = services.NewNotificationService(d)
	return a
}

// Close drains pending side effects.
func (a *Application) Close() {
	a.Effects.Close()
}
