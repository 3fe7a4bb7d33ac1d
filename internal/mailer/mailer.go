// Package mailer delivers transactional emails. In development mode nothing
// leaves the process and verification codes are a fixed value.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"recruit-api/config"
	"recruit-api/internal/storage"
)

// Mode selects how emails are delivered.
type Mode string

const (
	ModeLive        Mode = "live"
	ModeDevelopment Mode = "development"
)

func (m Mode) Valid() bool { return m == ModeLive || m == ModeDevelopment }

const modeKey = "settings:email_mode"

var ErrUnknownTemplate = errors.New("unknown email template")

// Result reports how a message was handled.
type Result struct {
	Success bool `json:"success"`
	Mode    Mode `json:"mode"`
}

// Sender is what services depend on.
type Sender interface {
	Send(ctx context.Context, to, templateName string, data map[string]any) (Result, error)
	Mode(ctx context.Context) Mode
	DevCode() string
}

// SendFunc delivers a rendered message; smtp.SendMail in production.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer renders templates and sends them according to the persisted mode.
type Mailer struct {
	cfg      config.EmailConfig
	settings storage.CacheStore
	send     SendFunc
}

func New(cfg config.EmailConfig, settings storage.CacheStore) *Mailer {
	return &Mailer{cfg: cfg, settings: settings, send: smtp.SendMail}
}

// WithSendFunc replaces the SMTP transport.
func (m *Mailer) WithSendFunc(fn SendFunc) *Mailer {
	m.send = fn
	return m
}

var _ Sender = (*Mailer)(nil)

// Mode returns the persisted delivery mode, falling back to configuration.
func (m *Mailer) Mode(ctx context.Context) Mode {
	if v, err := m.settings.Get(ctx, modeKey); err == nil && Mode(v).Valid() {
		return Mode(v)
	}
	if Mode(m.cfg.Mode).Valid() {
		return Mode(m.cfg.Mode)
	}
	return ModeDevelopment
}

// SetMode persists the delivery mode.
func (m *Mailer) SetMode(ctx context.Context, mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid email mode %q", mode)
	}
	return m.settings.Set(ctx, modeKey, string(mode), 0)
}

func (m *Mailer) DevCode() string { return m.cfg.DevCode }

func (m *Mailer) Send(ctx context.Context, to, templateName string, data map[string]any) (Result, error) {
	mode := m.Mode(ctx)
	subject, body, err := render(templateName, data)
	if err != nil {
		return Result{Mode: mode}, err
	}

	if mode == ModeDevelopment {
		log.Printf("Mailer (development): to=%s subject=%q\n%s", to, subject, body)
		return Result{Success: true, Mode: mode}, nil
	}

	msg := buildMessage(m.cfg.From, to, subject, body)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}
	if err := m.send(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		log.Printf("Mailer: sending %s to %s failed: %v", templateName, to, err)
		return Result{Mode: mode}, fmt.Errorf("failed to send %s: %w", templateName, err)
	}
	return Result{Success: true, Mode: mode}, nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return b.Bytes()
}
