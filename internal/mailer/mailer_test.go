package mailer_test

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"recruit-api/config"
	"recruit-api/internal/mailer"
	"recruit-api/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMailer(mode string) (*mailer.Mailer, *[]string) {
	var sent []string
	m := mailer.New(config.EmailConfig{
		Mode:     mode,
		From:     "no-reply@test.local",
		SMTPHost: "smtp.test.local",
		SMTPPort: 25,
		DevCode:  "123456",
	}, memory.NewCache()).WithSendFunc(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, string(msg))
		return nil
	})
	return m, &sent
}

func TestMailer_DevelopmentModeDoesNotSend(t *testing.T) {
	m, sent := newMailer("development")
	res, err := m.Send(context.Background(), "a@b.c", mailer.TemplateVerification, map[string]any{"Name": "Amel", "Code": "123456", "Minutes": 15})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, mailer.ModeDevelopment, res.Mode)
	assert.Empty(t, *sent)
	assert.Equal(t, "123456", m.DevCode())
}

func TestMailer_LiveModeSends(t *testing.T) {
	m, sent := newMailer("development")
	ctx := context.Background()
	require.NoError(t, m.SetMode(ctx, mailer.ModeLive))
	assert.Equal(t, mailer.ModeLive, m.Mode(ctx))

	res, err := m.Send(ctx, "a@b.c", mailer.TemplateVerification, map[string]any{"Name": "Amel", "Code": "987654", "Minutes": 15})
	require.NoError(t, err)
	assert.Equal(t, mailer.ModeLive, res.Mode)
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0], "987654")
	assert.Contains(t, (*sent)[0], "To: a@b.c")
}

func TestMailer_Failures(t *testing.T) {
	m, _ := newMailer("live")
	m.WithSendFunc(func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") })

	res, err := m.Send(context.Background(), "a@b.c", mailer.TemplateOfferModerated, map[string]any{"Name": "x", "Message": "y"})
	require.Error(t, err)
	assert.False(t, res.Success)

	_, err = m.Send(context.Background(), "a@b.c", "nope", nil)
	assert.ErrorIs(t, err, mailer.ErrUnknownTemplate)

	assert.Error(t, m.SetMode(context.Background(), "carrier-pigeon"))
}
