package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mustafaygt66/EMKO/internal/common/config"
)

func TestNewFallsBackToLogMailer(t *testing.T) {
	cfg := &config.Config{}
	m := New(cfg)
	_, ok := m.(*LogMailer)
	require.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), Message{To: "a@example.com", Subject: "s", Body: "b"}))

	cfg.Mail.Host = "smtp.example.com"
	cfg.Mail.Port = 587
	cfg.Mail.From = "EMKO <no-reply@emko.local>"
	s, ok := New(cfg).(*SMTPMailer)
	require.True(t, ok)
	assert.Equal(t, "smtp.example.com", s.host)
	assert.Equal(t, 587, s.port)
}

func TestBuildMessage(t *testing.T) {
	m := &SMTPMailer{from: "EMKO <no-reply@emko.local>"}
	msg, err := m.buildMessage(Message{To: "a@example.com", Subject: "Giriş", Body: "https://emko.local/auth/verify"})
	require.NoError(t, err)

	var raw bytes.Buffer
	_, err = msg.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "a@example.com")
	assert.Contains(t, raw.String(), "no-reply@emko.local")
	assert.Contains(t, raw.String(), "text/plain")
	assert.Contains(t, raw.String(), "emko.local/auth/verify")

	_, err = m.buildMessage(Message{To: "not an address"})
	assert.Error(t, err)
}

func TestSendHonorsCancelledContext(t *testing.T) {
	m := &SMTPMailer{host: "127.0.0.1", port: 2525, from: "no-reply@emko.local"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, Message{To: "a@example.com", Subject: "s", Body: "b"})
	assert.ErrorIs(t, err, context.Canceled)
}
