package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.Auth.MagicLinkTTL)
	assert.Equal(t, 720*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "https://wa.me", cfg.Contact.ChatBaseURL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Contains(t, cfg.PostgresDSN(), "dbname=emko")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestIsAdminEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAILS", "admin@emko.app, ops@emko.app")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsAdminEmail("admin@emko.app"))
	assert.True(t, cfg.IsAdminEmail("OPS@emko.app"))
	assert.False(t, cfg.IsAdminEmail("someone@emko.app"))
	assert.False(t, cfg.IsAdminEmail(""))
}
