package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "SERVER_HOST", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "REDIS_ADDR", "JWT_SECRET", "CORS_ALLOWED_ORIGINS", "API_STORAGE_DRIVER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "development", cfg.Email.Mode)
	assert.Equal(t, 15*time.Minute, cfg.Email.VerificationTTL)
	assert.Equal(t, int64(5<<20), cfg.Uploads.MaxBytes)
	assert.Equal(t, 2, cfg.SideEffects.Workers)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("API_STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestInvalidPortIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "eighty")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
