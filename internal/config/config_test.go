package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123")
	t.Setenv("SESSION_BACKEND", "memory")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, PolicyFailOpen, cfg.Session.ValidationPolicy)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 2*time.Second, cfg.Session.GuardInitWait)
	assert.False(t, cfg.Session.CookieSecure)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("SESSION_BACKEND", "memory")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadPostgresNeedsDatabase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_BACKEND", "postgres")
	t.Setenv("DB_HOST", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "console")
	t.Setenv("DB_NAME", "console")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_BACKEND", "etcd")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("SESSION_VALIDATION_POLICY", "maybe")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("SESSION_VALIDATION_POLICY", "FAIL-CLOSED")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, PolicyFailClosed, cfg.Session.ValidationPolicy)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("GUARD_INIT_WAIT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GUARD_INIT_WAIT")
}
