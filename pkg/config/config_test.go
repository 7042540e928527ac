package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, AuthGateSignup, cfg.Auth.Gate)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_GATE", "ALL")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("CACHE_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, AuthGateAll, cfg.Auth.Gate)
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Cache.Enabled)
}

func TestTokenExpiryIsClamped(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("JWT_EXPIRATION", "24h")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)

	t.Setenv("JWT_EXPIRATION", "5m")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
}

func TestNormalizeGate(t *testing.T) {
	assert.Equal(t, AuthGateNone, normalizeGate(" none "))
	assert.Equal(t, AuthGateSignup, normalizeGate("bogus"))
	assert.Equal(t, AuthGateAll, normalizeGate("all"))
}
