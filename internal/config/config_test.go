package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/trmops/internal/session"
)

var configKeys = []string{
	"APP_NAME", "APP_PORT", "APP_ENV", "LOG_LEVEL", "SESSION_SECRET", "DATABASE_URL", "REDIS_URL",
	"AFRICASTALKING_API_KEY", "AFRICASTALKING_USERNAME", "AFRICASTALKING_SENDER_ID", "AFRICASTALKING_BASE_URL",
	"DEFAULT_ROLE", "DIRECTORY_SEED", "OTP_RATE_LIMIT_PER_MINUTE", "SHUTDOWN_TIMEOUT",
}

// clearEnv blanks every key; t.Setenv restores the originals after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "development")
	t.Setenv("DEFAULT_ROLE", "admin")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
	assert.Equal(t, session.RoleAdmin, cfg.DefaultRole)
	assert.Equal(t, 5, cfg.OTPRateLimitPerMinute)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.GatewayConfigured())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("AFRICASTALKING_API_KEY", "key")
	t.Setenv("AFRICASTALKING_USERNAME", "trm")
	t.Setenv("DEFAULT_ROLE", "tenant_manager")
	t.Setenv("OTP_RATE_LIMIT_PER_MINUTE", "3")
	t.Setenv("SHUTDOWN_TIMEOUT", "1m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.True(t, cfg.GatewayConfigured())
	assert.Equal(t, session.RoleTenantManager, cfg.DefaultRole)
	assert.Equal(t, 3, cfg.OTPRateLimitPerMinute)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
}

func TestLoadShutdownSeconds(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "production without secret", key: "APP_ENV", val: "production"},
		{name: "unknown role", key: "DEFAULT_ROLE", val: "root"},
		{name: "bad rate limit", key: "OTP_RATE_LIMIT_PER_MINUTE", val: "many"},
		{name: "bad timeout", key: "SHUTDOWN_TIMEOUT", val: "soon"},
		{name: "empty port", key: "APP_PORT", val: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
