package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.RequestLog)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Hour, cfg.DraftTTL)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.True(t, cfg.IsTest())
}

func TestFromViper_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("DRAFT_TTL", "30m")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.RequestLog)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Minute, cfg.DraftTTL)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestFromViper_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := FromViper(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestConfig_AdminEmailList(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("ADMIN_EMAILS", " Ops@Example.com, ,lead@example.com")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"ops@example.com", "lead@example.com"}, cfg.AdminEmailList())
}
