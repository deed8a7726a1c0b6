package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("WU_JWT_SECRET", "")

	_, err := Load()
	require.ErrorContains(t, err, "jwt secret")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WU_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "gpt-4o", cfg.OpenAIModel)
	require.Equal(t, "documents", cfg.CloudinaryFolder)
	require.Equal(t, 10, cfg.MaxUploadMB)
	require.Equal(t, time.Minute, cfg.AdminCacheTTL)
	require.Equal(t, "wu:verify", cfg.EventChannelBase)
	require.False(t, cfg.AIConfigured(), "no key means degraded mode, not an error")
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("WU_JWT_SECRET", "test-secret")
	t.Setenv("WU_APP_PORT", "9090")
	t.Setenv("WU_OPENAI_API_KEY", "sk-test")
	t.Setenv("WU_MAX_UPLOAD_MB", "25")
	t.Setenv("WU_ADMIN_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.True(t, cfg.AIConfigured())
	require.Equal(t, 25, cfg.MaxUploadMB)
	require.Equal(t, 30*time.Second, cfg.AdminCacheTTL)
}
