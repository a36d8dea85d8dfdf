package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-booking-webhook/internal/config"
)

// run from an empty dir so no stray .env or config.yaml leaks in
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)
	for _, k := range []string{"PORT", "DATABASE_URL", "SUPABASE_URL", "SUPABASE_KEY", "REDIS_ADDR", "RETELL_API_KEY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "appointments", cfg.BroadcastChannel)
	assert.Equal(t, "https://api.retellai.com", cfg.RetellBaseURL)
	assert.Equal(t, "error.log", cfg.ErrorLogPath)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.EqualValues(t, 10, cfg.RateLimitRPS)
	assert.False(t, cfg.DatabaseEnabled())
	assert.False(t, cfg.SupabaseEnabled())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.TrustProxy)
	assert.False(t, cfg.SupabaseWithoutDatabase())
}

func TestLoadFromEnv(t *testing.T) {
	inTempDir(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon")
	t.Setenv("RETELL_AGENT_ID", "agent_1")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ENV", "production")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "agent_1", cfg.RetellAgentID)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.DatabaseEnabled())
	assert.True(t, cfg.SupabaseEnabled())
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.SupabaseWithoutDatabase())
}

func TestSupabaseWithoutDatabase(t *testing.T) {
	inTempDir(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("SUPABASE_KEY", "service_role")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.SupabaseWithoutDatabase())
	assert.False(t, cfg.DatabaseEnabled())
}

func TestLoadDotEnv(t *testing.T) {
	dir := inTempDir(t)
	os.Unsetenv("RETELL_API_KEY")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RETELL_API_KEY=from_dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("RETELL_API_KEY") })

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.RetellAPIKey)
}

func TestLoadConfigFile(t *testing.T) {
	dir := inTempDir(t)
	os.Unsetenv("BROADCAST_CHANNEL")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("BROADCAST_CHANNEL: clinic-ui\n"), 0o600))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "clinic-ui", cfg.BroadcastChannel)
}
