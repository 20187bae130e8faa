package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mauv0809/club-stats/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults only", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 15*time.Second, cfg.Cache.TTL)
		assert.Equal(t, 30*time.Second, cfg.Export.Debounce)
		assert.Zero(t, cfg.Export.MaxWait)
		assert.True(t, cfg.Export.Enabled)
		assert.True(t, cfg.Preload)
		assert.False(t, cfg.SlackEnabled())
		assert.False(t, cfg.InngestEnabled())
		assert.Equal(t, "*/30 * * * *", cfg.Inngest.FlushCron)
	})

	t.Run("inngest is enabled by an app id", func(t *testing.T) {
		t.Setenv("CLUBSTATS_INNGEST__APP_ID", "club-stats")
		t.Setenv("CLUBSTATS_INNGEST__FLUSH_CRON", "0 * * * *")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.True(t, cfg.InngestEnabled())
		assert.Equal(t, "0 * * * *", cfg.Inngest.FlushCron)
	})

	t.Run("environment overrides, nested keys use a double underscore", func(t *testing.T) {
		t.Setenv("CLUBSTATS_PORT", "9090")
		t.Setenv("CLUBSTATS_CACHE__TTL", "5s")
		t.Setenv("CLUBSTATS_EXPORT__MAX_WAIT", "2m")
		t.Setenv("CLUBSTATS_EXPORT__ENABLED", "false")
		t.Setenv("CLUBSTATS_SLACK__TOKEN", "xoxb-test")
		t.Setenv("CLUBSTATS_SLACK__CHANNEL_ID", "C123")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Cache.TTL)
		assert.Equal(t, 2*time.Minute, cfg.Export.MaxWait)
		assert.False(t, cfg.Export.Enabled)
		assert.True(t, cfg.SlackEnabled())
	})

	t.Run("yaml file sits between defaults and environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clubstats.yaml")
		yamlContent := `
port: "7070"
db_name: league.db
export:
  debounce: 10s
turso:
  primary_url: libsql://club.turso.io
`
		require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))
		t.Setenv("CLUBSTATS_CONFIG", path)
		t.Setenv("CLUBSTATS_PORT", "6060")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "6060", cfg.Port, "env wins over the file")
		assert.Equal(t, "league.db", cfg.DBName)
		assert.Equal(t, 10*time.Second, cfg.Export.Debounce)
		assert.Equal(t, "libsql://club.turso.io", cfg.Turso.PrimaryURL)
		assert.Equal(t, 15*time.Second, cfg.Cache.TTL, "unset keys keep their default")
	})

	t.Run("missing file fails", func(t *testing.T) {
		t.Setenv("CLUBSTATS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		t.Setenv("CLUBSTATS_EXPORT__DEBOUNCE", "0s")
		_, err := config.Load()
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	cfg.LogLevel = "chatty"
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)

	cfg = config.Default()
	cfg.Port = ""
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
}
