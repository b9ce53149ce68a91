package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daily.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  mode: production
database:
  host: db
  user: u
  password: p
  name: records
redis:
  host: cache
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=records sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, "0 3 * * *", cfg.Backup.Schedule)
	assert.False(t, cfg.Backup.Enabled)
	assert.Equal(t, int64(10<<20), cfg.Import.MaxUploadBytes)
	assert.Equal(t, int64(10), cfg.Import.RateLimit)
	assert.Equal(t, time.Minute, cfg.Import.RateWindow)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")

	t.Setenv("DB_HOST", "override-host")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("SERVER_TIMEOUT", "30s")
	t.Setenv("BACKUP_ENABLED", "true")
	t.Setenv("REDIS_HOST", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "override-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.True(t, cfg.Backup.Enabled)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadConfigConfigFileEnv(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9999\n")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig("does/not/matter.yaml")
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
