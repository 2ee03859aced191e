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

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: "sqlite"
  dsn: "file:polls.db"
auth:
  secret: "s3cret"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "sessionid", cfg.Auth.CookieName)
	assert.Equal(t, []string{"polls.add_poll"}, cfg.Auth.DefaultPermissions)
	assert.Equal(t, 6, cfg.Polls.PageSize)
	assert.Equal(t, 7, cfg.Polls.MinePageSize)
	assert.Zero(t, cfg.Polls.MinChoices)
}

func TestLoadConfig_ShippedLocal(t *testing.T) {
	cfg, err := LoadConfig("../../config/local.yaml")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.True(t, cfg.Storage.AutoMigrate)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := writeConfig(t, `
storage:
  driver: "mysql"
  dsn: "x"
auth:
  secret: "s"
`)
	_, err = LoadConfig(path)
	require.Error(t, err)

	path = writeConfig(t, `
storage:
  driver: "sqlite"
  dsn: "x"
`)
	_, err = LoadConfig(path)
	require.Error(t, err)
}
