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

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PORT")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./data/fleet.db", cfg.Database.DSN)
	assert.Equal(t, 15*time.Second, cfg.Alerts.Interval)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.Equal(t, 3600, cfg.Push.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Push.Configured())
}

func TestLoad_File(t *testing.T) {
	os.Unsetenv("PORT")
	path := writeConfig(t, `
server:
  port: 8080
database:
  driver: postgres
  dsn: "host=localhost user=fleet dbname=fleet"
alerts:
  enabled: true
  interval_seconds: 2
push:
  vapid_public_key: pub
  vapid_private_key: priv
worker_pool:
  size: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=localhost user=fleet dbname=fleet", cfg.Database.DSN)
	assert.True(t, cfg.Alerts.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Alerts.Interval)
	assert.Equal(t, 3, cfg.WorkerPool.Size)
	assert.True(t, cfg.Push.Configured())
}

func TestLoad_PortEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	os.Unsetenv("PORT")
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}

func TestLoadOptional_MissingFile(t *testing.T) {
	os.Unsetenv("PORT")

	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}
