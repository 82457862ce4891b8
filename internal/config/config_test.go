package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: "shareit-api"
database:
  path: "test.db"
rate_limit:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test.db", cfg.Database.Path)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Listing.DefaultPageSize)
	assert.Equal(t, 30, cfg.RateLimit.Requests)
	assert.Equal(t, 60, cfg.RateLimit.Window)
	assert.Equal(t, "exports", cfg.Exports.Path)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "/tmp/share.db")
	path := writeConfigFile(t, `
database:
  path: "${TEST_DB_PATH}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/share.db", cfg.Database.Path)
}

func TestLoadRejectsMissingDatabasePath(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: "shareit-api"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: "shareit-api"
  environment: "test"
database:
  path: "share.db"
redis:
  address: "localhost:6379"
  db: 2
monitoring:
  prometheus_enabled: true
http:
  port: 9000
rate_limit:
  enabled: true
  requests: 5
  window: 10
listing:
  default_page_size: 25
seed:
  path: "configs/seed.yaml"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 9090, cfg.Monitoring.PrometheusPort)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 25, cfg.Listing.DefaultPageSize)
	assert.Equal(t, "configs/seed.yaml", cfg.Seed.Path)
}
