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
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
storage:
  type: local
  local_path: `+filepath.Join(t.TempDir(), "uploads")+`
jwt:
  secret: dev-secret
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, int64(200), cfg.Upload.MaxSizeMB)
	assert.Equal(t, 1000, cfg.RateLimit.MaxRequests)
	assert.DirExists(t, cfg.Storage.LocalPath)
}

func TestLoadConfig_ReleaseRequiresLongSecret(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
storage:
  type: minio
jwt:
  secret: short
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret is too short")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
storage:
  type: minio
database:
  driver: mysql
  host: db.internal
`)
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
