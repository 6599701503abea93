package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPServer.Address)
	assert.Equal(t, 30*time.Second, cfg.HTTPServer.ReadTimeout)
	assert.Equal(t, "dealbies-21", cfg.Affiliate.AmazonTag)
	assert.Equal(t, "dealbies", cfg.Affiliate.AffiliateID)
	assert.False(t, cfg.Analytics.Async)
	assert.Equal(t, "dealbies_session", cfg.Auth.SessionCookie)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.HTTPServer.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AFFILIATE_AMAZON_TAG", "other-21")
	t.Setenv("ANALYTICS_ASYNC", "true")
	t.Setenv("DB_PORT", "6543")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "other-21", cfg.Affiliate.AmazonTag)
	assert.True(t, cfg.Analytics.Async)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
env: local
http_server:
  address: ":9090"
  shutdown_timeout: 5s
database:
  host: db.internal
  auto_migrate: false
affiliate:
  amazon_tag: yaml-21
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":9090", cfg.HTTPServer.Address)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.ShutdownTimeout)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "yaml-21", cfg.Affiliate.AmazonTag)
	// untouched keys still get their defaults
	assert.Equal(t, "dealbies", cfg.Affiliate.AffiliateID)
}
