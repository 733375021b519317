package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 32, cfg.Workers)
	assert.Equal(t, 64, cfg.MaxConnections)
	assert.Equal(t, "https://raw.githubusercontent.com", cfg.ContentHost)
	assert.Equal(t, "https://api.github.com", cfg.APIURL)
	assert.Equal(t, BackendFile, cfg.Cache.Backend)
	assert.Equal(t, 168*time.Hour, cfg.Cache.TTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	path := writeConfig(t, `
workers = 8
token = "secret"

[cache]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2
ttl = "24h"
`)

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 64, cfg.MaxConnections, "unset keys keep defaults")
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 2, cfg.Cache.RedisDB)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig(path, true)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput))
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, "workers = 4\nthreads = 9\n")

	_, err := LoadConfig(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threads")
}

func TestLoadConfigTokenFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")

	cfg, err := LoadConfig(writeConfig(t, "workers = 4\n"), true)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Token)

	cfg, err = LoadConfig(writeConfig(t, "token = \"from-file\"\n"), true)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Token, "file wins over environment")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"zero connections", func(c *Config) { c.MaxConnections = 0 }},
		{"connections below workers", func(c *Config) { c.Workers, c.MaxConnections = 64, 16 }},
		{"bad content host", func(c *Config) { c.ContentHost = "ftp://example.com" }},
		{"empty api url", func(c *Config) { c.APIURL = "" }},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput))
		})
	}
}

func TestLoadConfigInvalidValue(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "workers = -1\n"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}

func TestLoadConfigConnectionsBelowWorkers(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "workers = 100\nmax_connections = 10\n"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_connections")

	cfg, err := LoadConfig(writeConfig(t, "workers = 10\nmax_connections = 10\n"), true)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxConnections)
}
