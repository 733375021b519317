package cli

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/integrations"
	"github.com/loic-sharma/NuGet.Dependents/pkg/integrations/github"
	"github.com/loic-sharma/NuGet.Dependents/pkg/scan"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the contents of config.toml:
//
//	workers = 32
//	max_connections = 64
//	content_host = "https://raw.githubusercontent.com"
//	api_url = "https://api.github.com"
//	token = ""  # GITHUB_TOKEN is used when empty
//
//	[cache]
//	backend = "file"  # file, redis or none
//	dir = ""
//	redis_addr = "localhost:6379"
//	ttl = "168h"
type Config struct {
	Workers        int         `toml:"workers"`
	MaxConnections int         `toml:"max_connections"`
	ContentHost    string      `toml:"content_host"`
	APIURL         string      `toml:"api_url"`
	Token          string      `toml:"token"`
	Cache          CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Workers:        scan.DefaultWorkers,
		MaxConnections: integrations.DefaultMaxConnsPerHost,
		ContentHost:    github.DefaultContentHost,
		APIURL:         github.DefaultAPIURL,
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       7 * 24 * time.Hour,
		},
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing file
// is an error only when required is set. Unknown keys are rejected.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
		return cfg.withEnv(), nil
	case err != nil:
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg = cfg.withEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) withEnv() Config {
	if c.Token == "" {
		c.Token = os.Getenv("GITHUB_TOKEN")
	}
	return c
}

// Validate checks value ranges and URLs. The connection limit may not be
// lower than the worker count.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxConnections < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "max_connections must be at least 1, got %d", c.MaxConnections)
	}
	if c.MaxConnections < c.Workers {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "max_connections (%d) must be at least workers (%d)", c.MaxConnections, c.Workers)
	}
	if err := apperrors.ValidateURL(c.ContentHost); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "content_host")
	}
	if err := apperrors.ValidateURL(c.APIURL); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "api_url")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "cache.ttl cannot be negative")
	}
	return nil
}
