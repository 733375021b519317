// Package cli implements the dependents command-line interface.
//
// # Commands
//
//   - scan: list, fetch and parse the NuGet manifests of repositories
//   - search: list the most-starred repositories of a language
//   - show: print saved JSON results as text
//   - cache: inspect or clear the result cache
//   - completion: generate shell completion scripts
//
// Settings come from a TOML file (see [Config]); flags override it.
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/loic-sharma/NuGet.Dependents/pkg/buildinfo"
	"github.com/loic-sharma/NuGet.Dependents/pkg/cache"
	apperrors "github.com/loic-sharma/NuGet.Dependents/pkg/errors"
	"github.com/loic-sharma/NuGet.Dependents/pkg/observability"
)

// appName is the application name used for directories and display.
const appName = "dependents"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level, scan and HTTP
// events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		h := &logHooks{logger: c.Logger}
		observability.SetScanHooks(h)
		observability.SetHTTPHooks(h)
		observability.SetCacheHooks(h)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "dependents finds the NuGet packages repositories depend on",
		Long:         `dependents lists the files of GitHub repositories without cloning them, fetches every .csproj and packages.config it finds, and reports the NuGet package references they declare.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/dependents/config.toml)")

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the config file named by --config or the default location.
func (c *CLI) config() (Config, error) {
	if c.configPath != "" {
		return LoadConfig(c.configPath, true)
	}
	path, err := configPath()
	if err != nil {
		return DefaultConfig().withEnv(), nil
	}
	return LoadConfig(path, false)
}

// openCache opens the configured cache backend. disabled forces a NullCache.
func openCache(ctx context.Context, cfg CacheConfig, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "connect to redis at %s", cfg.RedisAddr)
		}
		return rc, nil
	case BackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeIO, err, "open cache %s", dir)
		}
		return fc, nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown cache backend %q", cfg.Backend)
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/dependents/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the default config file (~/.config/dependents/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
