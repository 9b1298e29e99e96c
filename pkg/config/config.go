// Package config loads gridboard's TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/gridboard/config.toml by default. A
// missing file is not an error: every field has a default, and command-line
// flags override whatever the file sets.
//
//	[server]
//	addr = ":8080"
//	backend = "redis"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[client]
//	remote_url = "http://localhost:8080"
//	debounce = "500ms"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperr "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/store"
)

// Duration is a time.Duration written as a string ("500ms", "10s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the whole configuration file.
type Config struct {
	Server ServerConfig      `toml:"server"`
	Redis  store.RedisConfig `toml:"redis"`
	Mongo  store.MongoConfig `toml:"mongo"`
	Client ClientConfig      `toml:"client"`
}

// ServerConfig configures `gridboard serve`.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	Backend string `toml:"backend"`
	DataDir string `toml:"data_dir"`

	// WriteRate is the sustained number of layout writes per second allowed
	// for one owner; WriteBurst is the bucket size.
	WriteRate  float64 `toml:"write_rate"`
	WriteBurst int     `toml:"write_burst"`
}

// ClientConfig configures the CLI's persistence chain.
type ClientConfig struct {
	// RemoteURL is the layout store. Empty disables the remote leg.
	RemoteURL     string   `toml:"remote_url"`
	Owner         string   `toml:"owner"`
	Debounce      Duration `toml:"debounce"`
	Timeout       Duration `toml:"timeout"`
	CacheDir      string   `toml:"cache_dir"`
	QuotaBytes    int      `toml:"quota_bytes"`
	WriteAttempts int      `toml:"write_attempts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       ":8080",
			Backend:    store.BackendFile,
			WriteRate:  10,
			WriteBurst: 20,
		},
		Redis: store.RedisConfig{
			Addr:   "localhost:6379",
			Prefix: store.DefaultRedisPrefix,
		},
		Mongo: store.MongoConfig{
			URI:        store.DefaultMongoURI,
			Database:   store.DefaultMongoDatabase,
			Collection: store.DefaultMongoCollection,
		},
		Client: ClientConfig{
			RemoteURL:     "http://localhost:8080",
			Owner:         "local",
			Debounce:      Duration{500 * time.Millisecond},
			Timeout:       Duration{10 * time.Second},
			QuotaBytes:    5 << 20,
			WriteAttempts: 1,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gridboard/config.toml, falling back
// to ~/.config/gridboard/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "gridboard", "config.toml"), nil
}

// Load reads path over the defaults. An empty path means DefaultPath. A
// missing file yields the defaults; unknown keys are an error so typos do
// not pass silently.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if !slices.Contains(store.Backends(), c.Server.Backend) {
		return apperr.New(apperr.ErrCodeInvalidInput, "server.backend must be one of %s", strings.Join(store.Backends(), ", "))
	}
	if c.Server.WriteRate <= 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "server.write_rate must be positive")
	}
	if c.Server.WriteBurst < 1 {
		return apperr.New(apperr.ErrCodeInvalidInput, "server.write_burst must be at least 1")
	}
	if c.Client.RemoteURL != "" {
		if err := apperr.ValidateURL(c.Client.RemoteURL); err != nil {
			return fmt.Errorf("client.remote_url: %w", err)
		}
	}
	if err := apperr.ValidateOwner(c.Client.Owner); err != nil {
		return fmt.Errorf("client.owner: %w", err)
	}
	if c.Client.Debounce.Duration <= 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "client.debounce must be positive")
	}
	if c.Client.Timeout.Duration <= 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "client.timeout must be positive")
	}
	if c.Client.QuotaBytes < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "client.quota_bytes cannot be negative")
	}
	if c.Client.WriteAttempts < 1 {
		return apperr.New(apperr.ErrCodeInvalidInput, "client.write_attempts must be at least 1")
	}
	return nil
}

// StoreConfig returns the server's backend selection.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend: c.Server.Backend,
		DataDir: c.Server.DataDir,
		Redis:   c.Redis,
		Mongo:   c.Mongo,
	}
}

// CacheDir returns the local layout cache directory: client.cache_dir if
// set, else $XDG_CACHE_HOME/gridboard (~/.cache/gridboard).
func (c *Config) CacheDir() (string, error) {
	if c.Client.CacheDir != "" {
		return c.Client.CacheDir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return filepath.Join(dir, "gridboard"), nil
}
