// Package config loads jsongraph settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/jsongraph/config.toml, falling back to
// ~/.config/jsongraph/config.toml. Every field has a default, so a missing
// file is not an error:
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	enabled = true
//	backend = "file"
//	ttl = "168h"
//
//	[persistence]
//	backend = "redis"
//
//	[redis]
//	addr = "localhost:6379"
//	key = "jsongraph:doc:"
//	document_id = "main"
//
//	[edit]
//	mode = "raw"
//
// Command-line flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jsongraph/pkg/edit"
	"github.com/matzehuels/jsongraph/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "jsongraph"

// Persistence backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the full configuration.
type Config struct {
	Server      Server      `toml:"server"`
	Cache       Cache       `toml:"cache"`
	Persistence Persistence `toml:"persistence"`
	Redis       Redis       `toml:"redis"`
	Mongo       Mongo       `toml:"mongo"`
	Edit        Edit        `toml:"edit"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Cache configures the derived-graph and render cache.
type Cache struct {
	Enabled bool `toml:"enabled"`
	// Backend is "file" (Dir) or "redis" (the [redis] connection).
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`
	// Namespace prefixes every cache key, so installations can share a
	// redis cache.
	Namespace string `toml:"namespace"`
}

// Persistence selects where edits are written.
type Persistence struct {
	Backend string `toml:"backend"`
}

// Redis configures the Redis backend.
type Redis struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	Key        string `toml:"key"`
	DocumentID string `toml:"document_id"`
}

// Mongo configures the MongoDB backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
	DocumentID string `toml:"document_id"`
}

// Edit configures the edit surfaces.
type Edit struct {
	Mode string `toml:"mode"`
}

// Duration is a time.Duration written as a string ("24h") in TOML.
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
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{Addr: "127.0.0.1:8080"},
		Cache: Cache{
			Enabled: true,
			Backend: BackendFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Persistence: Persistence{Backend: BackendFile},
		Redis: Redis{
			Addr:       "localhost:6379",
			Key:        "jsongraph:doc:",
			DocumentID: "default",
		},
		Mongo: Mongo{
			URI:        "mongodb://localhost:27017",
			Database:   AppName,
			Collection: "documents",
			DocumentID: "default",
		},
		Edit: Edit{Mode: string(edit.ModeRaw)},
	}
}

// Load reads path over the defaults. An empty path uses DefaultPath; a
// missing file at the default location yields the defaults, while a missing
// file that was asked for explicitly is an error.
//
// Errors:
//   - FILE_NOT_FOUND: an explicit path does not exist
//   - INVALID_CONFIG: the file does not parse or fails Validate
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Persistence.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis.addr is required for the redis backend")
		}
		if err := errors.ValidateDocumentID(c.Redis.DocumentID); err != nil {
			return err
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "mongo.uri and mongo.database are required for the mongo backend")
		}
		if err := errors.ValidateDocumentID(c.Mongo.DocumentID); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown persistence backend %q", c.Persistence.Backend)
	}

	switch c.Cache.Backend {
	case BackendFile:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis.addr is required for the redis cache")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file or redis)", c.Cache.Backend)
	}

	if _, err := edit.ParseMode(c.Edit.Mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "edit.mode")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if c.Redis.DB < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "redis.db cannot be negative")
	}
	return nil
}

// Write encodes c as TOML to path, creating parent directories.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns the config file location using XDG conventions.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory: Cache.Dir when set, otherwise
// $XDG_CACHE_HOME/jsongraph or ~/.cache/jsongraph.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
