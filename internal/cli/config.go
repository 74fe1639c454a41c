package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backends selectable in config.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Environments selectable in config. Production enables immutable HTTP
// cache headers; development disables client caching entirely.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the TOML configuration for the serve and render commands.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Presets PresetsConfig `toml:"presets"`
	Cache   CacheConfig   `toml:"cache"`
	Fonts   FontsConfig   `toml:"fonts"`
	Icons   IconsConfig   `toml:"icons"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	Environment string `toml:"environment"`
}

// PresetsConfig selects the preset store. A non-empty MongoURI selects the
// MongoDB store; otherwise presets load from a directory of JSON files.
type PresetsConfig struct {
	Dir             string `toml:"dir"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// CacheConfig selects the rendered-image cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// FontsConfig configures display font lookup.
type FontsConfig struct {
	Dir string `toml:"dir"`
}

// IconsConfig configures the icon API client.
type IconsConfig struct {
	BaseURL string `toml:"base_url"`
}

// Production reports whether the configured environment is production.
func (c Config) Production() bool {
	return c.Server.Environment == EnvProduction
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Server:  ServerConfig{Addr: ":5777", Environment: EnvDevelopment},
		Presets: PresetsConfig{Dir: "presets"},
		Cache:   CacheConfig{Backend: CacheBackendFile},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// An empty path tries ./imgx.toml and falls back to pure defaults when the
// file doesn't exist; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = "imgx.toml"
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(filepath.Clean(path), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid environment %q (want %s or %s)", c.Server.Environment, EnvDevelopment, EnvProduction)
	}
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return fmt.Errorf("invalid cache backend %q (want %s, %s or %s)", c.Cache.Backend, CacheBackendFile, CacheBackendRedis, CacheBackendNone)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache backend %s requires redis_addr", CacheBackendRedis)
	}
	return nil
}
