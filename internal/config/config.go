// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"quote-pricing/internal/logging"
)

// EnvPrefix is the prefix of environment variables that override file settings
const EnvPrefix = "QUOTE_"

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains constants-table settings
	Pricing PricingConfig `json:"pricing"`

	// Server contains HTTP API settings
	Server ServerConfig `json:"server"`

	// Cache contains quote result cache settings
	Cache CacheConfig `json:"cache"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// ConstantsPath is the constants table file (.hcl, .yaml, .json); empty uses the built-in table
	ConstantsPath string `json:"constants_path"`

	// Currency is the display currency code; all engine figures are whole units of it
	Currency string `json:"currency"`

	// ActiveVersion selects the table quotes use by default; empty uses the loaded table
	ActiveVersion string `json:"active_version,omitempty"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds response writes
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

// CacheConfig contains cache-related settings
type CacheConfig struct {
	// Backend is none, memory or redis
	Backend string `json:"backend"`

	// RedisURL is used when Backend is redis
	RedisURL string `json:"redis_url,omitempty"`

	// TTLSeconds is how long a computed quote stays cached
	TTLSeconds int `json:"ttl_seconds"`

	// KeyPrefix namespaces cache keys
	KeyPrefix string `json:"key_prefix"`
}

// TTL returns the cache TTL as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Currency: "USD",
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			Backend:    CacheMemory,
			TTLSeconds: 3600,
			KeyPrefix:  "quote:",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, err
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks settings that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required when cache.backend is %q", CacheRedis)
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be >= 0")
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnv overlays QUOTE_* variables (and a .env file when present)
func applyEnv(c *Config) error {
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if v := k.String("constants_path"); v != "" {
		c.Pricing.ConstantsPath = v
	}
	if v := k.String("active_version"); v != "" {
		c.Pricing.ActiveVersion = v
	}
	if v := k.String("currency"); v != "" {
		c.Pricing.Currency = strings.ToUpper(v)
	}
	if v := k.String("server_addr"); v != "" {
		c.Server.Addr = v
	}
	if v := k.String("cache_backend"); v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v := k.String("redis_url"); v != "" {
		c.Cache.RedisURL = v
	}
	if k.Exists("cache_ttl_seconds") {
		c.Cache.TTLSeconds = k.Int("cache_ttl_seconds")
	}
	if v := k.String("log_level"); v != "" {
		c.Logging.Level = v
	}
	if v := k.String("log_format"); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
