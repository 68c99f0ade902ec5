package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all engine configuration.
type Config struct {
	Server      ServerConfig
	Storage     StorageConfig
	Dashboard   DashboardConfig
	Entitlement EntitlementConfig
	AdGate      AdGateConfig
	Logging     LogConfig
	RateLimit   RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// StorageConfig holds preference-store configuration. An empty Dir selects
// the in-memory backend (configuration lost on restart).
type StorageConfig struct {
	Dir          string `envconfig:"STORAGE_DIR" default:"./data"`
	SeedManifest string `envconfig:"SEED_MANIFEST" default:""`
}

// DashboardConfig holds composition policy configuration.
type DashboardConfig struct {
	Layout    string `envconfig:"DASH_LAYOUT" default:"list"`
	AdCadence int    `envconfig:"DASH_AD_CADENCE" default:"1"`
}

// EntitlementConfig holds billing-service configuration. An empty URL
// selects the in-memory resolver (free tier until set).
type EntitlementConfig struct {
	URL string `envconfig:"ENTITLEMENT_URL" default:""`
}

// AdGateConfig holds ad-network bridge configuration. An empty URL selects
// the in-memory provider.
type AdGateConfig struct {
	URL string `envconfig:"ADGATE_URL" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Storage: StorageConfig{
			Dir: "./data",
		},
		Dashboard: DashboardConfig{
			Layout:    "list",
			AdCadence: 1,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
