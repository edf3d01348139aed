package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultUserAgent identifies the shell to origin servers when no override is
// configured.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) ASTERIX/0.1 Safari/537.36"

// Config holds all application configuration.
type Config struct {
	Browser BrowserConfig
	Logging LogConfig
}

// BrowserConfig holds navigation-core configuration.
type BrowserConfig struct {
	UserAgent     string        `envconfig:"ASTERIX_USER_AGENT"`
	FetchTimeout  time.Duration `envconfig:"ASTERIX_FETCH_TIMEOUT" default:"30s"`
	RatePerSecond float64       `envconfig:"ASTERIX_RATE_LIMIT_RPS" default:"0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"ASTERIX_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"ASTERIX_LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Browser.UserAgent == "" {
		cfg.Browser.UserAgent = DefaultUserAgent
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
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
		Browser: BrowserConfig{
			UserAgent:     DefaultUserAgent,
			FetchTimeout:  30 * time.Second,
			RatePerSecond: 0,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
