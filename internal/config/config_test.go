package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultUserAgent, cfg.Browser.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.Browser.FetchTimeout)
	assert.Zero(t, cfg.Browser.RatePerSecond)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, DefaultUserAgent, cfg.Browser.UserAgent)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"ASTERIX_USER_AGENT":     "custom-agent/2.0",
		"ASTERIX_FETCH_TIMEOUT":  "5s",
		"ASTERIX_RATE_LIMIT_RPS": "2.5",
		"ASTERIX_LOG_LEVEL":      "debug",
		"ASTERIX_LOG_DEV":        "true",
	}
	for key, value := range envVars {
		require.NoError(t, os.Setenv(key, value))
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "custom-agent/2.0", cfg.Browser.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.Browser.FetchTimeout)
	assert.Equal(t, 2.5, cfg.Browser.RatePerSecond)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}
