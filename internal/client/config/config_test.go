package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerBaseURL)
	assert.Equal(t, "invoice-tracker.db", c.DatabasePath)
	assert.Equal(t, 15*time.Minute, c.SyncInterval)
	assert.Equal(t, 8*time.Hour, c.OverdueCheckInterval)
	assert.Equal(t, 3, c.NotifyMaxAttempts)
	assert.Equal(t, 30*time.Second, c.NotifyBackoffBase)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerBaseURL)
	assert.Equal(t, 8*time.Hour, cfg.OverdueCheckInterval)
}
