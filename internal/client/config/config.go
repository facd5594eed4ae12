// Package config handles configuration for the client component, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the invoice-tracker client.
//
// Fields:
//   - ServerBaseURL: root URL of the remote data service.
//   - DatabasePath: SQLite file backing the local mirror (":memory:" works).
//   - ImageCacheDir: directory for the scan image cache.
//   - SyncInterval: periodic background sync cadence.
//   - OverdueCheckInterval: cadence of the overdue-notification job.
//   - NotifyMaxAttempts: retry budget of one overdue-check period.
//   - NotifyBackoffBase: base delay of the overdue-check backoff.
type Config struct {
	ServerBaseURL        string
	DatabasePath         string
	ImageCacheDir        string
	SyncInterval         time.Duration
	OverdueCheckInterval time.Duration
	NotifyMaxAttempts    int
	NotifyBackoffBase    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "invoice-tracker.db"
	c.ImageCacheDir = "scan-cache"
	c.SyncInterval = 15 * time.Minute
	c.OverdueCheckInterval = 8 * time.Hour
	c.NotifyMaxAttempts = 3
	c.NotifyBackoffBase = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
