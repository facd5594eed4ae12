package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/flagx"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "8h"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerBaseURL        string         `json:"server_base_url"`
	DatabasePath         string         `json:"database_path"`
	ImageCacheDir        string         `json:"image_cache_dir"`
	SyncInterval         timex.Duration `json:"sync_interval"`
	OverdueCheckInterval timex.Duration `json:"overdue_check_interval"`
	NotifyMaxAttempts    int            `json:"notify_max_attempts"`
	NotifyBackoffBase    timex.Duration `json:"notify_backoff_base"`
}

// parseJson overlays Config with values loaded from a JSON file named by the
// -c/-config flags. Missing file path means no JSON is loaded. Read or
// unmarshal errors panic (caller may recover); zero values in the file do
// not override defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ImageCacheDir != "" {
		cfg.ImageCacheDir = jc.ImageCacheDir
	}
	if jc.SyncInterval.Duration != 0 {
		cfg.SyncInterval = time.Duration(jc.SyncInterval.Duration)
	}
	if jc.OverdueCheckInterval.Duration != 0 {
		cfg.OverdueCheckInterval = time.Duration(jc.OverdueCheckInterval.Duration)
	}
	if jc.NotifyMaxAttempts != 0 {
		cfg.NotifyMaxAttempts = jc.NotifyMaxAttempts
	}
	if jc.NotifyBackoffBase.Duration != 0 {
		cfg.NotifyBackoffBase = time.Duration(jc.NotifyBackoffBase.Duration)
	}
}
