package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Stay03/transcribeThis/internal/flagx"
	"github.com/Stay03/transcribeThis/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. Absent fields leave the runtime Config untouched.
type JsonConfig struct {
	APIBaseURL              string          `json:"api_base_url"`
	RequestTimeout          *timex.Duration `json:"request_timeout"`
	RetryAttempts           *int            `json:"retry_attempts"`
	DatabasePath            string          `json:"database_path"`
	OAuthCallbackAddr       string          `json:"oauth_callback_addr"`
	ActivityRefreshInterval *timex.Duration `json:"activity_refresh_interval"`
	LogLevel                string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flag. When neither flag is present nothing is loaded.
// Read or unmarshal errors panic (caller should recover if desired).
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.RetryAttempts != nil {
		cfg.RetryAttempts = *jc.RetryAttempts
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.OAuthCallbackAddr != "" {
		cfg.OAuthCallbackAddr = jc.OAuthCallbackAddr
	}
	if jc.ActivityRefreshInterval != nil {
		cfg.ActivityRefreshInterval = time.Duration(jc.ActivityRefreshInterval.Duration)
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
