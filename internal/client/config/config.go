package config

import "time"

// Config holds runtime settings for the transcribeThis CLI.
//
// Units: RequestTimeout and ActivityRefreshInterval are time.Durations;
// RetryAttempts counts retries after the first attempt.
type Config struct {
	APIBaseURL              string
	RequestTimeout          time.Duration
	RetryAttempts           int
	DatabasePath            string
	OAuthCallbackAddr       string
	ActivityRefreshInterval time.Duration
	LogLevel                string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.RetryAttempts = 3
	c.DatabasePath = "transcribe.db"
	c.OAuthCallbackAddr = "127.0.0.1:0"
	c.ActivityRefreshInterval = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present), and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
