package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from TRANSCRIBE_* environment
// variables. A .env file in the working directory is loaded first, without
// overriding variables already set in the real environment. Malformed numeric
// values panic, matching the other loaders.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("TRANSCRIBE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("TRANSCRIBE_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("TRANSCRIBE_RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RetryAttempts = n
	}
	if v := os.Getenv("TRANSCRIBE_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("TRANSCRIBE_OAUTH_ADDR"); v != "" {
		cfg.OAuthCallbackAddr = v
	}
	if v := os.Getenv("TRANSCRIBE_ACTIVITY_REFRESH"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.ActivityRefreshInterval = d
	}
	if v := os.Getenv("TRANSCRIBE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
