// Package config loads runtime configuration for the transcribeThis CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables (see parseEnv), optionally seeded from a .env
//     file in the working directory.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-r int      retry attempts after the first try
//	-d string   path to the local token database
//	-o string   listen address of the OAuth callback server
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.transcribethis.example/api",
//	  "request_timeout": "30s",
//	  "retry_attempts": 3,
//	  "database_path": "transcribe.db",
//	  "oauth_callback_addr": "127.0.0.1:0",
//	  "activity_refresh_interval": "30s",
//	  "log_level": "info"
//	}
//
// Primary API
//
//   - type Config                    — the runtime settings struct
//   - func LoadConfig() *Config      — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()  — sets sensible defaults
package config
