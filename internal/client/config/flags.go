package config

import (
	"flag"
	"os"
	"time"

	"github.com/Stay03/transcribeThis/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-r int      retry attempts after the first try (default from Config)
//	-d string   path to the local token database
//	-o string   listen address of the OAuth callback server
//	-l string   log level (debug, info, warn, error)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-r", "-d", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.IntVar(&cfg.RetryAttempts, "r", cfg.RetryAttempts, "retry attempts after the first try")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local token database")
	fs.StringVar(&cfg.OAuthCallbackAddr, "o", cfg.OAuthCallbackAddr, "listen address of the OAuth callback server")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
