package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first, if present; variables already set in
// the process environment win over the file.
//
// Recognized variables:
//
//	SECDASH_API_URL          base URL of the backend API
//	SECDASH_DB_PATH          path to the local identity database
//	SECDASH_REQUEST_TIMEOUT  request timeout as a Go duration string ("12s")
//
// Malformed durations are ignored and the current value is kept.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SECDASH_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("SECDASH_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("SECDASH_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
