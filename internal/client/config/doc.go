// Package config loads runtime configuration for the secdash client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-d string   path to the local identity database
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "12s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000",
//	  "database_path": "secdash.db",
//	  "request_timeout": "12s",
//	  "message_delay": "100ms",
//	  "long_message_delay": "200ms",
//	  "settle_delay": "500ms",
//	  "cursor_blink": "500ms"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings including playback timing
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
