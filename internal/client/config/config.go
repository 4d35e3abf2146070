package config

import "time"

// Config holds runtime settings for the secdash client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - DatabasePath: path to the local sqlite identity database.
//   - RequestTimeout: per-request timeout for API calls.
//   - MessageDelay/LongMessageDelay/SettleDelay/CursorBlink: playback timing
//     for the simulated terminal.
//
// Units: every interval is a time.Duration (e.g., 12*time.Second).
type Config struct {
	APIBaseURL       string
	DatabasePath     string
	RequestTimeout   time.Duration
	MessageDelay     time.Duration
	LongMessageDelay time.Duration
	SettleDelay      time.Duration
	CursorBlink      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.DatabasePath = "secdash.db"
	c.RequestTimeout = 12 * time.Second
	c.MessageDelay = 100 * time.Millisecond
	c.LongMessageDelay = 200 * time.Millisecond
	c.SettleDelay = 500 * time.Millisecond
	c.CursorBlink = 500 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
