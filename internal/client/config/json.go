package config

import (
	"encoding/json"
	"os"

	"github.com/avoronov/secdash/internal/flagx"
	"github.com/avoronov/secdash/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "12s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL       string         `json:"api_base_url"`
	DatabasePath     string         `json:"database_path"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	MessageDelay     timex.Duration `json:"message_delay"`
	LongMessageDelay timex.Duration `json:"long_message_delay"`
	SettleDelay      timex.Duration `json:"settle_delay"`
	CursorBlink      timex.Duration `json:"cursor_blink"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies fields the file actually sets into the provided Config; absent
//     fields keep their current values.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseEnv -> parseJson -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
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
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MessageDelay.Duration != 0 {
		cfg.MessageDelay = jc.MessageDelay.Duration
	}
	if jc.LongMessageDelay.Duration != 0 {
		cfg.LongMessageDelay = jc.LongMessageDelay.Duration
	}
	if jc.SettleDelay.Duration != 0 {
		cfg.SettleDelay = jc.SettleDelay.Duration
	}
	if jc.CursorBlink.Duration != 0 {
		cfg.CursorBlink = jc.CursorBlink.Duration
	}
}
