package config

import (
	"strings"
	"time"
)

// Normalize fills in values left empty.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// The display refreshes at most a few times per second.
	if cfg.Display.Interval < 100*time.Millisecond {
		cfg.Display.Interval = 100 * time.Millisecond
	}
}
