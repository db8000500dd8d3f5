package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Bus.Addr == 0 || cfg.Bus.Addr > 0x7F {
		return fmt.Errorf("bus: addr 0x%X is not a 7-bit address", cfg.Bus.Addr)
	}
	if cfg.Bus.SpeedHz < 0 {
		return fmt.Errorf("bus: speed_hz must not be negative")
	}

	if cfg.Display.SettleDelay < 0 {
		return fmt.Errorf("display: settle_delay must not be negative")
	}
	if cfg.Display.BusyTimeout < 0 {
		return fmt.Errorf("display: busy_timeout must not be negative")
	}
	if cfg.Display.Interval < 0 {
		return fmt.Errorf("display: interval must not be negative")
	}

	if cfg.Log.Level != "" {
		if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", cfg.Log.Format)
	}
	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 {
		return fmt.Errorf("log: rotation limits must not be negative")
	}
	return nil
}
