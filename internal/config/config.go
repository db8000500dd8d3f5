// Package config loads the settings of the zth05 demo.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Bus     BusConfig     `yaml:"bus"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type BusConfig struct {
	Name      string `yaml:"name"`     // i2creg bus name, empty for the default bus
	Addr      uint16 `yaml:"addr"`     // 7-bit address
	SpeedHz   int64  `yaml:"speed_hz"` // 0 uses the driver default
	Simulated bool   `yaml:"simulated"`
}

type DisplayConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay"`
	BusyTimeout time.Duration `yaml:"busy_timeout"`
	Off         bool          `yaml:"display_off"`
	Dump        bool          `yaml:"dump"`
	Interval    time.Duration `yaml:"interval"`
	Fahrenheit  bool          `yaml:"fahrenheit"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // text or json
	File       string `yaml:"file"`   // empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables the endpoint
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Bus: BusConfig{
			Addr: 0x3E,
		},
		Display: DisplayConfig{
			SettleDelay: time.Millisecond,
			BusyTimeout: 10 * time.Millisecond,
			Interval:    2 * time.Second,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads path over the defaults, then validates and normalizes the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	Normalize(cfg)
	return cfg, nil
}
