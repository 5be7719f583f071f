package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the replay tool's environment-driven settings. The input
// path itself is positional, not configuration.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`

	// MetricsAddr enables a Prometheus listener (e.g. ":9091") for
	// watching long replays live. Empty disables it.
	MetricsAddr string `env:"METRICS_ADDR"`

	// SampleCapacity is the preallocation hint for the latency sample
	// buffer; the buffer still grows past it when the input is larger.
	SampleCapacity int `env:"SAMPLE_CAPACITY" envDefault:"1048576"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.SampleCapacity < 0 {
		return fmt.Errorf("sample capacity must be non-negative, got %d", c.SampleCapacity)
	}
	return nil
}
