package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the shell settings read from the environment at startup.
type Config struct {
	WindowWidth    float32       `env:"LUCKYDRAW_WINDOW_WIDTH" envDefault:"1100"`
	WindowHeight   float32       `env:"LUCKYDRAW_WINDOW_HEIGHT" envDefault:"720"`
	LogDir         string        `env:"LUCKYDRAW_LOG_DIR"`
	StatusTTL      time.Duration `env:"LUCKYDRAW_STATUS_TTL" envDefault:"5s"`
	ExcludeWinners bool          `env:"LUCKYDRAW_EXCLUDE_WINNERS" envDefault:"true"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.WindowWidth < 400 || c.WindowHeight < 300 {
		return fmt.Errorf("window size %.0fx%.0f is below the 400x300 minimum", c.WindowWidth, c.WindowHeight)
	}
	if c.StatusTTL <= 0 {
		return fmt.Errorf("status ttl must be positive, got %s", c.StatusTTL)
	}
	return nil
}
