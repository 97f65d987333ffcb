package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/utils"
)

// Config holds settings read from the environment. CLI flags default to
// these values, so an explicit flag always wins.
type Config struct {
	Path         string `env:"HEARTLINE_CONFIG" envDefault:"~/.config/heartline/heartline.db"`
	Debug        bool   `env:"HEARTLINE_DEBUG" envDefault:"false"`
	UnlockPolicy string `env:"HEARTLINE_UNLOCK_POLICY" envDefault:"date-gated"`
	Timezone     string `env:"HEARTLINE_TIMEZONE" envDefault:"Local"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a validated Config
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown unlock policies and timezones
func (c Config) Validate() error {
	if !c.Policy().IsValid() {
		return fmt.Errorf("unknown unlock policy %q (expected %q or %q)", c.UnlockPolicy, constants.PolicyDateGated, constants.PolicyAllUnlocked)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	return nil
}

// Policy returns the configured unlock policy
func (c Config) Policy() constants.UnlockPolicy {
	return constants.UnlockPolicy(c.UnlockPolicy)
}
