package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if GRIDIRON_CONFIG is set
//  3. env (prefix GRIDIRON_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GRIDIRON_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: GRIDIRON_SEED, GRIDIRON_TEAM_COUNT, ...
	// Map env keys like GRIDIRON_TEAM_COUNT -> team_count (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("GRIDIRON_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gridiron_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.TeamCount < 2 {
		return fmt.Errorf("%w: team_count must be at least 2, got %d", ErrInvalidConfig, c.TeamCount)
	}
	if c.Seasons < 1 {
		return fmt.Errorf("%w: seasons must be at least 1, got %d", ErrInvalidConfig, c.Seasons)
	}
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("%w: game: %v", ErrInvalidConfig, err)
	}
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("%w: tuning: %v", ErrInvalidConfig, err)
	}
	return nil
}
