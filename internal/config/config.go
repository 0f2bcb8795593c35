// Package config defines process configuration and loading.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and environment.
// - External errors are wrapped via this package's sentinel errors.
package config

import (
	"runtime"

	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/tuning"
)

// Config contains process configuration for season and calibration runs.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the /metrics listen address, e.g. ":9090".
	// Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// Seed is the base seed for season and calibration runs.
	Seed int64 `koanf:"seed"`

	// Workers bounds the game simulation worker pool.
	Workers int `koanf:"workers"`

	// TeamCount sets the synthetic league size.
	TeamCount int `koanf:"team_count"`

	// Seasons sets how many seasons a calibration sweep runs.
	Seasons int `koanf:"seasons"`

	// RosterJitterSeed, when non-zero, varies synthetic roster ratings.
	RosterJitterSeed int64 `koanf:"roster_jitter_seed"`

	// Game holds the per-game clock and play limits.
	Game model.GameConfig `koanf:"game"`

	// Tuning holds the calibration multipliers threaded into every game.
	Tuning tuning.Config `koanf:"tuning"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		MetricsAddr: ":9090",
		Seed:        0,
		Workers:     runtime.NumCPU(),
		TeamCount:   8,
		Seasons:     5,
		Game:        model.DefaultGameConfig(),
		Tuning:      tuning.Default(),
	}
}
