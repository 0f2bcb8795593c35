// Package tuning holds the calibration constants for the simulator.
//
// A Config is an immutable value threaded through every simulation call.
// Calibration sweeps build new Config values instead of mutating shared
// state, so concurrent season runs can never race on tuning data.
package tuning

import "fmt"

// Config scales the stochastic models of the play engine and orchestrator.
// All modifiers default to 1.0 (neutral).
type Config struct {
	CompletionMod  float64 `koanf:"completion_mod"`
	PressureMod    float64 `koanf:"pressure_mod"`
	SackDistance   float64 `koanf:"sack_distance"`
	IntMod         float64 `koanf:"int_mod"`
	YACMod         float64 `koanf:"yac_mod"`
	RushBlockMod   float64 `koanf:"rush_block_mod"`
	PenaltyRateMod float64 `koanf:"penalty_rate_mod"`
}

// Validate rejects non-positive multipliers.
func (c Config) Validate() error {
	multipliers := map[string]float64{
		"completion_mod":   c.CompletionMod,
		"pressure_mod":     c.PressureMod,
		"sack_distance":    c.SackDistance,
		"int_mod":          c.IntMod,
		"yac_mod":          c.YACMod,
		"rush_block_mod":   c.RushBlockMod,
		"penalty_rate_mod": c.PenaltyRateMod,
	}
	for name, v := range multipliers {
		if v <= 0 {
			return fmt.Errorf("tuning %s must be positive, got %v", name, v)
		}
	}
	return nil
}

// Default returns the neutral tuning configuration.
func Default() Config {
	return Config{
		CompletionMod:  1.0,
		PressureMod:    1.0,
		SackDistance:   1.0,
		IntMod:         1.0,
		YACMod:         1.0,
		RushBlockMod:   1.0,
		PenaltyRateMod: 1.0,
	}
}
