// Package fatigue models per-player fatigue accumulation and stochastic
// injury checks.
package fatigue

import (
	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/rng"
)

// DefaultRecovery is the passive recovery subtracted on every load apply.
const DefaultRecovery = 0.05

// State holds a fatigue scalar in [0, 1]. Zero value is fully rested.
type State struct {
	Value float64
}

// Apply adds load and subtracts recovery, clamping to [0, 1].
func (s *State) Apply(load, recovery float64) {
	s.Value += load - recovery
	if s.Value < 0 {
		s.Value = 0
	}
	if s.Value > 1 {
		s.Value = 1
	}
}

// Multiplier linearly reduces effective top speed as fatigue rises.
func (s *State) Multiplier() float64 {
	return 1.0 - 0.35*s.Value
}

// Severity tiers for injuries.
const (
	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

// Outcome is the result of one injury check.
type Outcome struct {
	Injured  bool
	Severity string
}

// DefaultInjuryBaseRate is the per-event injury probability before impact
// and toughness adjustments.
const DefaultInjuryBaseRate = 0.015

// CheckInjury rolls one injury check for a tackle or sack event. The
// probability is the base rate plus hit impact minus a toughness term
// derived from strength and tackling. Severity tiers: minor injuries
// return next drive, moderate and severe remove the player for the rest
// of the simulated game.
func CheckInjury(r *rng.Source, impact float64, attrs model.Attributes, baseRate float64) Outcome {
	toughness := float64(attrs.Strength+attrs.Tackling) / 200.0
	adjusted := baseRate + impact - toughness*0.01
	if adjusted < 0 {
		adjusted = 0
	}
	if r.Float64() >= adjusted {
		return Outcome{}
	}
	roll := r.Float64()
	switch {
	case roll < 0.7:
		return Outcome{Injured: true, Severity: SeverityMinor}
	case roll < 0.93:
		return Outcome{Injured: true, Severity: SeverityModerate}
	default:
		return Outcome{Injured: true, Severity: SeveritySevere}
	}
}
