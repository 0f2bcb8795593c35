// Package specialteams models field goals, punts, kickoffs, and the
// penalty catalog. Outcomes are stochastic results, not errors.
package specialteams

import "github.com/gridsim/gridiron/internal/domain/rng"

// PenaltyType names an entry in the fixed penalty catalog.
type PenaltyType string

const (
	PenaltyOffsides   PenaltyType = "offsides"
	PenaltyFalseStart PenaltyType = "false_start"
	PenaltyHolding    PenaltyType = "holding"
	PenaltyDPI        PenaltyType = "defensive_pass_interference"
)

// Penalty describes one catalog entry: assessed yardage, which side it is
// charged to, and whether acceptance forces an automatic first down.
type Penalty struct {
	Type           PenaltyType
	Yards          float64
	OnOffense      bool
	AutomaticFirst bool
}

// Catalog is the fixed penalty table.
var Catalog = map[PenaltyType]Penalty{
	PenaltyOffsides:   {Type: PenaltyOffsides, Yards: 5, OnOffense: false},
	PenaltyFalseStart: {Type: PenaltyFalseStart, Yards: 5, OnOffense: true},
	PenaltyHolding:    {Type: PenaltyHolding, Yards: 10, OnOffense: true},
	PenaltyDPI:        {Type: PenaltyDPI, Yards: 15, OnOffense: false, AutomaticFirst: true},
}

// PenaltyResult is an applied (accepted or declined) penalty.
type PenaltyResult struct {
	Accepted       bool
	Yards          float64
	AutomaticFirst bool
}

// ApplyPenalty resolves acceptance of a catalog penalty.
func ApplyPenalty(penalty Penalty, accept bool) PenaltyResult {
	if !accept {
		return PenaltyResult{}
	}
	return PenaltyResult{
		Accepted:       true,
		Yards:          penalty.Yards,
		AutomaticFirst: penalty.AutomaticFirst,
	}
}

// KickOutcome is the result of a field goal attempt.
type KickOutcome struct {
	Made     bool
	Distance int
}

// AttemptFieldGoal evaluates a kick from the given yardline. The effective
// distance is 100 - yardline + 17 (snap depth plus end zone), floored at
// 20. Make probability is a distance-banded base rate adjusted by the
// kicker's accuracy rating and clamped to [0.10, 0.99].
func AttemptFieldGoal(yardline float64, kickerRating int, r *rng.Source) KickOutcome {
	distance := 100.0 - yardline + 17.0
	if distance < 20.0 {
		distance = 20.0
	}
	var baseProb float64
	switch {
	case distance < 40:
		baseProb = 0.845
	case distance < 50:
		baseProb = 0.75
	default:
		baseProb = 0.60
	}
	probability := baseProb + float64(kickerRating-75)*0.002
	if probability < 0.10 {
		probability = 0.10
	}
	if probability > 0.99 {
		probability = 0.99
	}
	return KickOutcome{Made: r.Float64() < probability, Distance: int(distance)}
}

// PuntOutcome is the result of a punt, expressed as the receiving team's
// starting yardline (already flipped to their perspective).
type PuntOutcome struct {
	StartYardline float64
	NetYards      float64
	ReturnYards   float64
	Touchback     bool
}

// Punt kicks the ball away from the given yardline. Net distance is a
// bounded draw adjusted by the punter's strength; a ball carried past the
// goal line is a touchback at the receiving 20, otherwise the returner's
// speed shapes the runback.
func Punt(yardline float64, punterStrength, returnerSpeed int, r *rng.Source) PuntOutcome {
	net := 38.0 + r.Uniform(-5.0, 5.0) + float64(punterStrength-70)*0.08
	landing := yardline + net
	if landing >= 100.0 {
		return PuntOutcome{StartYardline: 20.0, NetYards: net, Touchback: true}
	}
	returnYards := r.Uniform(0.0, 8.0) + float64(returnerSpeed-70)*0.05
	if returnYards < 0 {
		returnYards = 0
	}
	start := 100.0 - landing + returnYards
	if start < 15.0 {
		start = 15.0
	}
	if start > 80.0 {
		start = 80.0
	}
	return PuntOutcome{StartYardline: start, NetYards: net, ReturnYards: returnYards}
}

// KickoffOutcome is the result of a kickoff, expressed as the receiving
// team's starting yardline.
type KickoffOutcome struct {
	StartYardline float64
	Touchback     bool
}

// Kickoff resolves the receiving team's field position after a score. Deep
// kicks past the touchback threshold start at the configured touchback
// yardline; shorter kicks are returned, with returner speed shaping the
// runback.
func Kickoff(touchbackYardline float64, returnerSpeed int, r *rng.Source) KickoffOutcome {
	depth := r.Uniform(60.0, 75.0)
	if depth >= 72.0 {
		return KickoffOutcome{StartYardline: touchbackYardline, Touchback: true}
	}
	returnYards := r.Uniform(15.0, 30.0) + float64(returnerSpeed-70)*0.08
	start := 100.0 - (35.0 + depth) + returnYards
	if start < 5.0 {
		start = 5.0
	}
	if start > 50.0 {
		start = 50.0
	}
	return KickoffOutcome{StartYardline: start}
}
