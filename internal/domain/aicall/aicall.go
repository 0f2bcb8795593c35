// Package aicall implements situational play calling for both sides of
// the ball. Calls are pure functions of the game context plus an injected
// RNG stream: the same context and draw always yield the same choice.
package aicall

import "github.com/gridsim/gridiron/internal/domain/rng"

// PlayCategory is an offensive play call.
type PlayCategory string

const (
	CategoryRun          PlayCategory = "run"
	CategoryPass         PlayCategory = "pass"
	CategorySidelinePass PlayCategory = "sideline_pass"
)

// OffenseContext is the situation presented to the offensive caller.
type OffenseContext struct {
	Down          int
	YardsToFirst  float64
	Yardline      float64
	RemainingTime float64
	ScoreDiff     int // offense score minus defense score
	Quarter       int
}

// CallOffense picks a play category with situational weighting: pass on
// long third/fourth downs, run in short yardage, urgent passing late or
// when trailing, and clock-killing runs with a late lead.
func CallOffense(ctx OffenseContext, r *rng.Source) PlayCategory {
	weights := map[PlayCategory]float64{
		CategoryRun:          1.0,
		CategoryPass:         1.0,
		CategorySidelinePass: 0.0,
	}

	yards := ctx.YardsToFirst
	down := ctx.Down
	remaining := ctx.RemainingTime
	scoreDiff := ctx.ScoreDiff

	if down <= 0 {
		down = 1
	}
	if yards <= 0 {
		yards = 0.5
	}

	switch {
	case down == 3 && yards >= 7:
		weights[CategoryPass] += 5.0
		weights[CategoryRun] *= 0.2
		weights[CategorySidelinePass] += 1.5
	case down == 3 && yards <= 2:
		weights[CategoryRun] += 4.0
		weights[CategoryPass] *= 0.5
	case down == 4:
		weights[CategoryPass] += 3.0
		weights[CategoryRun] *= 0.3
	}

	if remaining <= 180.0 {
		weights[CategoryPass] += 3.0
		weights[CategorySidelinePass] += 2.0
		if scoreDiff < 0 {
			weights[CategoryPass] += 2.0
			weights[CategorySidelinePass] += 3.0
			weights[CategoryRun] *= 0.4
		}
	}

	if remaining <= 120.0 {
		weights[CategorySidelinePass] += 2.0
		weights[CategoryPass] += 2.0
		weights[CategoryRun] *= 0.5
	}

	if scoreDiff > 7 && remaining <= 240.0 {
		weights[CategoryRun] += 2.0
		weights[CategoryPass] *= 0.7
		weights[CategorySidelinePass] *= 0.5
	}

	if ctx.Yardline >= 80.0 {
		weights[CategoryPass] += 1.5
		weights[CategorySidelinePass] += 0.5
	}

	// Fixed draw order keeps the weighted pick deterministic.
	order := []PlayCategory{CategoryRun, CategoryPass, CategorySidelinePass}
	total := 0.0
	for _, category := range order {
		if weights[category] < 0 {
			weights[category] = 0
		}
		total += weights[category]
	}
	if total == 0 {
		return CategoryRun
	}

	roll := r.Float64() * total
	cumulative := 0.0
	for _, category := range order {
		cumulative += weights[category]
		if roll <= cumulative {
			return category
		}
	}
	return CategoryRun
}

// DefenseContext is the situation presented to the defensive caller.
type DefenseContext struct {
	Down          int
	YardsToFirst  float64
	Yardline      float64
	RemainingTime float64
}

// DefenseCall is a defensive scheme selection.
type DefenseCall struct {
	Front     string // even, odd, dime, nickel
	Coverage  string // zone, man, press
	BlitzRate float64
}

// CallDefense picks a front, coverage, and blitz rate for the situation.
func CallDefense(ctx DefenseContext, r *rng.Source) DefenseCall {
	if ctx.Down >= 3 && ctx.YardsToFirst >= 7 {
		return DefenseCall{Front: "dime", Coverage: "zone", BlitzRate: 0.2}
	}
	if ctx.Down == 3 && ctx.YardsToFirst <= 2 {
		return DefenseCall{Front: "odd", Coverage: "press", BlitzRate: 0.45}
	}
	if ctx.Yardline <= 20 {
		return DefenseCall{Front: "even", Coverage: "press", BlitzRate: 0.35}
	}
	choice := r.Float64()
	if choice < 0.4 {
		return DefenseCall{Front: "nickel", Coverage: "zone", BlitzRate: 0.25}
	}
	if choice < 0.7 {
		return DefenseCall{Front: "even", Coverage: "man", BlitzRate: 0.2}
	}
	return DefenseCall{Front: "odd", Coverage: "press", BlitzRate: 0.3}
}
