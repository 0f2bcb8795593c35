// Package engine resolves a single play of football with a fixed-timestep
// kinematic simulation.
//
// # Determinism
//
// Simulate is deterministic with respect to Options.Seed: identical inputs
// produce an identical Result, including the full event sequence. All
// randomness flows through one rng.Source seeded per call, and entities
// are iterated in a fixed order, so neither map ordering nor scheduling
// can perturb the outcome.
package engine

import (
	"errors"

	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/rng"
	"github.com/gridsim/gridiron/internal/domain/statbook"
	"github.com/gridsim/gridiron/internal/domain/tuning"
)

// Kinematic constants, in yards and seconds.
const (
	DefaultTickRate = 20.0 // ticks per second
	DefaultDuration = 8.0  // seconds per play ceiling

	maxAccel      = 7.5  // yards / second^2
	fatigueDecay  = 0.04 // in-play speed decay per second
	ballBaseSpeed = 22.0 // yards / second
	tackleRadius  = 1.5  // yards

	// SackLoss is the fixed yardage lost when the passer goes down.
	SackLoss = -1.5
)

// ErrRosterComposition marks fatal roster/assignment mismatches. These are
// configuration errors: they are raised immediately and never retried.
var ErrRosterComposition = errors.New("roster composition")

// Options parameterize one play simulation.
type Options struct {
	Seed             int64
	Duration         float64
	TickRate         float64
	FatigueModifiers map[string]float64
	PressureBonus    float64
	Tuning           tuning.Config
}

// Result is the aggregate outcome of one play. Immutable once returned.
type Result struct {
	PlayType     string
	YardsGained  float64
	AirYards     float64
	YAC          float64
	Duration     float64
	Pressure     bool
	Sack         bool
	Interception bool
	Completed    bool
	Events       []statbook.Event
}

// ballState tracks possession or flight of the ball.
type ballState struct {
	ownerID       string
	position      [2]float64
	velocity      [2]float64
	inAir         bool
	targetOwnerID string
	arriveTime    float64
	hasArrival    bool
}

// Simulate runs one play to termination: sack, interception, incompletion,
// tackle, or clock expiry. Exactly one terminal play_end event is emitted.
func Simulate(play model.Play, offenseRoster, defenseRoster model.Roster, opts Options) (Result, error) {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.PressureBonus == 0 {
		opts.PressureBonus = 1.0
	}
	if opts.Tuning == (tuning.Config{}) {
		opts.Tuning = tuning.Default()
	}
	r := rng.New(opts.Seed)
	dt := 1.0 / opts.TickRate
	cfg := opts.Tuning

	pressureFactor := opts.PressureBonus
	if pressureFactor < 0.25 {
		pressureFactor = 0.25
	}
	if pressureFactor > 2.5 {
		pressureFactor = 2.5
	}

	offenses, err := initOffense(play, offenseRoster, opts.FatigueModifiers)
	if err != nil {
		return Result{}, err
	}
	if len(offenses.ordered) == 0 {
		return Result{}, errors.Join(ErrRosterComposition, errors.New("play has no assignments"))
	}
	defenses := initDefense(defenseRoster, opts.FatigueModifiers)

	qb := selectQB(offenses)
	primaryCarrier := qb
	if primaryCarrier == nil {
		primaryCarrier = findPrimaryCarrier(offenses)
	}

	carrierID := ""
	ballPos := [2]float64{0, 0}
	if primaryCarrier != nil {
		carrierID = primaryCarrier.player.PlayerID
		ballPos = primaryCarrier.position
	}
	ball := &ballState{ownerID: carrierID, position: ballPos}

	var events []statbook.Event
	events = append(events, statbook.Event{
		Type: statbook.EventSnap, Timestamp: 0.0, Team: statbook.TeamOffense, PlayerID: carrierID,
	})

	rushAttemptLogged := false
	if primaryCarrier != nil && primaryCarrier.role == model.RoleCarry && qb == nil {
		events = append(events, statbook.Event{
			Type: statbook.EventRushAttempt, Timestamp: 0.0, Team: statbook.TeamOffense,
			PlayerID: primaryCarrier.player.PlayerID,
		})
		rushAttemptLogged = true
	}

	var passTarget *entity
	if assignment := findPrimaryReceiver(play); assignment != nil {
		passTarget = offenses.get(assignment.PlayerID)
	}

	passReleaseTime := -1.0
	if qb != nil {
		passReleaseTime = samplePassRelease(qb, r)
	}

	released := false
	attemptLogged := false
	completionLogged := false
	pressure := false
	airYards := 0.0

	totalTicks := int(opts.Duration * opts.TickRate)
	pressuredDefenders := map[string]bool{}
	passerID := ""
	if qb != nil {
		passerID = qb.player.PlayerID
	}
	runnerID := carrierID
	receiverID := ""

	fin := func(at float64, playType string, yards, air, yac float64, pressure, sack, interception, completed bool, runner, receiver string) Result {
		return finalize(events, at, playType, yards, air, yac, pressure, sack, interception, completed, passerID, runner, receiver)
	}

	for tick := 0; tick < totalTicks; tick++ {
		timeElapsed := float64(tick) * dt
		fatigue := 1 - fatigueDecay*timeElapsed
		if fatigue < 0.5 {
			fatigue = 0.5
		}

		for _, e := range offenses.ordered {
			e.advance(timeElapsed, dt, fatigue, nil)
		}
		for _, e := range defenses.ordered {
			target := defenseTargetPosition(ball, offenses, defenses)
			e.advance(timeElapsed, dt, fatigue, &target)
		}

		if qb != nil {
			pressureDistance := cfg.PressureMod / pressureFactor
			if pressureDistance < 0.02 {
				pressureDistance = 0.02
			}
			sackDistance := cfg.SackDistance / pressureFactor
			if sackDistance < 0.5 {
				sackDistance = 0.5
			}
			for _, defender := range defenses.ordered {
				d := distanceBetween(defender.position, qb.position)
				if d < pressureDistance && !pressuredDefenders[defender.player.PlayerID] {
					pressure = true
					pressuredDefenders[defender.player.PlayerID] = true
					events = append(events, statbook.Event{
						Type: statbook.EventPressure, Timestamp: timeElapsed, Team: statbook.TeamDefense,
						PlayerID: defender.player.PlayerID, TargetID: passerID,
						Meta: map[string]any{"passer_id": passerID, "defender_id": defender.player.PlayerID},
					})
				}
				if d < sackDistance && !released {
					pressure = true
					if !attemptLogged {
						targetID := ""
						if passTarget != nil {
							targetID = passTarget.player.PlayerID
						}
						events = append(events, statbook.Event{
							Type: statbook.EventPassAttempt, Timestamp: timeElapsed, Team: statbook.TeamOffense,
							PlayerID: passerID, TargetID: targetID,
						})
						attemptLogged = true
					}
					events = append(events, statbook.Event{
						Type: statbook.EventSack, Timestamp: timeElapsed, Team: statbook.TeamDefense,
						PlayerID: defender.player.PlayerID, TargetID: passerID, Yards: SackLoss,
						Meta: map[string]any{"qb_id": passerID, "yards_lost": SackLoss},
					})
					events = append(events, statbook.Event{
						Type: statbook.EventTackle, Timestamp: timeElapsed, Team: statbook.TeamDefense,
						PlayerID: defender.player.PlayerID, TargetID: passerID, Yards: SackLoss,
						Meta: map[string]any{
							"play_type": "pass", "passer_id": passerID, "runner_id": passerID,
							"receiver_id": "", "air_yards": 0.0, "yac": 0.0,
						},
					})
					return fin(timeElapsed, "pass", SackLoss, 0, 0, pressure, true, false, false, passerID, ""), nil
				}
			}
		}

		if !released && qb != nil && passTarget != nil && passReleaseTime >= 0 && timeElapsed >= passReleaseTime {
			released = true
			if !attemptLogged {
				events = append(events, statbook.Event{
					Type: statbook.EventPassAttempt, Timestamp: timeElapsed, Team: statbook.TeamOffense,
					PlayerID: passerID, TargetID: passTarget.player.PlayerID,
				})
				attemptLogged = true
			}
			ball.ownerID = ""
			ball.inAir = true
			ball.targetOwnerID = passTarget.player.PlayerID
			qbPos := qb.position
			targetFuture := predictRoutePosition(passTarget, timeElapsed, passReleaseTime, r)
			airVector := [2]float64{targetFuture[0] - qbPos[0], targetFuture[1] - qbPos[1]}
			dist := length(airVector)
			throwSpeed := ballBaseSpeed + float64(qb.player.Attributes.ThrowingPower-70)*0.25
			if throwSpeed < 15.0 {
				throwSpeed = 15.0
			}
			if throwSpeed > 35.0 {
				throwSpeed = 35.0
			}
			flightTime := dist / throwSpeed
			ball.arriveTime = timeElapsed + flightTime
			ball.hasArrival = true
			targetFuture[0] += r.Normal(0.0, accuracyStd(qb.player.Attributes.Accuracy))
			if dist > 0 {
				denom := flightTime
				if denom < dt {
					denom = dt
				}
				ball.velocity = [2]float64{
					(targetFuture[0] - qbPos[0]) / denom,
					(targetFuture[1] - qbPos[1]) / denom,
				}
			} else {
				ball.velocity = [2]float64{0, throwSpeed}
			}
			ball.position = qbPos
			airYards = targetFuture[1] - qbPos[1]
		}

		if ball.inAir {
			ball.position[0] += ball.velocity[0] * dt
			ball.position[1] += ball.velocity[1] * dt

			if ball.hasArrival && timeElapsed >= ball.arriveTime {
				targetEntity := offenses.get(ball.targetOwnerID)
				nearest := nearestDefender(ball.position, defenses)
				completed, intercepted := resolveCatch(qb, targetEntity, nearest, cfg, r)
				ball.inAir = false
				switch {
				case completed && targetEntity != nil:
					receiverID = targetEntity.player.PlayerID
					runnerID = receiverID
					events = append(events, statbook.Event{
						Type: statbook.EventPassCompletion, Timestamp: timeElapsed, Team: statbook.TeamOffense,
						PlayerID: receiverID, TargetID: passerID, Yards: airYards,
						Meta: map[string]any{
							"passer_id": passerID, "receiver_id": receiverID, "air_yards": airYards,
						},
					})
					completionLogged = true
					ball.ownerID = receiverID
					ball.position = targetEntity.position
				case intercepted && nearest != nil:
					defenderID := nearest.player.PlayerID
					events = append(events, statbook.Event{
						Type: statbook.EventInterception, Timestamp: timeElapsed, Team: statbook.TeamDefense,
						PlayerID: defenderID, TargetID: passerID,
						Meta: map[string]any{"passer_id": passerID, "defender_id": defenderID},
					})
					return fin(timeElapsed, "pass", 0, nonNegative(airYards), 0, pressure, false, true, false, "", ""), nil
				default:
					targetID := ""
					if passTarget != nil {
						targetID = passTarget.player.PlayerID
					}
					events = append(events, statbook.Event{
						Type: statbook.EventPassIncomplete, Timestamp: timeElapsed, Team: statbook.TeamOffense,
						PlayerID: passerID, TargetID: targetID,
					})
					return fin(timeElapsed, "pass", 0, nonNegative(airYards), 0, pressure, false, false, false, "", ""), nil
				}
			}
		}

		if ball.ownerID != "" {
			owner := offenses.get(ball.ownerID)
			if owner == nil {
				owner = defenses.get(ball.ownerID)
			}
			if owner != nil {
				ball.position = owner.position
			}

			if owner != nil && owner.team == "offense" {
				for _, defender := range defenses.ordered {
					if distanceBetween(defender.position, owner.position) >= tackleRadius {
						continue
					}
					if owner.role == model.RoleCarry && qb == nil && !completionLogged && !rushAttemptLogged {
						events = append(events, statbook.Event{
							Type: statbook.EventRushAttempt, Timestamp: timeElapsed, Team: statbook.TeamOffense,
							PlayerID: owner.player.PlayerID,
						})
						rushAttemptLogged = true
					}
					if attemptTackle(defender.player.Attributes, owner.player.Attributes, r) {
						yards, yac := downfieldResult(owner.position[1], airYards, released, cfg)
						recID := ""
						if released {
							recID = owner.player.PlayerID
						}
						events = append(events, statbook.Event{
							Type: statbook.EventTackle, Timestamp: timeElapsed, Team: statbook.TeamDefense,
							PlayerID: defender.player.PlayerID, TargetID: owner.player.PlayerID, Yards: yards,
							Meta: map[string]any{
								"play_type": playTypeLabel(released), "passer_id": passerID,
								"runner_id": owner.player.PlayerID, "receiver_id": recID,
								"air_yards": nonNegative(airYards), "yac": yac,
							},
						})
						return fin(timeElapsed, playTypeLabel(released), yards, nonNegative(airYards), yac,
							pressure, false, false, completionLogged, owner.player.PlayerID, recID), nil
					}
				}
			} else if owner != nil {
				// Defensive possession after a pick. Treat as a dead ball.
				events = append(events, statbook.Event{
					Type: statbook.EventTackle, Timestamp: timeElapsed, Team: statbook.TeamOffense,
					PlayerID: runnerID, TargetID: owner.player.PlayerID, Yards: 0,
					Meta: map[string]any{"play_type": "turnover", "passer_id": passerID},
				})
				return fin(timeElapsed, "pass", 0, nonNegative(airYards), 0, pressure, false, true, false, "", ""), nil
			}
		}
	}

	// Clock expired with the ball still live.
	if ball.ownerID != "" {
		if owner := offenses.get(ball.ownerID); owner != nil {
			yards, yac := downfieldResult(owner.position[1], airYards, released, cfg)
			recID := ""
			if released {
				recID = owner.player.PlayerID
			}
			events = append(events, statbook.Event{
				Type: statbook.EventTackle, Timestamp: opts.Duration, Team: statbook.TeamDefense,
				TargetID: owner.player.PlayerID, Yards: yards,
				Meta: map[string]any{
					"play_type": playTypeLabel(released), "passer_id": passerID,
					"runner_id": owner.player.PlayerID, "receiver_id": recID,
					"air_yards": nonNegative(airYards), "yac": yac,
				},
			})
			return fin(opts.Duration, playTypeLabel(released), yards, nonNegative(airYards), yac,
				pressure, false, false, completionLogged, owner.player.PlayerID, recID), nil
		}
	}

	return fin(opts.Duration, playTypeLabel(released), 0, nonNegative(airYards), 0,
		pressure, false, false, completionLogged, runnerID, receiverID), nil
}

func playTypeLabel(released bool) string {
	if released {
		return "pass"
	}
	return "run"
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// downfieldResult converts the carrier's field position into gained yards
// and yards-after-catch, applying the tuned pass/run modifiers.
func downfieldResult(yPosition, airYards float64, released bool, cfg tuning.Config) (yards, yac float64) {
	yards = yPosition
	air := nonNegative(airYards)
	if released {
		yac = nonNegative(yards - air)
		yac = clampYards(yac * cfg.YACMod)
		yards = clampYards(air + yac)
		return yards, yac
	}
	return clampYards(yards * cfg.RushBlockMod), 0
}

func clampYards(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func selectQB(offenses *entitySet) *entity {
	for _, e := range offenses.ordered {
		if e.role == model.RolePass {
			return e
		}
	}
	return nil
}

func findPrimaryReceiver(play model.Play) *model.Assignment {
	for i := range play.Assignments {
		if play.Assignments[i].Role == model.RoleRoute {
			return &play.Assignments[i]
		}
	}
	return nil
}

func findPrimaryCarrier(offenses *entitySet) *entity {
	for _, e := range offenses.ordered {
		if e.role == model.RoleCarry {
			return e
		}
	}
	if len(offenses.ordered) > 0 {
		return offenses.ordered[0]
	}
	return nil
}

// samplePassRelease draws the passer's release time. Lower awareness means
// slower reads; the draw is clamped to [0.6, 2.4] seconds.
func samplePassRelease(qb *entity, r *rng.Source) float64 {
	awareness := qb.player.Attributes.Awareness
	base := 1.4 - float64(awareness-70)*0.015
	release := base + r.Normal(0.0, 0.12)
	if release < 0.6 {
		release = 0.6
	}
	if release > 2.4 {
		release = 2.4
	}
	return release
}

// predictRoutePosition estimates where the receiver will be when the ball
// arrives, with lateral wobble.
func predictRoutePosition(e *entity, currentTime, releaseTime float64, r *rng.Source) [2]float64 {
	lead := releaseTime * 0.5
	if lead < 0.2 {
		lead = 0.2
	}
	predicted := routePosition(e.route, currentTime+lead)
	predicted[0] += r.Normal(0.0, 0.5)
	return predicted
}

func accuracyStd(accuracy int) float64 {
	std := float64(100-accuracy) / 25.0
	if std < 0.2 {
		std = 0.2
	}
	return std
}

// defenseTargetPosition computes what a defender chases: the ball's target
// while in flight, the current ball carrier, or the quarterback.
func defenseTargetPosition(ball *ballState, offenses, defenses *entitySet) [2]float64 {
	if ball.inAir && ball.targetOwnerID != "" {
		if target := offenses.get(ball.targetOwnerID); target != nil {
			return target.position
		}
	}
	if ball.ownerID != "" {
		owner := offenses.get(ball.ownerID)
		if owner == nil {
			owner = defenses.get(ball.ownerID)
		}
		if owner != nil {
			return owner.position
		}
	}
	if qb := selectQB(offenses); qb != nil {
		return qb.position
	}
	if carrier := findPrimaryCarrier(offenses); carrier != nil {
		return carrier.position
	}
	return [2]float64{0, 0}
}

func nearestDefender(position [2]float64, defenses *entitySet) *entity {
	var best *entity
	bestDist := -1.0
	for _, defender := range defenses.ordered {
		d := distanceBetween(position, defender.position)
		if best == nil || d < bestDist {
			best = defender
			bestDist = d
		}
	}
	return best
}

// resolveCatch settles an arriving pass: completion first, then a
// secondary interception roll on a miss.
func resolveCatch(qb, receiver, defender *entity, cfg tuning.Config, r *rng.Source) (completed, intercepted bool) {
	if qb == nil || receiver == nil {
		return false, false
	}
	qbSkill := float64(qb.player.Attributes.Accuracy+qb.player.Attributes.ThrowingPower) / 2
	wrSkill := float64(receiver.player.Attributes.Catching+receiver.player.Attributes.Agility) / 2
	defenderSkill := 50.0
	if defender != nil {
		defenderSkill = float64(defender.player.Attributes.Awareness+defender.player.Attributes.Agility) / 2
	}
	spread := (qbSkill + wrSkill) - defenderSkill
	completionProb := logistic(spread/12.0) * cfg.CompletionMod
	if completionProb > 0.99 {
		completionProb = 0.99
	}
	if r.Float64() < completionProb {
		return true, false
	}
	interceptionChance := logistic((defenderSkill-qbSkill)/15.0) * 0.35 * cfg.IntMod
	if interceptionChance > 0.95 {
		interceptionChance = 0.95
	}
	return false, r.Float64() < interceptionChance
}

// attemptTackle resolves a tackle attempt via a logistic contest of
// tackler and carrier attributes.
func attemptTackle(tackler, runner model.Attributes, r *rng.Source) bool {
	tackleSkill := float64(tackler.Tackling+tackler.Awareness) / 2
	evadeSkill := float64(runner.Agility+runner.Strength) / 2
	return r.Float64() < logistic((tackleSkill-evadeSkill)/20.0)
}

// finalize appends the terminal play_end event carrying all derived
// metadata needed by the stat book, and assembles the Result.
func finalize(events []statbook.Event, timestamp float64, playType string, yards, airYards, yac float64,
	pressure, sack, interception, completed bool, passerID, runnerID, receiverID string) Result {
	success := yards >= 4.0
	events = append(events, statbook.Event{
		Type: statbook.EventPlayEnd, Timestamp: timestamp, Team: statbook.TeamOffense,
		PlayerID: runnerID, TargetID: receiverID, Yards: yards,
		Meta: map[string]any{
			"play_type":    playType,
			"passer_id":    passerID,
			"runner_id":    runnerID,
			"receiver_id":  receiverID,
			"air_yards":    airYards,
			"yac":          yac,
			"success":      success,
			"interception": interception,
			"sack":         sack,
			"completed":    completed,
			"pressure":     pressure,
		},
	})
	return Result{
		PlayType:     playType,
		YardsGained:  yards,
		AirYards:     airYards,
		YAC:          yac,
		Duration:     timestamp,
		Pressure:     pressure,
		Sack:         sack,
		Interception: interception,
		Completed:    completed,
		Events:       events,
	}
}
