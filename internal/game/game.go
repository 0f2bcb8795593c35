// Package game runs a full game between two rosters: the down, drive,
// and clock state machine on top of the play engine, with play calling,
// penalties, fatigue, injuries, and special teams.
//
// A game is deterministic with respect to its seed. All randomness is
// drawn from one rng stream owned by the simulating goroutine, and every
// roster scan iterates in sorted id order.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gridsim/gridiron/internal/domain/aicall"
	"github.com/gridsim/gridiron/internal/domain/fatigue"
	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/rng"
	"github.com/gridsim/gridiron/internal/domain/specialteams"
	"github.com/gridsim/gridiron/internal/domain/statbook"
	"github.com/gridsim/gridiron/internal/domain/tuning"
	"github.com/gridsim/gridiron/internal/engine"
)

// ErrMissingPosition marks a roster that cannot field a required play.
// This is a configuration error and aborts the game.
var ErrMissingPosition = errors.New("missing required position")

const (
	driveBreakRecovery = 0.25

	basePenaltyRate = 0.07

	fieldGoalTime = 5.0
	puntTime      = 6.0
	kickoffTime   = 6.0
)

// Team pairs a team id with its roster.
type Team struct {
	ID     string
	Roster model.Roster
}

// Options parameterize one game simulation.
type Options struct {
	Seed   int64
	Config model.GameConfig
	Tuning tuning.Config
}

// DriveSummary describes one possession.
type DriveSummary struct {
	Offense       string
	Quarter       int
	Plays         int
	Yards         float64
	Duration      float64
	StartYardline float64
	EndYardline   float64
	Result        string
}

// GameSummary is the complete outcome of one game.
type GameSummary struct {
	GameID        string
	HomeTeam      string
	AwayTeam      string
	HomeScore     int
	AwayScore     int
	Drives        []DriveSummary
	TotalPlays    int
	Penalties     int
	Injuries      int
	TimeRemaining float64
	Winner        string // empty on a tie
	HomeBoxscore  statbook.Boxscore
	AwayBoxscore  statbook.Boxscore
	HomeEvents    []statbook.Event
	AwayEvents    []statbook.Event
}

type orchestrator struct {
	cfg    model.GameConfig
	tuning tuning.Config
}

// Simulate plays a full game between home and away.
func Simulate(home, away Team, opts Options) (GameSummary, error) {
	cfg := opts.Config
	if cfg.Quarters == 0 {
		cfg = model.DefaultGameConfig()
	}
	if err := cfg.Validate(); err != nil {
		return GameSummary{}, fmt.Errorf("game config: %w", err)
	}
	if opts.Tuning == (tuning.Config{}) {
		opts.Tuning = tuning.Default()
	}

	g := &orchestrator{cfg: cfg, tuning: opts.Tuning}
	r := rng.New(opts.Seed)

	teams := [2]*teamState{
		newTeamState(home.ID, home.Roster, statbook.New()),
		newTeamState(away.ID, away.Roster, statbook.New()),
	}

	offenseIdx := int(r.Intn(2))
	defenseIdx := 1 - offenseIdx

	totalGameTime := cfg.QuarterLength * float64(cfg.Quarters)
	remainingTime := totalGameTime

	totalPlays := 0
	totalPenalties := 0
	totalInjuries := 0
	driveIndex := 0
	var drives []DriveSummary

	nextStartYardline := cfg.KickoffYardline

	for remainingTime > 0 && totalPlays < cfg.MaxPlays {
		offense := teams[offenseIdx]
		defense := teams[defenseIdx]

		yardline := clampYardline(nextStartYardline)
		down := 1
		yardsToFirst := minFloat(10.0, 100.0-yardline)
		driveYards := 0.0
		driveDuration := 0.0
		drivePlays := 0
		driveResult := "CLOCK"
		startYardline := yardline
		startQuarter := g.currentQuarter(remainingTime)

		for remainingTime > 0 && totalPlays < cfg.MaxPlays {
			if down == 4 && yardsToFirst > 2.0 {
				outcome, timeSpent, newStart, points := g.handleSpecialDown(offense, defense, yardline, r)
				timeSpent = minFloat(timeSpent, remainingTime)
				remainingTime -= timeSpent
				driveDuration += timeSpent
				totalPlays++
				drivePlays++
				driveResult = outcome
				offense.score += points
				nextStartYardline = newStart
				offenseIdx, defenseIdx = defenseIdx, offenseIdx
				break
			}

			currentQuarter := g.currentQuarter(remainingTime)

			defenseCall := aicall.CallDefense(aicall.DefenseContext{
				Down:          down,
				YardsToFirst:  yardsToFirst,
				Yardline:      yardline,
				RemainingTime: remainingTime,
			}, r)

			play, err := g.selectPlay(offense, defense, down, yardsToFirst, yardline, remainingTime, currentQuarter, r)
			if err != nil {
				return GameSummary{}, fmt.Errorf("select play for %s: %w", offense.id, err)
			}

			playSeed := r.Int31()
			result, err := engine.Simulate(play, offense.healthyRoster(), defense.healthyRoster(), engine.Options{
				Seed:             playSeed,
				FatigueModifiers: combinedFatigueModifiers(offense, defense),
				PressureBonus:    0.8 + defenseCall.BlitzRate,
				Tuning:           g.tuning,
			})
			if err != nil {
				return GameSummary{}, fmt.Errorf("simulate play for %s: %w", offense.id, err)
			}

			totalPlays++
			drivePlays++

			timeSpent := minFloat(g.estimateTimeSpent(result, r), remainingTime)
			remainingTime -= timeSpent
			driveDuration += timeSpent

			recordEvents(offense, defense, result.Events)
			g.applyFatigue(offense, defense, play, result)
			totalInjuries += g.checkInjuries(offense, result, driveIndex, r)

			if penalty := g.maybePenalty(result, r); penalty != nil {
				totalPenalties++
				preYardline := yardline
				chargedTeam := statbook.TeamDefense
				if penalty.OnOffense {
					chargedTeam = statbook.TeamOffense
				}
				penaltyEvent := statbook.Event{
					Type: statbook.EventPenalty, Team: chargedTeam,
					Yards: penalty.Yards,
					Meta:  map[string]any{"automatic_first": penalty.AutomaticFirst},
				}
				offense.book.Note(penaltyEvent)
				defense.book.Note(penaltyEvent)

				// The play is nullified; only the penalty yardage moves the ball.
				if penalty.OnOffense {
					yardline = clampYardline(preYardline - penalty.Yards)
					yardsToFirst += penalty.Yards
				} else {
					yardline = clampYardline(preYardline + penalty.Yards)
					if penalty.AutomaticFirst {
						down = 1
						yardsToFirst = minFloat(10.0, 100.0-yardline)
					} else {
						yardsToFirst -= penalty.Yards
						if yardsToFirst <= 0.5 {
							down = 1
							yardsToFirst = minFloat(10.0, 100.0-yardline)
						}
					}
				}
				driveYards += yardline - preYardline
				continue
			}

			driveYards += result.YardsGained
			yardline = clampYardline(yardline + result.YardsGained)
			yardsToFirst = maxFloat(0.0, yardsToFirst-result.YardsGained)

			if result.Interception {
				driveResult = "INT"
				nextStartYardline = flipField(yardline)
				offenseIdx, defenseIdx = defenseIdx, offenseIdx
				break
			}

			if yardline >= 100.0 {
				offense.score += 7
				driveResult = "TD"
				nextStartYardline = g.kickoff(offense, defense, r)
				offenseIdx, defenseIdx = defenseIdx, offenseIdx
				kickoffSpent := minFloat(kickoffTime, remainingTime)
				remainingTime -= kickoffSpent
				driveDuration += kickoffSpent
				break
			}

			if yardsToFirst <= 0.5 {
				down = 1
				yardsToFirst = minFloat(10.0, 100.0-yardline)
			} else {
				down++
				if down > 4 {
					driveResult = "TURNOVER"
					nextStartYardline = flipField(yardline)
					offenseIdx, defenseIdx = defenseIdx, offenseIdx
					break
				}
			}

			if remainingTime <= 0 {
				driveResult = "CLOCK"
				nextStartYardline = yardline
				break
			}
		}

		drives = append(drives, DriveSummary{
			Offense:       offense.id,
			Quarter:       startQuarter,
			Plays:         drivePlays,
			Yards:         driveYards,
			Duration:      driveDuration,
			StartYardline: startYardline,
			EndYardline:   clampYardline(yardline),
			Result:        driveResult,
		})

		driveIndex++
		teams[0].driveBreak(driveIndex)
		teams[1].driveBreak(driveIndex)

		if remainingTime <= 0 || totalPlays >= cfg.MaxPlays {
			break
		}
	}

	homeState, awayState := teams[0], teams[1]
	winner := ""
	if homeState.score > awayState.score {
		winner = homeState.id
	} else if awayState.score > homeState.score {
		winner = awayState.id
	}

	gameID := uuid.NewSHA1(uuid.NameSpaceOID,
		[]byte(fmt.Sprintf("gridiron|%s|%s|%d", home.ID, away.ID, opts.Seed)))

	return GameSummary{
		GameID:        gameID.String(),
		HomeTeam:      homeState.id,
		AwayTeam:      awayState.id,
		HomeScore:     homeState.score,
		AwayScore:     awayState.score,
		Drives:        drives,
		TotalPlays:    totalPlays,
		Penalties:     totalPenalties,
		Injuries:      totalInjuries,
		TimeRemaining: maxFloat(0.0, remainingTime),
		Winner:        winner,
		HomeBoxscore:  homeState.book.Boxscore(),
		AwayBoxscore:  awayState.book.Boxscore(),
		HomeEvents:    homeState.book.Events(),
		AwayEvents:    awayState.book.Events(),
	}, nil
}

func (g *orchestrator) currentQuarter(remainingTime float64) int {
	elapsed := g.cfg.QuarterLength*float64(g.cfg.Quarters) - remainingTime
	quarter := int(elapsed/g.cfg.QuarterLength) + 1
	if quarter < 1 {
		quarter = 1
	}
	if quarter > g.cfg.Quarters {
		quarter = g.cfg.Quarters
	}
	return quarter
}

// estimateTimeSpent draws clock consumption from per-outcome bands.
func (g *orchestrator) estimateTimeSpent(result engine.Result, r *rng.Source) float64 {
	switch {
	case result.Interception:
		return r.Uniform(8.0, 14.0)
	case result.Sack:
		return r.Uniform(18.0, 24.0)
	case result.PlayType == "pass" && !result.Completed:
		return r.Uniform(6.0, 9.0)
	case result.PlayType == "pass" && result.Completed:
		return r.Uniform(18.0, 28.0)
	default:
		return r.Uniform(20.0, 32.0)
	}
}

// handleSpecialDown resolves a fourth down out of range: field goal try
// inside the opponent 35, punt otherwise. Possession always changes.
// Returns the drive result tag, time spent, the next offense's starting
// yardline, and points scored.
func (g *orchestrator) handleSpecialDown(offense, defense *teamState, yardline float64, r *rng.Source) (string, float64, float64, int) {
	if yardline >= 65.0 {
		rating := 75
		if kicker, _ := offense.choosePlayer([]model.Position{model.PositionK}, nil, true); kicker != nil {
			rating = kicker.Attributes.Accuracy
		}
		outcome := specialteams.AttemptFieldGoal(yardline, rating, r)
		offense.book.Note(statbook.Event{
			Type: statbook.EventFieldGoal, Team: statbook.TeamOffense, Yards: float64(outcome.Distance),
			Meta: map[string]any{"made": outcome.Made},
		})
		if outcome.Made {
			return "FG", fieldGoalTime, g.kickoff(offense, defense, r), 3
		}
		return "FGMISS", fieldGoalTime, flipField(yardline), 0
	}

	strength := 70
	if punter, _ := offense.choosePlayer([]model.Position{model.PositionP, model.PositionK}, nil, true); punter != nil {
		strength = punter.Attributes.Strength
	}
	outcome := specialteams.Punt(yardline, strength, returnerSpeed(defense), r)
	offense.book.Note(statbook.Event{
		Type: statbook.EventPunt, Team: statbook.TeamOffense, Yards: outcome.NetYards,
		Meta: map[string]any{"touchback": outcome.Touchback, "return_yards": outcome.ReturnYards},
	})
	return "PUNT", puntTime, outcome.StartYardline, 0
}

// kickoff resolves the receiving team's start after a score.
func (g *orchestrator) kickoff(kicking, receiving *teamState, r *rng.Source) float64 {
	outcome := specialteams.Kickoff(g.cfg.KickoffYardline, returnerSpeed(receiving), r)
	kicking.book.Note(statbook.Event{
		Type: statbook.EventKickoff, Team: statbook.TeamOffense,
		Meta: map[string]any{"touchback": outcome.Touchback, "start_yardline": outcome.StartYardline},
	})
	return outcome.StartYardline
}

func returnerSpeed(team *teamState) int {
	returner, _ := team.choosePlayer([]model.Position{model.PositionWR, model.PositionRB, model.PositionCB}, nil, true)
	if returner == nil {
		return 70
	}
	return returner.Attributes.Speed
}

// appliedPenalty is an accepted penalty with the side it is charged to.
type appliedPenalty struct {
	OnOffense      bool
	Yards          float64
	AutomaticFirst bool
}

// maybePenalty rolls one post-play penalty draw. Pass plays, pressures,
// and sacks elevate the rate.
func (g *orchestrator) maybePenalty(result engine.Result, r *rng.Source) *appliedPenalty {
	rate := basePenaltyRate * g.tuning.PenaltyRateMod
	if result.PlayType == "pass" {
		rate += 0.015
	}
	if result.Pressure {
		rate += 0.02
	}
	if result.Sack {
		rate += 0.01
	}
	if r.Float64() >= rate {
		return nil
	}

	roll := r.Float64()
	var penaltyType specialteams.PenaltyType
	if result.PlayType == "pass" {
		switch {
		case roll < 0.25:
			penaltyType = specialteams.PenaltyOffsides
		case roll < 0.50:
			penaltyType = specialteams.PenaltyFalseStart
		case roll < 0.80:
			penaltyType = specialteams.PenaltyHolding
		default:
			penaltyType = specialteams.PenaltyDPI
		}
	} else {
		switch {
		case roll < 0.30:
			penaltyType = specialteams.PenaltyOffsides
		case roll < 0.60:
			penaltyType = specialteams.PenaltyFalseStart
		default:
			penaltyType = specialteams.PenaltyHolding
		}
	}

	catalog := specialteams.Catalog[penaltyType]
	applied := specialteams.ApplyPenalty(catalog, true)
	return &appliedPenalty{
		OnOffense:      catalog.OnOffense,
		Yards:          applied.Yards,
		AutomaticFirst: applied.AutomaticFirst,
	}
}

// applyFatigue accrues role-weighted loads on the offense and base plus
// event bonuses on the defense.
func (g *orchestrator) applyFatigue(offense, defense *teamState, play model.Play, result engine.Result) {
	for _, assignment := range play.Assignments {
		load := 0.05
		switch assignment.Role {
		case model.RoleCarry:
			load = 0.12
		case model.RoleRoute:
			load = 0.10
		case model.RoleBlock:
			load = 0.08
		case model.RolePass:
			load = 0.06
		}
		offense.fatigueOf(assignment.PlayerID).Apply(load, fatigue.DefaultRecovery)
	}

	bonuses := map[string]float64{}
	for _, event := range result.Events {
		if event.Team != statbook.TeamDefense {
			continue
		}
		switch event.Type {
		case statbook.EventTackle:
			bonuses[event.PlayerID] += 0.04
		case statbook.EventSack:
			bonuses[event.PlayerID] += 0.05
		case statbook.EventPressure:
			bonuses[event.PlayerID] += 0.02
		}
	}
	count := 0
	for _, id := range defense.sortedIDs() {
		if !defense.available(id) {
			continue
		}
		if count >= 11 {
			break
		}
		count++
		defense.fatigueOf(id).Apply(0.06+bonuses[id], fatigue.DefaultRecovery)
	}
}

// checkInjuries rolls injury checks for the offensive players brought
// down on this play and returns how many landed.
func (g *orchestrator) checkInjuries(offense *teamState, result engine.Result, driveIndex int, r *rng.Source) int {
	injured := 0
	for _, event := range result.Events {
		if event.Type != statbook.EventTackle || event.TargetID == "" {
			continue
		}
		if _, ok := offense.roster[event.TargetID]; !ok {
			continue
		}
		impact := 0.01
		if result.Sack {
			impact = 0.02
		}
		outcome := fatigue.CheckInjury(r, impact, offense.roster[event.TargetID].Attributes, fatigue.DefaultInjuryBaseRate)
		if !outcome.Injured {
			continue
		}
		injured++
		offense.injuries[event.TargetID] = injuryRecord{severity: outcome.Severity, drive: driveIndex}
		offense.book.Note(statbook.Event{
			Type: statbook.EventInjury, Timestamp: event.Timestamp, Team: statbook.TeamOffense,
			PlayerID: event.TargetID,
			Meta:     map[string]any{"severity": outcome.Severity},
		})
	}
	return injured
}

// recordEvents books every event for the offense and the defensive
// subset for the defense.
func recordEvents(offense, defense *teamState, events []statbook.Event) {
	offense.book.Extend(events)
	for _, event := range events {
		if event.Team == statbook.TeamDefense {
			defense.book.Note(event)
		}
	}
}

func combinedFatigueModifiers(offense, defense *teamState) map[string]float64 {
	mods := offense.fatigueModifiers()
	for id, m := range defense.fatigueModifiers() {
		mods[id] = m
	}
	return mods
}

func flipField(yardline float64) float64 {
	return clampYardline(100.0 - yardline)
}

func clampYardline(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
