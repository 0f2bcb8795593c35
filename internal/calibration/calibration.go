// Package calibration runs multi-season sweeps over synthetic leagues
// and compares league-average metrics against target bands, suggesting
// bounded tuning-multiplier adjustments.
package calibration

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/statbook"
	"github.com/gridsim/gridiron/internal/domain/tuning"
	"github.com/gridsim/gridiron/internal/league"
	"github.com/gridsim/gridiron/internal/season"
	"github.com/gridsim/gridiron/pkg/logger"
)

// Band is an inclusive target range for one league metric.
type Band struct {
	Lower float64
	Upper float64
}

// Targets are the league-average bands the tuning multipliers aim for.
var Targets = map[string]Band{
	"plays_per_team":    {Lower: 60, Upper: 75},
	"completion_pct":    {Lower: 0.58, Upper: 0.68},
	"yards_per_attempt": {Lower: 6.0, Upper: 7.8},
	"pressure_rate":     {Lower: 0.05, Upper: 0.12},
	"sack_rate":         {Lower: 0.05, Upper: 0.09},
	"int_rate":          {Lower: 0.015, Upper: 0.03},
	"rush_ypc":          {Lower: 4.0, Upper: 4.7},
	"penalties":         {Lower: 4.0, Upper: 9.0},
}

// metricParams maps each metric to the tuning multiplier that moves it.
var metricParams = []struct {
	metric string
	param  string
}{
	{"completion_pct", "completion_mod"},
	{"pressure_rate", "pressure_mod"},
	{"sack_rate", "sack_distance"},
	{"int_rate", "int_mod"},
	{"yards_per_attempt", "yac_mod"},
	{"rush_ypc", "rush_block_mod"},
	{"penalties", "penalty_rate_mod"},
}

// Suggestion pairs the current multiplier with the suggested one.
type Suggestion struct {
	Current   float64
	Suggested float64
}

// Metrics is the outcome of one calibration sweep.
type Metrics struct {
	LeagueAverages map[string]float64
	MetricSpreads  map[string]Band
	Suggestions    map[string]Suggestion
}

// Options parameterize a calibration sweep.
type Options struct {
	Seasons   int // defaults to 5
	TeamCount int // defaults to 8
	BaseSeed  int64
	Workers   int
	Config    model.GameConfig
	Tuning    tuning.Config
}

// Run simulates opts.Seasons seasons of synthetic leagues and aggregates
// per-team metrics against the targets. Aggregation is single-threaded;
// games inside each season may run on parallel workers.
func Run(ctx context.Context, opts Options) (Metrics, error) {
	if opts.Seasons < 1 {
		opts.Seasons = 5
	}
	if opts.TeamCount < 2 {
		opts.TeamCount = 8
	}
	if opts.Tuning == (tuning.Config{}) {
		opts.Tuning = tuning.Default()
	}
	log := logger.Get().Named("calibration")

	allMetrics := map[string][]float64{}
	spreads := map[string]Band{}

	for offset := 0; offset < opts.Seasons; offset++ {
		seed := opts.BaseSeed + int64(offset)
		teams := league.BuildLeague(opts.TeamCount, 0)
		result, err := season.Simulate(ctx, teams, season.Options{
			Seed:    seed,
			Config:  opts.Config,
			Tuning:  opts.Tuning,
			Workers: opts.Workers,
		})
		if err != nil {
			return Metrics{}, fmt.Errorf("calibration season %d: %w", offset, err)
		}

		seasonMetrics := aggregateMetrics(result)
		for _, key := range sortedKeys(seasonMetrics) {
			values := seasonMetrics[key]
			if len(values) == 0 {
				continue
			}
			allMetrics[key] = append(allMetrics[key], values...)
			low, high := values[0], values[0]
			for _, v := range values[1:] {
				low = math.Min(low, v)
				high = math.Max(high, v)
			}
			if current, ok := spreads[key]; ok {
				spreads[key] = Band{Lower: math.Min(current.Lower, low), Upper: math.Max(current.Upper, high)}
			} else {
				spreads[key] = Band{Lower: low, Upper: high}
			}
		}

		log.Debug(ctx, "calibration season complete",
			logger.Int("season", offset),
			logger.Int("games", len(result.GameResults)))
	}

	averages := averageMetrics(allMetrics)
	suggestions := suggestAdjustments(averages, opts.Tuning)

	log.Info(ctx, "calibration sweep complete",
		logger.Int("seasons", opts.Seasons),
		logger.Int("teams", opts.TeamCount))

	return Metrics{
		LeagueAverages: averages,
		MetricSpreads:  spreads,
		Suggestions:    suggestions,
	}, nil
}

// aggregateMetrics computes per-team metric values for one season, keyed
// by metric name. Teams are walked in sorted id order.
func aggregateMetrics(result season.SeasonResult) map[string][]float64 {
	gameCounts := map[string]int{}
	for _, summary := range result.GameResults {
		gameCounts[summary.HomeTeam]++
		gameCounts[summary.AwayTeam]++
	}

	teamIDs := make([]string, 0, len(result.TeamBooks))
	for id := range result.TeamBooks {
		teamIDs = append(teamIDs, id)
	}
	sort.Strings(teamIDs)

	metrics := map[string][]float64{}
	for _, id := range teamIDs {
		teamMetrics := computeTeamMetrics(result.TeamBooks[id], gameCounts[id])
		for key, value := range teamMetrics {
			metrics[key] = append(metrics[key], value)
		}
	}
	return metrics
}

// computeTeamMetrics reduces one team's season book into league metrics.
func computeTeamMetrics(book *statbook.Book, gamesPlayed int) map[string]float64 {
	box := book.Boxscore()

	var completions, attempts, passYards, sacksTaken, interceptions, rushYards, rushAttempts float64
	for _, line := range box.Players {
		completions += line.PassCompletions
		attempts += line.PassAttempts
		passYards += line.PassYards
		sacksTaken += line.SacksTaken
		interceptions += line.InterceptionsThrown
		rushYards += line.RushYards
		rushAttempts += line.RushAttempts
	}

	offense := box.Teams[statbook.TeamOffense]
	plays := offense.Plays
	pressures := offense.Pressures

	penalties := 0.0
	for _, event := range book.Events() {
		if event.Type == statbook.EventPenalty {
			penalties++
		}
	}

	games := float64(gamesPlayed)
	if games < 1 {
		games = 1
	}

	metrics := map[string]float64{}
	metrics["plays_per_team"] = safeDiv(plays, games)
	metrics["completion_pct"] = safeDiv(completions, attempts)
	metrics["yards_per_attempt"] = safeDiv(passYards, attempts)
	metrics["pressure_rate"] = math.Min(1.0, safeDiv(pressures, attempts))
	metrics["sack_rate"] = safeDiv(sacksTaken, attempts)
	metrics["int_rate"] = safeDiv(interceptions, attempts)
	metrics["rush_ypc"] = safeDiv(rushYards, rushAttempts)
	metrics["penalties"] = penalties / games
	return metrics
}

func averageMetrics(metricLists map[string][]float64) map[string]float64 {
	averages := map[string]float64{}
	for key := range Targets {
		averages[key] = 0.0
	}
	for key, values := range metricLists {
		sum := 0.0
		count := 0
		for _, v := range values {
			if v < 0 {
				continue
			}
			sum += v
			count++
		}
		if count > 0 {
			averages[key] = sum / float64(count)
		}
	}
	return averages
}

// suggestAdjustments proposes multiplier changes for metrics outside
// their target band, bounded to +/-10% per sweep.
func suggestAdjustments(averages map[string]float64, cfg tuning.Config) map[string]Suggestion {
	current := map[string]float64{
		"completion_mod":   cfg.CompletionMod,
		"pressure_mod":     cfg.PressureMod,
		"sack_distance":    cfg.SackDistance,
		"int_mod":          cfg.IntMod,
		"yac_mod":          cfg.YACMod,
		"rush_block_mod":   cfg.RushBlockMod,
		"penalty_rate_mod": cfg.PenaltyRateMod,
	}

	suggestions := map[string]Suggestion{}
	for _, mapping := range metricParams {
		currentMultiplier := current[mapping.param]
		suggested := currentMultiplier
		value := averages[mapping.metric]
		if target, ok := Targets[mapping.metric]; ok && value > 0 {
			if value < target.Lower || value > target.Upper {
				midpoint := (target.Lower + target.Upper) / 2
				ratio := midpoint / value
				ratio = math.Max(0.9, math.Min(1.1, ratio))
				suggested = round4(currentMultiplier * ratio)
			}
		}
		suggestions[mapping.param] = Suggestion{
			Current:   round4(currentMultiplier),
			Suggested: suggested,
		}
	}
	return suggestions
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	return numerator / denominator
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
