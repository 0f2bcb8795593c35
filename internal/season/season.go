// Package season schedules and runs full seasons. Game tasks are pure
// functions of (team ids, rosters, seed, config, tuning) and may run on
// a bounded worker pool; finalization is single-threaded and walks games
// in fixed (week, schedule) order, so workers=1 and workers=N produce
// identical results.
package season

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/statbook"
	"github.com/gridsim/gridiron/internal/domain/tuning"
	"github.com/gridsim/gridiron/internal/game"
	"github.com/gridsim/gridiron/pkg/logger"
	"github.com/gridsim/gridiron/pkg/metrics"
)

// Options parameterize one season run.
type Options struct {
	Seed    int64
	Label   string // defaults to the decimal seed
	Config  model.GameConfig
	Tuning  tuning.Config
	Workers int // defaults to 1
}

// Standing is one team's final record.
type Standing struct {
	TeamID string
	Wins   int
	Losses int
}

// SeasonResult is the complete outcome of one season.
type SeasonResult struct {
	Standings   []Standing
	GameResults []game.GameSummary
	TeamBooks   map[string]*statbook.Book
}

type teamSeason struct {
	id     string
	roster model.Roster
	book   *statbook.Book
	wins   int
	losses int
}

type gameOutcome struct {
	summary game.GameSummary
	err     error
}

// Simulate runs one full double round robin season.
func Simulate(ctx context.Context, teams map[string]model.Roster, opts Options) (SeasonResult, error) {
	if len(teams) < 2 {
		return SeasonResult{}, fmt.Errorf("season needs at least 2 teams, have %d", len(teams))
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Label == "" {
		opts.Label = strconv.FormatInt(opts.Seed, 10)
	}
	cfg := opts.Config
	if cfg.Quarters == 0 {
		cfg = model.DefaultGameConfig()
	}
	if opts.Tuning == (tuning.Config{}) {
		opts.Tuning = tuning.Default()
	}

	log := logger.Get().Named("season")

	teamIDs := make([]string, 0, len(teams))
	for id := range teams {
		teamIDs = append(teamIDs, id)
	}
	sort.Strings(teamIDs)

	schedule := MakeSchedule(teamIDs, opts.Seed)
	seeds := SeedManager{BaseSeed: opts.Seed}

	seasonTeams := map[string]*teamSeason{}
	for _, id := range teamIDs {
		seasonTeams[id] = &teamSeason{id: id, roster: teams[id], book: statbook.New()}
	}

	gamesByWeek := map[int][]Matchup{}
	weekNumbers := []int{}
	for _, matchup := range schedule {
		if _, ok := gamesByWeek[matchup.Week]; !ok {
			weekNumbers = append(weekNumbers, matchup.Week)
		}
		gamesByWeek[matchup.Week] = append(gamesByWeek[matchup.Week], matchup)
	}
	sort.Ints(weekNumbers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	workers := newPool(runCtx, opts.Workers, len(schedule))
	defer workers.close()

	tieBreaks := newTieBreaker(seeds.StreamSeed(opts.Label, "tiebreak"))

	var gameResults []game.GameSummary
	for _, week := range weekNumbers {
		games := gamesByWeek[week]
		outcomes := make([]gameOutcome, len(games))

		done := make(chan int, len(games))
		for i, matchup := range games {
			i, matchup := i, matchup
			gameSeed := seeds.GameSeed(opts.Label, week, matchup.Home, matchup.Away)
			workers.submit(func(taskCtx context.Context) {
				defer func() { done <- i }()
				if err := taskCtx.Err(); err != nil {
					outcomes[i].err = err
					return
				}
				start := time.Now()
				summary, err := game.Simulate(
					game.Team{ID: matchup.Home, Roster: seasonTeams[matchup.Home].roster},
					game.Team{ID: matchup.Away, Roster: seasonTeams[matchup.Away].roster},
					game.Options{Seed: gameSeed, Config: cfg, Tuning: opts.Tuning},
				)
				if err != nil {
					outcomes[i].err = err
					return
				}
				outcomes[i].summary = summary
				metrics.RecordGameSimulated()
				metrics.RecordPlaysSimulated(summary.TotalPlays)
				metrics.RecordPlaysPerGame(summary.TotalPlays)
				metrics.RecordGameDuration(float64(time.Since(start).Milliseconds()))
				for n := 0; n < summary.Penalties; n++ {
					metrics.RecordPenaltyCalled()
				}
				for n := 0; n < summary.Injuries; n++ {
					metrics.RecordInjury()
				}
			})
		}
		for range games {
			<-done
		}

		for i, matchup := range games {
			if err := outcomes[i].err; err != nil {
				metrics.RecordGameTaskError()
				cancel()
				return SeasonResult{}, fmt.Errorf("week %d %s at %s: %w", week, matchup.Away, matchup.Home, err)
			}
			finalizeGame(&outcomes[i].summary, seasonTeams[matchup.Home], seasonTeams[matchup.Away], tieBreaks)
			gameResults = append(gameResults, outcomes[i].summary)
		}

		log.Debug(ctx, "week complete",
			logger.Int("week", week),
			logger.Int("games", len(games)))
	}

	standings := make([]Standing, 0, len(teamIDs))
	for _, id := range teamIDs {
		team := seasonTeams[id]
		standings = append(standings, Standing{TeamID: team.id, Wins: team.wins, Losses: team.losses})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		if standings[i].Losses != standings[j].Losses {
			return standings[i].Losses < standings[j].Losses
		}
		return standings[i].TeamID < standings[j].TeamID
	})

	teamBooks := map[string]*statbook.Book{}
	for id, team := range seasonTeams {
		teamBooks[id] = team.book
	}

	metrics.RecordSeasonSimulated()
	log.Info(ctx, "season complete",
		logger.String("label", opts.Label),
		logger.Int("teams", len(teamIDs)),
		logger.Int("games", len(gameResults)),
		logger.Int("workers", opts.Workers))

	return SeasonResult{
		Standings:   standings,
		GameResults: gameResults,
		TeamBooks:   teamBooks,
	}, nil
}

// finalizeGame folds one game into the season state. Events move from
// the summary into the season-long books; ties are settled by a coin
// flip from the dedicated tie-break stream.
func finalizeGame(summary *game.GameSummary, home, away *teamSeason, tieBreaks *tieBreaker) {
	if len(summary.HomeEvents) > 0 {
		home.book.Extend(summary.HomeEvents)
	}
	if len(summary.AwayEvents) > 0 {
		away.book.Extend(summary.AwayEvents)
	}
	summary.HomeEvents = nil
	summary.AwayEvents = nil

	switch {
	case summary.HomeScore > summary.AwayScore:
		home.wins++
		away.losses++
	case summary.AwayScore > summary.HomeScore:
		away.wins++
		home.losses++
	case tieBreaks.homeWins():
		home.wins++
		away.losses++
	default:
		away.wins++
		home.losses++
	}
}
