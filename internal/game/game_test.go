package game_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/statbook"
	"github.com/gridsim/gridiron/internal/game"
	"github.com/gridsim/gridiron/internal/league"
)

func shortConfig() model.GameConfig {
	return model.GameConfig{
		QuarterLength:   300.0,
		Quarters:        2,
		MaxPlays:        80,
		KickoffYardline: 25.0,
	}
}

func testTeams() (game.Team, game.Team) {
	return game.Team{ID: "HOME", Roster: league.BuildRoster("H", "HOME", nil)},
		game.Team{ID: "AWAY", Roster: league.BuildRoster("A", "AWAY", nil)}
}

var validDriveResults = map[string]bool{
	"TD": true, "FG": true, "FGMISS": true, "PUNT": true,
	"INT": true, "TURNOVER": true, "CLOCK": true,
}

func TestSimulateGameDeterminism(t *testing.T) {
	convey.Convey("Given the same teams, config, and seed", t, func() {
		home, away := testTeams()

		convey.Convey("Two runs produce identical summaries", func() {
			first, err1 := game.Simulate(home, away, game.Options{Seed: 42, Config: shortConfig()})
			second, err2 := game.Simulate(home, away, game.Options{Seed: 42, Config: shortConfig()})
			convey.So(err1, convey.ShouldBeNil)
			convey.So(err2, convey.ShouldBeNil)
			convey.So(reflect.DeepEqual(first, second), convey.ShouldBeTrue)
		})

		convey.Convey("The game id is stable across runs and seeds move it", func() {
			first, _ := game.Simulate(home, away, game.Options{Seed: 42, Config: shortConfig()})
			second, _ := game.Simulate(home, away, game.Options{Seed: 42, Config: shortConfig()})
			other, _ := game.Simulate(home, away, game.Options{Seed: 43, Config: shortConfig()})
			convey.So(first.GameID, convey.ShouldEqual, second.GameID)
			convey.So(first.GameID, convey.ShouldNotEqual, other.GameID)
		})

		convey.Convey("Different seeds change the course of the game", func() {
			distinct := map[int]bool{}
			for seed := int64(1); seed <= 10; seed++ {
				summary, err := game.Simulate(home, away, game.Options{Seed: seed, Config: shortConfig()})
				convey.So(err, convey.ShouldBeNil)
				distinct[summary.TotalPlays] = true
			}
			convey.So(len(distinct), convey.ShouldBeGreaterThan, 1)
		})
	})
}

func TestSimulateGameShape(t *testing.T) {
	convey.Convey("Given a short game with seed 42", t, func() {
		home, away := testTeams()
		summary, err := game.Simulate(home, away, game.Options{Seed: 42, Config: shortConfig()})

		convey.Convey("The game completes", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(summary.TotalPlays, convey.ShouldBeGreaterThan, 0)
			convey.So(summary.TotalPlays, convey.ShouldBeLessThanOrEqualTo, shortConfig().MaxPlays)
			convey.So(len(summary.Drives), convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Every drive is well-formed", func() {
			for _, drive := range summary.Drives {
				convey.So(drive.Plays, convey.ShouldBeGreaterThan, 0)
				convey.So(validDriveResults[drive.Result], convey.ShouldBeTrue)
				convey.So(drive.Offense == "HOME" || drive.Offense == "AWAY", convey.ShouldBeTrue)
				convey.So(drive.Quarter, convey.ShouldBeBetween, 0, shortConfig().Quarters+1)
				convey.So(drive.StartYardline, convey.ShouldBeBetween, -0.001, 100.001)
				convey.So(drive.EndYardline, convey.ShouldBeBetween, -0.001, 100.001)
			}
		})

		convey.Convey("The winner matches the score", func() {
			switch {
			case summary.HomeScore > summary.AwayScore:
				convey.So(summary.Winner, convey.ShouldEqual, "HOME")
			case summary.AwayScore > summary.HomeScore:
				convey.So(summary.Winner, convey.ShouldEqual, "AWAY")
			default:
				convey.So(summary.Winner, convey.ShouldEqual, "")
			}
		})

		convey.Convey("Scores are consistent with drive results", func() {
			points := map[string]int{}
			for _, drive := range summary.Drives {
				switch drive.Result {
				case "TD":
					points[drive.Offense] += 7
				case "FG":
					points[drive.Offense] += 3
				}
			}
			convey.So(summary.HomeScore, convey.ShouldEqual, points["HOME"])
			convey.So(summary.AwayScore, convey.ShouldEqual, points["AWAY"])
		})

		convey.Convey("Both event logs are populated", func() {
			convey.So(len(summary.HomeEvents), convey.ShouldBeGreaterThan, 0)
			convey.So(len(summary.AwayEvents), convey.ShouldBeGreaterThan, 0)
		})
	})
}

func TestSimulateGameWithoutQuarterback(t *testing.T) {
	convey.Convey("Given a roster whose only quarterback is unavailable", t, func() {
		home, away := testTeams()
		roster := model.Roster{}
		for id, player := range home.Roster {
			if player.Position == model.PositionQB {
				continue
			}
			roster[id] = player
		}
		home.Roster = roster

		convey.Convey("The offense falls back to designed runs and the game completes", func() {
			for _, seed := range []int64{3, 7, 21} {
				summary, err := game.Simulate(home, away, game.Options{Seed: seed, Config: shortConfig()})
				convey.So(err, convey.ShouldBeNil)
				convey.So(summary.TotalPlays, convey.ShouldBeGreaterThan, 0)
				convey.So(summary.HomeBoxscore.Teams[statbook.TeamOffense].PassAttempts, convey.ShouldEqual, 0)
			}
		})
	})
}

func TestSimulateGameRosterErrors(t *testing.T) {
	convey.Convey("Given a roster without any ball handlers", t, func() {
		home, away := testTeams()
		roster := model.Roster{}
		for id, player := range home.Roster {
			switch player.Position {
			case model.PositionQB, model.PositionRB, model.PositionWR:
				continue
			}
			roster[id] = player
		}
		home.Roster = roster

		convey.Convey("The simulation fails with a configuration error", func() {
			_, err := game.Simulate(home, away, game.Options{Seed: 7, Config: shortConfig()})
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, game.ErrMissingPosition), convey.ShouldBeTrue)
		})
	})
}
