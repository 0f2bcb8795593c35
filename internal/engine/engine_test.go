package engine_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/statbook"
	"github.com/gridsim/gridiron/internal/engine"
	"github.com/gridsim/gridiron/internal/league"
)

func testRosters() (model.Roster, model.Roster) {
	return league.BuildRoster("HOME", "HOME", nil), league.BuildRoster("AWAY", "AWAY", nil)
}

func passPlay() model.Play {
	return model.Play{
		PlayID:    "test_pass",
		Name:      "Test Pass",
		Formation: "Shotgun",
		Personnel: "11",
		PlayType:  "offense",
		Assignments: []model.Assignment{
			{PlayerID: "HOME_QB1", Role: model.RolePass},
			{PlayerID: "HOME_WR4", Role: model.RoleRoute, Route: []model.RoutePoint{
				{Timestamp: 0.0, X: -5.0, Y: 0.0},
				{Timestamp: 1.1, X: -2.0, Y: 8.0},
			}},
			{PlayerID: "HOME_WR5", Role: model.RoleRoute, Route: []model.RoutePoint{
				{Timestamp: 0.0, X: 5.0, Y: 0.0},
				{Timestamp: 1.3, X: 8.0, Y: 6.0},
			}},
			{PlayerID: "HOME_RB2", Role: model.RoleCarry},
			{PlayerID: "HOME_OL9", Role: model.RoleBlock},
			{PlayerID: "HOME_OL10", Role: model.RoleBlock},
			{PlayerID: "HOME_OL11", Role: model.RoleBlock},
		},
	}
}

func runPlay() model.Play {
	return model.Play{
		PlayID:    "test_run",
		Name:      "Test Run",
		Formation: "Singleback",
		Personnel: "12",
		PlayType:  "offense",
		Assignments: []model.Assignment{
			{PlayerID: "HOME_RB2", Role: model.RoleCarry, Route: []model.RoutePoint{
				{Timestamp: 0.0, X: 0.0, Y: 0.0},
				{Timestamp: 2.0, X: 0.0, Y: 8.0},
			}},
			{PlayerID: "HOME_OL9", Role: model.RoleBlock},
			{PlayerID: "HOME_OL10", Role: model.RoleBlock},
			{PlayerID: "HOME_OL11", Role: model.RoleBlock},
			{PlayerID: "HOME_OL12", Role: model.RoleBlock},
		},
	}
}

func TestSimulateDeterminism(t *testing.T) {
	convey.Convey("Given the same play, rosters, and seed", t, func() {
		offense, defense := testRosters()

		convey.Convey("Two runs produce identical results", func() {
			first, err1 := engine.Simulate(passPlay(), offense, defense, engine.Options{Seed: 4242})
			second, err2 := engine.Simulate(passPlay(), offense, defense, engine.Options{Seed: 4242})
			convey.So(err1, convey.ShouldBeNil)
			convey.So(err2, convey.ShouldBeNil)
			convey.So(reflect.DeepEqual(first, second), convey.ShouldBeTrue)
		})

		convey.Convey("Different seeds diverge across a seed sweep", func() {
			distinct := map[float64]bool{}
			for seed := int64(1); seed <= 40; seed++ {
				result, err := engine.Simulate(passPlay(), offense, defense, engine.Options{Seed: seed})
				convey.So(err, convey.ShouldBeNil)
				distinct[result.YardsGained] = true
			}
			convey.So(len(distinct), convey.ShouldBeGreaterThan, 1)
		})
	})
}

func TestSimulateInvariants(t *testing.T) {
	convey.Convey("Given a sweep of pass plays", t, func() {
		offense, defense := testRosters()

		for seed := int64(1); seed <= 200; seed++ {
			result, err := engine.Simulate(passPlay(), offense, defense, engine.Options{Seed: seed})
			convey.So(err, convey.ShouldBeNil)

			var ends []statbook.Event
			for _, event := range result.Events {
				if event.Type == statbook.EventPlayEnd {
					ends = append(ends, event)
				}
			}
			convey.So(len(ends), convey.ShouldEqual, 1)
			convey.So(result.Events[len(result.Events)-1].Type, convey.ShouldEqual, statbook.EventPlayEnd)
			convey.So(result.Events[0].Type, convey.ShouldEqual, statbook.EventSnap)

			if result.Sack {
				convey.So(result.YardsGained, convey.ShouldEqual, engine.SackLoss)
				convey.So(result.PlayType, convey.ShouldEqual, "pass")
				convey.So(result.Completed, convey.ShouldBeFalse)
			}
			if result.Interception {
				convey.So(result.Completed, convey.ShouldBeFalse)
			}
			if result.Completed {
				convey.So(result.YardsGained, convey.ShouldBeGreaterThanOrEqualTo, 0.0)
			}
			convey.So(result.Duration, convey.ShouldBeLessThanOrEqualTo, engine.DefaultDuration)
		}
	})

	convey.Convey("Given a sweep of run plays", t, func() {
		offense, defense := testRosters()

		for seed := int64(1); seed <= 100; seed++ {
			result, err := engine.Simulate(runPlay(), offense, defense, engine.Options{Seed: seed})
			convey.So(err, convey.ShouldBeNil)
			convey.So(result.PlayType, convey.ShouldEqual, "run")
			convey.So(result.Sack, convey.ShouldBeFalse)
			convey.So(result.Interception, convey.ShouldBeFalse)
			convey.So(result.YardsGained, convey.ShouldBeGreaterThanOrEqualTo, 0.0)
		}
	})
}

func TestSimulateRosterErrors(t *testing.T) {
	convey.Convey("Given broken inputs", t, func() {
		offense, defense := testRosters()

		convey.Convey("An assignment for an unrostered player fails fast", func() {
			play := passPlay()
			play.Assignments[0].PlayerID = "HOME_GHOST"
			_, err := engine.Simulate(play, offense, defense, engine.Options{Seed: 1})
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, engine.ErrRosterComposition), convey.ShouldBeTrue)
		})

		convey.Convey("A play without assignments fails fast", func() {
			play := passPlay()
			play.Assignments = nil
			_, err := engine.Simulate(play, offense, defense, engine.Options{Seed: 1})
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, engine.ErrRosterComposition), convey.ShouldBeTrue)
		})
	})
}
