package model_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/gridsim/gridiron/internal/domain/model"
)

func validPlayer() model.Player {
	return model.Player{
		PlayerID:     "p1",
		Name:         "Test Player",
		Position:     model.PositionQB,
		JerseyNumber: 12,
		Attributes: model.Attributes{
			Speed: 85, Strength: 80, Agility: 82, Awareness: 78,
			Catching: 72, Tackling: 74, ThrowingPower: 70, Accuracy: 70,
		},
	}
}

func TestPlayerValidate(t *testing.T) {
	convey.Convey("Given a well-formed player", t, func() {
		convey.So(validPlayer().Validate(), convey.ShouldBeNil)
	})

	convey.Convey("Given malformed players", t, func() {
		convey.Convey("A missing id is rejected", func() {
			p := validPlayer()
			p.PlayerID = ""
			convey.So(p.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("An unknown position is rejected", func() {
			p := validPlayer()
			p.Position = "QB2"
			convey.So(p.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("An out-of-range rating is rejected", func() {
			p := validPlayer()
			p.Attributes.Speed = 101
			convey.So(p.Validate(), convey.ShouldNotBeNil)
			p.Attributes.Speed = -1
			convey.So(p.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("An out-of-range jersey number is rejected", func() {
			p := validPlayer()
			p.JerseyNumber = 100
			convey.So(p.Validate(), convey.ShouldNotBeNil)
		})
	})
}

func TestAssignmentValidate(t *testing.T) {
	convey.Convey("Given assignments", t, func() {
		convey.Convey("Strictly increasing route timestamps pass", func() {
			a := model.Assignment{PlayerID: "p1", Role: model.RoleRoute, Route: []model.RoutePoint{
				{Timestamp: 0.0}, {Timestamp: 1.1}, {Timestamp: 2.0},
			}}
			convey.So(a.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Non-increasing timestamps fail", func() {
			a := model.Assignment{PlayerID: "p1", Role: model.RoleRoute, Route: []model.RoutePoint{
				{Timestamp: 0.0}, {Timestamp: 1.0}, {Timestamp: 1.0},
			}}
			convey.So(a.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("Unknown roles fail", func() {
			a := model.Assignment{PlayerID: "p1", Role: "juke"}
			convey.So(a.Validate(), convey.ShouldNotBeNil)
		})
	})
}

func TestGameConfigValidate(t *testing.T) {
	convey.Convey("Given game configurations", t, func() {
		convey.Convey("The defaults validate", func() {
			cfg := model.DefaultGameConfig()
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			convey.So(cfg.QuarterLength, convey.ShouldEqual, 900.0)
			convey.So(cfg.Quarters, convey.ShouldEqual, 4)
			convey.So(cfg.MaxPlays, convey.ShouldEqual, 130)
			convey.So(cfg.KickoffYardline, convey.ShouldEqual, 25.0)
		})

		convey.Convey("Bad ranges are rejected", func() {
			cfg := model.DefaultGameConfig()
			cfg.QuarterLength = 0
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)

			cfg = model.DefaultGameConfig()
			cfg.MaxPlays = 0
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)

			cfg = model.DefaultGameConfig()
			cfg.KickoffYardline = 101
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}
