package fatigue_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/gridsim/gridiron/internal/domain/fatigue"
	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/rng"
)

func TestFatigueState(t *testing.T) {
	convey.Convey("Given a rested player", t, func() {
		state := fatigue.State{}

		convey.Convey("Load accumulates net of recovery", func() {
			state.Apply(0.12, 0.05)
			convey.So(state.Value, convey.ShouldAlmostEqual, 0.07, 1e-9)
		})

		convey.Convey("The value clamps to [0, 1]", func() {
			state.Apply(5.0, 0.0)
			convey.So(state.Value, convey.ShouldEqual, 1.0)
			state.Apply(0.0, 5.0)
			convey.So(state.Value, convey.ShouldEqual, 0.0)
		})

		convey.Convey("The speed multiplier falls as fatigue rises", func() {
			convey.So(state.Multiplier(), convey.ShouldEqual, 1.0)
			previous := state.Multiplier()
			for i := 0; i < 10; i++ {
				state.Apply(0.1, 0.0)
				convey.So(state.Multiplier(), convey.ShouldBeLessThanOrEqualTo, previous)
				previous = state.Multiplier()
			}
			convey.So(state.Multiplier(), convey.ShouldAlmostEqual, 0.65, 1e-9)
		})
	})
}

func TestCheckInjury(t *testing.T) {
	attrs := model.Attributes{Strength: 80, Tackling: 74}

	convey.Convey("Given a zero effective rate", t, func() {
		r := rng.New(1)

		convey.Convey("No injuries are ever rolled", func() {
			for i := 0; i < 1000; i++ {
				outcome := fatigue.CheckInjury(r, 0.0, model.Attributes{Strength: 100, Tackling: 100}, 0.0)
				convey.So(outcome.Injured, convey.ShouldBeFalse)
			}
		})
	})

	convey.Convey("Given a certain injury", t, func() {
		r := rng.New(2)

		convey.Convey("Severity tiers follow the 0.70/0.93 split", func() {
			counts := map[string]int{}
			for i := 0; i < 5000; i++ {
				outcome := fatigue.CheckInjury(r, 2.0, attrs, fatigue.DefaultInjuryBaseRate)
				convey.So(outcome.Injured, convey.ShouldBeTrue)
				counts[outcome.Severity]++
			}
			convey.So(counts[fatigue.SeverityMinor], convey.ShouldBeGreaterThan, counts[fatigue.SeverityModerate])
			convey.So(counts[fatigue.SeverityModerate], convey.ShouldBeGreaterThan, counts[fatigue.SeveritySevere])
			convey.So(counts[fatigue.SeveritySevere], convey.ShouldBeGreaterThan, 0)
		})
	})

	convey.Convey("Given the default base rate", t, func() {
		convey.Convey("Tougher players get hurt less often", func() {
			soft := model.Attributes{Strength: 0, Tackling: 0}
			tough := model.Attributes{Strength: 100, Tackling: 100}
			softInjuries, toughInjuries := 0, 0
			rs := rng.New(3)
			rt := rng.New(3)
			for i := 0; i < 20000; i++ {
				if fatigue.CheckInjury(rs, 0.01, soft, fatigue.DefaultInjuryBaseRate).Injured {
					softInjuries++
				}
				if fatigue.CheckInjury(rt, 0.01, tough, fatigue.DefaultInjuryBaseRate).Injured {
					toughInjuries++
				}
			}
			convey.So(softInjuries, convey.ShouldBeGreaterThan, toughInjuries)
		})
	})
}
