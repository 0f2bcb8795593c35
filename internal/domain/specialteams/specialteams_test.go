package specialteams_test

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/gridsim/gridiron/internal/domain/rng"
	"github.com/gridsim/gridiron/internal/domain/specialteams"
)

func fieldGoalRate(yardline float64, kicker int, trials int, seed int64) float64 {
	r := rng.New(seed)
	made := 0
	for i := 0; i < trials; i++ {
		if specialteams.AttemptFieldGoal(yardline, kicker, r).Made {
			made++
		}
	}
	return float64(made) / float64(trials)
}

func TestAttemptFieldGoal(t *testing.T) {
	convey.Convey("Given 5000 attempts per distance band", t, func() {
		const trials = 5000

		convey.Convey("Shorter kicks succeed more often", func() {
			short := fieldGoalRate(85.0, 75, trials, 11) // 32 yards
			medium := fieldGoalRate(72.0, 75, trials, 12) // 45 yards
			long := fieldGoalRate(60.0, 75, trials, 13)   // 57 yards
			convey.So(short, convey.ShouldBeGreaterThan, medium)
			convey.So(medium, convey.ShouldBeGreaterThan, long)
			convey.So(short, convey.ShouldBeBetween, 0.80, 0.89)
			convey.So(long, convey.ShouldBeBetween, 0.55, 0.65)
		})

		convey.Convey("A better kicker converts more", func() {
			weak := fieldGoalRate(72.0, 55, trials, 14)
			strong := fieldGoalRate(72.0, 95, trials, 15)
			convey.So(strong, convey.ShouldBeGreaterThan, weak)
		})
	})

	convey.Convey("Given any attempt", t, func() {
		r := rng.New(16)

		convey.Convey("The reported distance is floored at 20", func() {
			outcome := specialteams.AttemptFieldGoal(99.0, 75, r)
			convey.So(outcome.Distance, convey.ShouldEqual, 20)
		})
	})
}

func TestPunt(t *testing.T) {
	convey.Convey("Given punts from midfield", t, func() {
		r := rng.New(21)

		convey.Convey("The receiving start stays within [15, 80]", func() {
			for i := 0; i < 2000; i++ {
				outcome := specialteams.Punt(50.0, 70, 70, r)
				convey.So(outcome.StartYardline, convey.ShouldBeGreaterThanOrEqualTo, 15.0)
				convey.So(outcome.StartYardline, convey.ShouldBeLessThanOrEqualTo, 80.0)
				convey.So(outcome.Touchback, convey.ShouldBeFalse)
			}
		})
	})

	convey.Convey("Given punts from deep in opposing territory", t, func() {
		r := rng.New(22)

		convey.Convey("Kicks past the goal line are touchbacks at the 20", func() {
			touchbacks := 0
			for i := 0; i < 2000; i++ {
				outcome := specialteams.Punt(70.0, 90, 70, r)
				if outcome.Touchback {
					touchbacks++
					convey.So(outcome.StartYardline, convey.ShouldEqual, 20.0)
					convey.So(outcome.ReturnYards, convey.ShouldEqual, 0.0)
				}
			}
			convey.So(touchbacks, convey.ShouldBeGreaterThan, 0)
		})
	})
}

func TestKickoff(t *testing.T) {
	convey.Convey("Given 2000 kickoffs", t, func() {
		r := rng.New(31)
		touchbacks := 0
		returns := 0

		for i := 0; i < 2000; i++ {
			outcome := specialteams.Kickoff(25.0, 85, r)
			if outcome.Touchback {
				touchbacks++
				convey.So(outcome.StartYardline, convey.ShouldEqual, 25.0)
			} else {
				returns++
				convey.So(outcome.StartYardline, convey.ShouldBeGreaterThanOrEqualTo, 5.0)
				convey.So(outcome.StartYardline, convey.ShouldBeLessThanOrEqualTo, 50.0)
			}
		}

		convey.Convey("Both touchbacks and returns occur", func() {
			convey.So(touchbacks, convey.ShouldBeGreaterThan, 0)
			convey.So(returns, convey.ShouldBeGreaterThan, 0)
		})
	})
}

func TestPenaltyCatalog(t *testing.T) {
	convey.Convey("Given the penalty catalog", t, func() {
		convey.Convey("The four entries carry the standard yardages", func() {
			convey.So(specialteams.Catalog[specialteams.PenaltyOffsides].Yards, convey.ShouldEqual, 5.0)
			convey.So(specialteams.Catalog[specialteams.PenaltyOffsides].OnOffense, convey.ShouldBeFalse)
			convey.So(specialteams.Catalog[specialteams.PenaltyFalseStart].Yards, convey.ShouldEqual, 5.0)
			convey.So(specialteams.Catalog[specialteams.PenaltyFalseStart].OnOffense, convey.ShouldBeTrue)
			convey.So(specialteams.Catalog[specialteams.PenaltyHolding].Yards, convey.ShouldEqual, 10.0)
			convey.So(specialteams.Catalog[specialteams.PenaltyDPI].Yards, convey.ShouldEqual, 15.0)
			convey.So(specialteams.Catalog[specialteams.PenaltyDPI].AutomaticFirst, convey.ShouldBeTrue)
		})

		convey.Convey("Declined penalties have no effect", func() {
			result := specialteams.ApplyPenalty(specialteams.Catalog[specialteams.PenaltyHolding], false)
			convey.So(result.Accepted, convey.ShouldBeFalse)
			convey.So(result.Yards, convey.ShouldEqual, 0.0)
		})

		convey.Convey("Accepted penalties carry their catalog yardage", func() {
			result := specialteams.ApplyPenalty(specialteams.Catalog[specialteams.PenaltyDPI], true)
			convey.So(result.Accepted, convey.ShouldBeTrue)
			convey.So(result.Yards, convey.ShouldEqual, 15.0)
			convey.So(result.AutomaticFirst, convey.ShouldBeTrue)
		})
	})
}
