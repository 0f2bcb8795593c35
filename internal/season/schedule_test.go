package season_test

import (
	"reflect"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/gridsim/gridiron/internal/season"
)

func TestMakeSchedule(t *testing.T) {
	convey.Convey("Given a six team league", t, func() {
		teams := []string{"T1", "T2", "T3", "T4", "T5", "T6"}
		schedule := season.MakeSchedule(teams, 7)

		convey.Convey("Every unordered pair plays exactly twice, once each way", func() {
			type pair struct{ home, away string }
			counts := map[pair]int{}
			for _, m := range schedule {
				counts[pair{m.Home, m.Away}]++
			}
			for i, home := range teams {
				for _, away := range teams[i+1:] {
					convey.So(counts[pair{home, away}], convey.ShouldEqual, 1)
					convey.So(counts[pair{away, home}], convey.ShouldEqual, 1)
				}
			}
			convey.So(len(schedule), convey.ShouldEqual, len(teams)*(len(teams)-1))
		})

		convey.Convey("Weeks span 1 through len(teams)-1", func() {
			for _, m := range schedule {
				convey.So(m.Week, convey.ShouldBeGreaterThanOrEqualTo, 1)
				convey.So(m.Week, convey.ShouldBeLessThanOrEqualTo, len(teams)-1)
			}
		})

		convey.Convey("Home and away counts differ by at most one per team", func() {
			home := map[string]int{}
			away := map[string]int{}
			for _, m := range schedule {
				home[m.Home]++
				away[m.Away]++
			}
			for _, team := range teams {
				diff := home[team] - away[team]
				if diff < 0 {
					diff = -diff
				}
				convey.So(diff, convey.ShouldBeLessThanOrEqualTo, 1)
			}
		})

		convey.Convey("The same seed reproduces the schedule exactly", func() {
			again := season.MakeSchedule(teams, 7)
			convey.So(reflect.DeepEqual(schedule, again), convey.ShouldBeTrue)
		})

		convey.Convey("A different seed reorders the schedule", func() {
			other := season.MakeSchedule(teams, 8)
			convey.So(reflect.DeepEqual(schedule, other), convey.ShouldBeFalse)
		})
	})

	convey.Convey("Given degenerate leagues", t, func() {
		convey.Convey("Fewer than two teams yields an empty schedule", func() {
			convey.So(season.MakeSchedule(nil, 1), convey.ShouldBeEmpty)
			convey.So(season.MakeSchedule([]string{"T1"}, 1), convey.ShouldBeEmpty)
		})

		convey.Convey("Two teams play a home-and-home in one week", func() {
			schedule := season.MakeSchedule([]string{"T1", "T2"}, 1)
			convey.So(len(schedule), convey.ShouldEqual, 2)
			convey.So(schedule[0].Week, convey.ShouldEqual, 1)
			convey.So(schedule[1].Week, convey.ShouldEqual, 1)
			convey.So(schedule[0].Home, convey.ShouldNotEqual, schedule[1].Home)
		})
	})
}
