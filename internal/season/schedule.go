package season

import "github.com/gridsim/gridiron/internal/domain/rng"

// Matchup is one scheduled game.
type Matchup struct {
	Week int
	Home string
	Away string
}

// MakeSchedule builds a double round robin: every unordered pair plays
// twice with home and away swapped between legs. Pairings are shuffled
// deterministically from the seed and spread over max(1, len(teams)-1)
// weeks, so any team's home and away counts differ by at most one.
// Fewer than two teams yields an empty schedule.
func MakeSchedule(teamIDs []string, seed int64) []Matchup {
	if len(teamIDs) < 2 {
		return nil
	}

	var pairings [][2]string
	for i, home := range teamIDs {
		for _, away := range teamIDs[i+1:] {
			pairings = append(pairings, [2]string{home, away})
		}
	}

	r := rng.New(seed)
	for i := len(pairings) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		pairings[i], pairings[j] = pairings[j], pairings[i]
	}

	weeks := len(teamIDs) - 1
	if weeks < 1 {
		weeks = 1
	}

	schedule := make([]Matchup, 0, 2*len(pairings))
	for index, pair := range pairings {
		schedule = append(schedule, Matchup{Week: index%weeks + 1, Home: pair[0], Away: pair[1]})
	}
	for index, pair := range pairings {
		schedule = append(schedule, Matchup{Week: (index+len(pairings))%weeks + 1, Home: pair[1], Away: pair[0]})
	}
	return schedule
}
