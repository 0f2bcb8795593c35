// Package league builds deterministic synthetic leagues and rosters for
// the CLI, calibration sweeps, and tests.
package league

import (
	"fmt"

	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/rng"
)

// rosterTemplate is the 23-man position template every synthetic roster
// follows.
var rosterTemplate = []model.Position{
	model.PositionQB,
	model.PositionRB, model.PositionRB,
	model.PositionWR, model.PositionWR, model.PositionWR,
	model.PositionTE, model.PositionTE,
	model.PositionOL, model.PositionOL, model.PositionOL, model.PositionOL, model.PositionOL,
	model.PositionDL, model.PositionDL,
	model.PositionLB, model.PositionLB,
	model.PositionCB, model.PositionCB,
	model.PositionS, model.PositionS,
	model.PositionK,
	model.PositionP,
}

func baseAttributes() model.Attributes {
	return model.Attributes{
		Speed:         85,
		Strength:      80,
		Agility:       82,
		Awareness:     78,
		Catching:      72,
		Tackling:      74,
		ThrowingPower: 70,
		Accuracy:      70,
	}
}

// BuildRoster creates a synthetic roster with ids derived from the
// prefix. A nil jitter source yields the flat mid-range ratings; with a
// source, each rating is nudged by a bounded deterministic offset.
func BuildRoster(prefix, teamID string, jitter *rng.Source) model.Roster {
	roster := model.Roster{}
	for index, position := range rosterTemplate {
		id := fmt.Sprintf("%s_%s%d", prefix, position, index+1)
		attrs := baseAttributes()
		if jitter != nil {
			attrs.Speed = jitterRating(attrs.Speed, jitter)
			attrs.Strength = jitterRating(attrs.Strength, jitter)
			attrs.Agility = jitterRating(attrs.Agility, jitter)
			attrs.Awareness = jitterRating(attrs.Awareness, jitter)
			attrs.Catching = jitterRating(attrs.Catching, jitter)
			attrs.Tackling = jitterRating(attrs.Tackling, jitter)
			attrs.ThrowingPower = jitterRating(attrs.ThrowingPower, jitter)
			attrs.Accuracy = jitterRating(attrs.Accuracy, jitter)
		}
		roster[id] = model.Player{
			PlayerID:     id,
			Name:         id,
			Position:     position,
			JerseyNumber: 12,
			Attributes:   attrs,
			TeamID:       teamID,
		}
	}
	return roster
}

// jitterRating shifts a rating by up to +/-5 points, clamped to [0, 100].
func jitterRating(rating int, r *rng.Source) int {
	rating += r.Intn(11) - 5
	if rating < 0 {
		rating = 0
	}
	if rating > 100 {
		rating = 100
	}
	return rating
}

// BuildLeague creates teamCount synthetic teams named TEAM_1..TEAM_n.
// A zero jitterSeed produces the flat-rating league used by calibration.
func BuildLeague(teamCount int, jitterSeed int64) map[string]model.Roster {
	var jitter *rng.Source
	if jitterSeed != 0 {
		jitter = rng.New(jitterSeed)
	}
	teams := map[string]model.Roster{}
	for idx := 1; idx <= teamCount; idx++ {
		teamID := fmt.Sprintf("TEAM_%d", idx)
		teams[teamID] = BuildRoster(fmt.Sprintf("T%d", idx), teamID, jitter)
	}
	return teams
}
