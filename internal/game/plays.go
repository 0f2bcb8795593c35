package game

import (
	"github.com/gridsim/gridiron/internal/domain/aicall"
	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/rng"
)

// Stock route trees used by the automatic play builders.
var (
	passRoutePrimary = []model.RoutePoint{
		{Timestamp: 0.0, X: -5.0, Y: 0.0},
		{Timestamp: 1.1, X: -2.0, Y: 8.0},
	}
	passRouteSecondary = []model.RoutePoint{
		{Timestamp: 0.0, X: 5.0, Y: 0.0},
		{Timestamp: 1.3, X: 8.0, Y: 6.0},
	}
	sidelineRoute = []model.RoutePoint{
		{Timestamp: 0.0, X: 12.0, Y: 0.0},
		{Timestamp: 1.2, X: 15.0, Y: 12.0},
	}
	runRoute = []model.RoutePoint{
		{Timestamp: 0.0, X: 0.0, Y: 0.0},
		{Timestamp: 2.0, X: 0.0, Y: 8.0},
	}
)

func cloneRoute(route []model.RoutePoint) []model.RoutePoint {
	out := make([]model.RoutePoint, len(route))
	copy(out, route)
	return out
}

// selectPlay asks the offensive caller for a category and builds the
// matching play from the offense's available personnel.
func (g *orchestrator) selectPlay(offense, defense *teamState, down int, yardsToFirst, yardline, remainingTime float64, quarter int, r *rng.Source) (model.Play, error) {
	ctx := aicall.OffenseContext{
		Down:          down,
		YardsToFirst:  yardsToFirst,
		Yardline:      yardline,
		RemainingTime: remainingTime,
		ScoreDiff:     offense.score - defense.score,
		Quarter:       quarter,
	}
	category := aicall.CallOffense(ctx, r)
	if category != aicall.CategoryRun {
		// With no healthy quarterback every call becomes a designed run.
		if qb, _ := offense.choosePlayer([]model.Position{model.PositionQB}, nil, true); qb == nil {
			category = aicall.CategoryRun
		}
	}
	switch category {
	case aicall.CategoryRun:
		return buildRunPlay(offense)
	case aicall.CategorySidelinePass:
		return buildSidelinePass(offense)
	default:
		return buildPassPlay(offense)
	}
}

func buildPassPlay(offense *teamState) (model.Play, error) {
	qb, err := offense.choosePlayer([]model.Position{model.PositionQB}, nil, false)
	if err != nil {
		return model.Play{}, err
	}
	receivers, err := offense.chooseMultiple([]model.Position{model.PositionWR, model.PositionTE}, 2, map[string]bool{qb.PlayerID: true})
	if err != nil {
		return model.Play{}, err
	}
	exclude := map[string]bool{qb.PlayerID: true, receivers[0].PlayerID: true, receivers[1].PlayerID: true}
	rb, err := offense.choosePlayer([]model.Position{model.PositionRB, model.PositionWR, model.PositionTE}, exclude, false)
	if err != nil {
		return model.Play{}, err
	}
	exclude[rb.PlayerID] = true
	blockers, err := offense.chooseMultiple([]model.Position{model.PositionOL, model.PositionTE, model.PositionRB}, 3, exclude)
	if err != nil {
		return model.Play{}, err
	}

	assignments := []model.Assignment{
		{PlayerID: qb.PlayerID, Role: model.RolePass},
		{PlayerID: receivers[0].PlayerID, Role: model.RoleRoute, Route: cloneRoute(passRoutePrimary)},
		{PlayerID: receivers[1].PlayerID, Role: model.RoleRoute, Route: cloneRoute(passRouteSecondary)},
		{PlayerID: rb.PlayerID, Role: model.RoleCarry},
	}
	for _, blocker := range blockers {
		assignments = append(assignments, model.Assignment{PlayerID: blocker.PlayerID, Role: model.RoleBlock})
	}
	return model.Play{
		PlayID:      "auto_pass",
		Name:        "Auto Pass",
		Formation:   "Shotgun",
		Personnel:   "11",
		PlayType:    "offense",
		Assignments: assignments,
	}, nil
}

func buildSidelinePass(offense *teamState) (model.Play, error) {
	qb, err := offense.choosePlayer([]model.Position{model.PositionQB}, nil, false)
	if err != nil {
		return model.Play{}, err
	}
	exclude := map[string]bool{qb.PlayerID: true}
	wr, err := offense.choosePlayer([]model.Position{model.PositionWR, model.PositionTE}, exclude, false)
	if err != nil {
		return model.Play{}, err
	}
	exclude[wr.PlayerID] = true
	secondary, err := offense.choosePlayer([]model.Position{model.PositionWR, model.PositionTE}, exclude, false)
	if err != nil {
		return model.Play{}, err
	}
	exclude[secondary.PlayerID] = true
	rb, err := offense.choosePlayer([]model.Position{model.PositionRB, model.PositionWR, model.PositionTE}, exclude, false)
	if err != nil {
		return model.Play{}, err
	}
	exclude[rb.PlayerID] = true
	blockers, err := offense.chooseMultiple([]model.Position{model.PositionOL, model.PositionTE, model.PositionRB}, 3, exclude)
	if err != nil {
		return model.Play{}, err
	}

	assignments := []model.Assignment{
		{PlayerID: qb.PlayerID, Role: model.RolePass},
		{PlayerID: wr.PlayerID, Role: model.RoleRoute, Route: cloneRoute(sidelineRoute)},
		{PlayerID: secondary.PlayerID, Role: model.RoleRoute, Route: cloneRoute(passRoutePrimary)},
		{PlayerID: rb.PlayerID, Role: model.RoleCarry},
	}
	for _, blocker := range blockers {
		assignments = append(assignments, model.Assignment{PlayerID: blocker.PlayerID, Role: model.RoleBlock})
	}
	return model.Play{
		PlayID:      "sideline_pass",
		Name:        "Sideline Pass",
		Formation:   "Shotgun",
		Personnel:   "11",
		PlayType:    "offense",
		Assignments: assignments,
	}, nil
}

func buildRunPlay(offense *teamState) (model.Play, error) {
	qb, err := offense.choosePlayer([]model.Position{model.PositionQB}, nil, true)
	if err != nil {
		return model.Play{}, err
	}
	exclude := map[string]bool{}
	if qb != nil {
		exclude[qb.PlayerID] = true
	}
	rb, err := offense.choosePlayer([]model.Position{model.PositionRB, model.PositionWR}, exclude, false)
	if err != nil {
		return model.Play{}, err
	}
	exclude[rb.PlayerID] = true
	blockers, err := offense.chooseMultiple([]model.Position{model.PositionOL, model.PositionTE, model.PositionWR}, 4, exclude)
	if err != nil {
		return model.Play{}, err
	}

	assignments := []model.Assignment{
		{PlayerID: rb.PlayerID, Role: model.RoleCarry, Route: cloneRoute(runRoute)},
	}
	if qb != nil {
		assignments = append(assignments, model.Assignment{PlayerID: qb.PlayerID, Role: model.RoleBlock})
	}
	for _, blocker := range blockers {
		assignments = append(assignments, model.Assignment{PlayerID: blocker.PlayerID, Role: model.RoleBlock})
	}
	return model.Play{
		PlayID:      "auto_run",
		Name:        "Auto Run",
		Formation:   "Singleback",
		Personnel:   "12",
		PlayType:    "offense",
		Assignments: assignments,
	}, nil
}
