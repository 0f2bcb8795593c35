package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/gridsim/gridiron/internal/domain/model"
)

// entity is one moving player within a play simulation.
type entity struct {
	player    model.Player
	role      model.Role
	team      string
	route     []model.RoutePoint
	position  [2]float64
	velocity  [2]float64
	baseSpeed float64
}

// entitySet keeps entities in a fixed, deterministic order while still
// allowing id lookup. Iteration order never depends on map ordering.
type entitySet struct {
	ordered []*entity
	byID    map[string]*entity
}

func newEntitySet() *entitySet {
	return &entitySet{byID: map[string]*entity{}}
}

func (s *entitySet) add(e *entity) {
	s.ordered = append(s.ordered, e)
	s.byID[e.player.PlayerID] = e
}

func (s *entitySet) get(id string) *entity {
	if id == "" {
		return nil
	}
	return s.byID[id]
}

// initOffense builds offensive entities in assignment order. Every
// assignment must resolve to a rostered player; a miss is a roster
// composition error.
func initOffense(play model.Play, roster model.Roster, modifiers map[string]float64) (*entitySet, error) {
	entities := newEntitySet()
	for index, assignment := range play.Assignments {
		player, ok := roster[assignment.PlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: no offensive player for assignment %s", ErrRosterComposition, assignment.PlayerID)
		}
		route := assignment.Route
		if len(route) == 0 {
			route = defaultRoute(assignment.Role, index)
		}
		start := route[0]
		entities.add(&entity{
			player:    player,
			role:      assignment.Role,
			team:      "offense",
			route:     route,
			position:  [2]float64{start.X, start.Y},
			velocity:  [2]float64{0, 0},
			baseSpeed: baseSpeed(player.Attributes.Speed) * modifier(modifiers, player.PlayerID),
		})
	}
	return entities, nil
}

// initDefense lines up to eleven defenders in a two-level shell. Roster
// iteration is sorted by player id so the formation is reproducible.
func initDefense(roster model.Roster, modifiers map[string]float64) *entitySet {
	ids := make([]string, 0, len(roster))
	for id := range roster {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entities := newEntitySet()
	for index, id := range ids {
		if index >= 11 {
			break
		}
		player := roster[id]
		x := float64(index-5) * 2.0
		y := 10.0
		if index >= 4 {
			y = 8.0
		}
		entities.add(&entity{
			player:    player,
			role:      model.RoleDefend,
			team:      "defense",
			route:     []model.RoutePoint{{Timestamp: 0, X: x, Y: y}},
			position:  [2]float64{x, y},
			velocity:  [2]float64{0, 0},
			baseSpeed: baseSpeed(player.Attributes.Speed) * 0.85 * modifier(modifiers, player.PlayerID),
		})
	}
	return entities
}

func modifier(modifiers map[string]float64, playerID string) float64 {
	if modifiers == nil {
		return 1.0
	}
	if m, ok := modifiers[playerID]; ok {
		return m
	}
	return 1.0
}

// defaultRoute synthesizes a role-based straight-line route for entities
// whose assignment carries none.
func defaultRoute(role model.Role, index int) []model.RoutePoint {
	switch role {
	case model.RolePass:
		return []model.RoutePoint{
			{Timestamp: 0.0, X: 0.0, Y: 0.0},
			{Timestamp: 1.0, X: 0.0, Y: 0.5},
		}
	case model.RoleCarry:
		laneX := float64(index-2) * 1.5
		return []model.RoutePoint{
			{Timestamp: 0.0, X: laneX, Y: 0.0},
			{Timestamp: 2.0, X: laneX, Y: 7.0},
		}
	case model.RoleRoute:
		startX := float64(index-2) * 3.0
		return []model.RoutePoint{
			{Timestamp: 0.0, X: startX, Y: 0.0},
			{Timestamp: 2.0, X: startX, Y: 12.0},
		}
	}
	return []model.RoutePoint{{Timestamp: 0.0, X: float64(index-2) * 1.2, Y: 0.0}}
}

// advance accelerates the entity toward its target for one tick. The
// target is the route position at the elapsed time unless overridden
// (defenders chase a computed target instead of a route).
func (e *entity) advance(timeElapsed, dt, fatigue float64, overrideTarget *[2]float64) {
	var target [2]float64
	if overrideTarget != nil {
		target = *overrideTarget
	} else {
		target = routePosition(e.route, timeElapsed)
	}

	direction := [2]float64{target[0] - e.position[0], target[1] - e.position[1]}
	distance := length(direction)
	var unit [2]float64
	if distance > 1e-6 {
		unit = [2]float64{direction[0] / distance, direction[1] / distance}
	}

	desiredSpeed := e.baseSpeed * fatigue
	desired := [2]float64{unit[0] * desiredSpeed, unit[1] * desiredSpeed}
	deltaV := [2]float64{desired[0] - e.velocity[0], desired[1] - e.velocity[1]}
	deltaMag := length(deltaV)
	maxDelta := maxAccel * dt
	if deltaMag > maxDelta && deltaMag > 0 {
		scale := maxDelta / deltaMag
		deltaV[0] *= scale
		deltaV[1] *= scale
	}
	e.velocity[0] += deltaV[0]
	e.velocity[1] += deltaV[1]
	e.position[0] += e.velocity[0] * dt
	e.position[1] += e.velocity[1] * dt
}

// routePosition interpolates a route at time t, holding the first point
// before the route starts and the last point after it ends.
func routePosition(route []model.RoutePoint, t float64) [2]float64 {
	if len(route) == 0 {
		return [2]float64{0, 0}
	}
	if t <= route[0].Timestamp {
		return [2]float64{route[0].X, route[0].Y}
	}
	for i := 0; i+1 < len(route); i++ {
		start, end := route[i], route[i+1]
		if start.Timestamp <= t && t <= end.Timestamp {
			total := end.Timestamp - start.Timestamp
			ratio := 0.0
			if total > 0 {
				ratio = (t - start.Timestamp) / total
			}
			return [2]float64{
				start.X + (end.X-start.X)*ratio,
				start.Y + (end.Y-start.Y)*ratio,
			}
		}
	}
	last := route[len(route)-1]
	return [2]float64{last.X, last.Y}
}

func baseSpeed(rating int) float64 {
	return 4.0 + float64(rating)/100.0*6.5
}

func length(v [2]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1])
}

func distanceBetween(a, b [2]float64) float64 {
	return length([2]float64{a[0] - b[0], a[1] - b[1]})
}

func logistic(value float64) float64 {
	return 1.0 / (1.0 + math.Exp(-value))
}
