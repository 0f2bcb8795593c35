package game

import (
	"fmt"
	"sort"

	"github.com/gridsim/gridiron/internal/domain/fatigue"
	"github.com/gridsim/gridiron/internal/domain/model"
	"github.com/gridsim/gridiron/internal/domain/statbook"
)

// injuryRecord tracks one player's in-game injury. Minor injuries clear at
// the first drive break after the one they occurred in; moderate and
// severe injuries last the rest of the game.
type injuryRecord struct {
	severity string
	drive    int
}

// teamState is the mutable runtime view of one team inside a single game
// simulation. It is owned by the goroutine running the game and never
// shared.
type teamState struct {
	id       string
	roster   model.Roster
	book     *statbook.Book
	score    int
	fatigue  map[string]*fatigue.State
	injuries map[string]injuryRecord
}

func newTeamState(id string, roster model.Roster, book *statbook.Book) *teamState {
	return &teamState{
		id:       id,
		roster:   roster,
		book:     book,
		fatigue:  map[string]*fatigue.State{},
		injuries: map[string]injuryRecord{},
	}
}

func (t *teamState) fatigueOf(playerID string) *fatigue.State {
	state, ok := t.fatigue[playerID]
	if !ok {
		state = &fatigue.State{}
		t.fatigue[playerID] = state
	}
	return state
}

// available reports whether a player may take the field.
func (t *teamState) available(playerID string) bool {
	_, injured := t.injuries[playerID]
	return !injured
}

// sortedIDs returns roster ids in lexicographic order. All roster
// iteration goes through this so results never depend on map ordering.
func (t *teamState) sortedIDs() []string {
	ids := make([]string, 0, len(t.roster))
	for id := range t.roster {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// healthyRoster returns the subset of the roster currently able to play.
func (t *teamState) healthyRoster() model.Roster {
	out := model.Roster{}
	for id, player := range t.roster {
		if t.available(id) {
			out[id] = player
		}
	}
	return out
}

// fatigueModifiers snapshots per-player speed multipliers for the engine.
func (t *teamState) fatigueModifiers() map[string]float64 {
	mods := map[string]float64{}
	for id, state := range t.fatigue {
		mods[id] = state.Multiplier()
	}
	return mods
}

// driveBreak applies between-drive recovery and returns minor injuries
// sustained in earlier drives.
func (t *teamState) driveBreak(currentDrive int) {
	for _, id := range t.sortedIDs() {
		t.fatigueOf(id).Apply(0, driveBreakRecovery)
	}
	for id, record := range t.injuries {
		if record.severity == fatigue.SeverityMinor && record.drive < currentDrive {
			delete(t.injuries, id)
		}
	}
}

// choosePlayer picks the least fatigued available player at any of the
// given positions. Candidates are scanned in id order so ties resolve
// deterministically. A nil return with a nil error means optional and
// unfilled.
func (t *teamState) choosePlayer(positions []model.Position, exclude map[string]bool, optional bool) (*model.Player, error) {
	wanted := map[model.Position]bool{}
	for _, p := range positions {
		wanted[p] = true
	}

	var best *model.Player
	bestFatigue := 0.0
	for _, id := range t.sortedIDs() {
		if exclude[id] || !t.available(id) {
			continue
		}
		player := t.roster[id]
		if !wanted[player.Position] {
			continue
		}
		f := t.fatigueOf(id).Value
		if best == nil || f < bestFatigue {
			p := player
			best = &p
			bestFatigue = f
		}
	}
	if best == nil {
		if optional {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: no available player at %v", ErrMissingPosition, positions)
	}
	return best, nil
}

// chooseMultiple picks count available players at the given positions,
// least fatigued first, ids breaking ties.
func (t *teamState) chooseMultiple(positions []model.Position, count int, exclude map[string]bool) ([]model.Player, error) {
	wanted := map[model.Position]bool{}
	for _, p := range positions {
		wanted[p] = true
	}

	type candidate struct {
		player  model.Player
		fatigue float64
	}
	var candidates []candidate
	for _, id := range t.sortedIDs() {
		if exclude[id] || !t.available(id) {
			continue
		}
		player := t.roster[id]
		if !wanted[player.Position] {
			continue
		}
		candidates = append(candidates, candidate{player: player, fatigue: t.fatigueOf(id).Value})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].fatigue < candidates[j].fatigue
	})
	if len(candidates) < count {
		return nil, fmt.Errorf("%w: need %d of %v, have %d available", ErrMissingPosition, count, positions, len(candidates))
	}
	selected := make([]model.Player, count)
	for i := range selected {
		selected[i] = candidates[i].player
	}
	return selected, nil
}
