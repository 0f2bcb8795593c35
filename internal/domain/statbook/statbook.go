// Package statbook accumulates play events and reduces them into box
// scores and advanced rates. The log is append-only; reductions are pure,
// idempotent, and side-effect free.
package statbook

// PlayerLine is the fixed per-player counter schema.
type PlayerLine struct {
	PassAttempts        float64
	PassCompletions     float64
	PassYards           float64
	Pressures           float64
	SacksTaken          float64
	InterceptionsThrown float64
	RushAttempts        float64
	RushYards           float64
	Receptions          float64
	ReceivingYards      float64
	Tackles             float64
	Sacks               float64
	InterceptionsMade   float64
	PressuresGenerated  float64
}

// TeamLine is the fixed per-team counter schema.
type TeamLine struct {
	Plays        float64
	Yards        float64
	Successes    float64
	EPA          float64
	PassAttempts float64
	RushAttempts float64
	Pressures    float64
	Sacks        float64
	Turnovers    float64
	Penalties    float64
}

// Boxscore aggregates the event log into per-player and per-team lines.
type Boxscore struct {
	Players map[string]PlayerLine
	Teams   map[string]TeamLine
}

// PasserRates are per-passer derived ratios.
type PasserRates struct {
	CompletionPct   float64
	YardsPerAttempt float64
	PressureRate    float64
	SackRate        float64
}

// TeamRates are per-team derived ratios.
type TeamRates struct {
	SuccessRate  float64
	EPAPerPlay   float64
	PressureRate float64
}

// Rates holds every derived ratio. Divisions by zero yield 0.0.
type Rates struct {
	Passers map[string]PasserRates
	Teams   map[string]TeamRates
}

// Book is an append-only event log.
type Book struct {
	events []Event
}

// New returns an empty Book.
func New() *Book {
	return &Book{}
}

// Note appends one event.
func (b *Book) Note(event Event) {
	b.events = append(b.events, event)
}

// Extend appends a sequence of events in order.
func (b *Book) Extend(events []Event) {
	b.events = append(b.events, events...)
}

// Events returns a copy of the log.
func (b *Book) Events() []Event {
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// Len returns the number of logged events.
func (b *Book) Len() int {
	return len(b.events)
}

// Boxscore reduces the log in a single pass.
func (b *Book) Boxscore() Boxscore {
	players := map[string]PlayerLine{}
	teams := map[string]TeamLine{}

	player := func(id string) PlayerLine { return players[id] }
	team := func(name string) TeamLine { return teams[name] }

	for _, event := range b.events {
		switch event.Type {
		case EventPassAttempt:
			passerID := event.PlayerID
			if passerID == "" {
				passerID = event.MetaString("passer_id")
			}
			if passerID != "" {
				line := player(passerID)
				line.PassAttempts++
				players[passerID] = line
			}
			t := team(TeamOffense)
			t.PassAttempts++
			teams[TeamOffense] = t

		case EventPassCompletion:
			passerID := event.MetaString("passer_id")
			receiverID := event.MetaString("receiver_id")
			if receiverID == "" {
				receiverID = event.PlayerID
			}
			if passerID != "" {
				line := player(passerID)
				line.PassCompletions++
				players[passerID] = line
			}
			if receiverID != "" {
				line := player(receiverID)
				line.Receptions++
				players[receiverID] = line
			}

		case EventPassIncomplete:
			// Attempt was already logged at release; ensure the passer has a line.
			passerID := event.PlayerID
			if passerID == "" {
				passerID = event.MetaString("passer_id")
			}
			if passerID != "" {
				players[passerID] = player(passerID)
			}

		case EventRushAttempt:
			runnerID := event.PlayerID
			if runnerID == "" {
				runnerID = event.MetaString("runner_id")
			}
			if runnerID != "" {
				line := player(runnerID)
				line.RushAttempts++
				players[runnerID] = line
			}
			t := team(TeamOffense)
			t.RushAttempts++
			teams[TeamOffense] = t

		case EventPressure:
			passerID := event.MetaString("passer_id")
			defenderID := event.MetaString("defender_id")
			if defenderID == "" {
				defenderID = event.PlayerID
			}
			if passerID != "" {
				line := player(passerID)
				line.Pressures++
				players[passerID] = line
			}
			if defenderID != "" {
				line := player(defenderID)
				line.PressuresGenerated++
				players[defenderID] = line
			}
			t := team(TeamOffense)
			t.Pressures++
			teams[TeamOffense] = t

		case EventSack:
			qbID := event.MetaString("qb_id")
			if qbID == "" {
				qbID = event.TargetID
			}
			if qbID != "" {
				line := player(qbID)
				line.SacksTaken++
				players[qbID] = line
			}
			if event.PlayerID != "" {
				line := player(event.PlayerID)
				line.Sacks++
				players[event.PlayerID] = line
			}
			t := team(TeamDefense)
			t.Sacks++
			teams[TeamDefense] = t

		case EventInterception:
			passerID := event.MetaString("passer_id")
			defenderID := event.MetaString("defender_id")
			if defenderID == "" {
				defenderID = event.PlayerID
			}
			if passerID != "" {
				line := player(passerID)
				line.InterceptionsThrown++
				players[passerID] = line
			}
			if defenderID != "" {
				line := player(defenderID)
				line.InterceptionsMade++
				players[defenderID] = line
			}
			t := team(TeamOffense)
			t.Turnovers++
			teams[TeamOffense] = t

		case EventTackle:
			if event.PlayerID != "" {
				line := player(event.PlayerID)
				line.Tackles++
				players[event.PlayerID] = line
			}

		case EventPenalty:
			t := team(event.Team)
			t.Penalties++
			teams[event.Team] = t
		}

		if event.Type == EventPlayEnd {
			playType := event.MetaString("play_type")
			if playType == "" {
				playType = "unknown"
			}
			t := team(TeamOffense)
			t.Plays++
			t.Yards += event.Yards
			t.EPA += event.Yards * 0.05
			if event.MetaBool("success") {
				t.Successes++
			}
			if event.MetaBool("interception") {
				t.Turnovers++
			}
			teams[TeamOffense] = t

			passerID := event.MetaString("passer_id")
			runnerID := event.MetaString("runner_id")
			receiverID := event.MetaString("receiver_id")

			switch playType {
			case "pass":
				if passerID != "" {
					line := player(passerID)
					line.PassYards += event.Yards
					players[passerID] = line
				}
				if receiverID != "" {
					line := player(receiverID)
					line.ReceivingYards += event.Yards
					players[receiverID] = line
				}
			case "run":
				if runnerID != "" {
					line := player(runnerID)
					line.RushYards += event.Yards
					players[runnerID] = line
				}
			}
		}
	}

	return Boxscore{Players: players, Teams: teams}
}

// AdvancedRates derives ratios from the box score, guarding every division.
func (b *Book) AdvancedRates() Rates {
	box := b.Boxscore()

	passers := map[string]PasserRates{}
	for playerID, stats := range box.Players {
		attempts := stats.PassAttempts
		if attempts == 0 {
			continue
		}
		passers[playerID] = PasserRates{
			CompletionPct:   stats.PassCompletions / attempts,
			YardsPerAttempt: stats.PassYards / attempts,
			PressureRate:    stats.Pressures / attempts,
			SackRate:        stats.SacksTaken / attempts,
		}
	}

	teams := map[string]TeamRates{}
	for name, stats := range box.Teams {
		rates := TeamRates{}
		if stats.Plays > 0 {
			rates.SuccessRate = stats.Successes / stats.Plays
			rates.EPAPerPlay = stats.EPA / stats.Plays
		}
		if stats.PassAttempts > 0 {
			rates.PressureRate = stats.Pressures / stats.PassAttempts
		}
		teams[name] = rates
	}

	return Rates{Passers: passers, Teams: teams}
}
