package statbook

// Event types emitted by the play engine and game orchestrator.
const (
	EventSnap           = "snap"
	EventPassAttempt    = "pass_attempt"
	EventPassCompletion = "pass_completion"
	EventPassIncomplete = "pass_incomplete"
	EventRushAttempt    = "rush_attempt"
	EventPressure       = "pressure"
	EventSack           = "sack"
	EventInterception   = "interception"
	EventTackle         = "tackle"
	EventPenalty        = "penalty"
	EventInjury         = "injury"
	EventFieldGoal      = "field_goal"
	EventPunt           = "punt"
	EventKickoff        = "kickoff"
	EventPlayEnd        = "play_end"
)

// Team labels used on events.
const (
	TeamOffense = "offense"
	TeamDefense = "defense"
)

// Event is one immutable, timestamped record of simulation output.
// Sequences of events are append-only and never mutated after creation.
type Event struct {
	Type      string
	Timestamp float64
	Team      string
	PlayerID  string
	TargetID  string
	Yards     float64
	Meta      map[string]any
}

// MetaString returns a string metadata value, or "" when absent.
func (e Event) MetaString(key string) string {
	if e.Meta == nil {
		return ""
	}
	if v, ok := e.Meta[key].(string); ok {
		return v
	}
	return ""
}

// MetaFloat returns a numeric metadata value, or 0 when absent.
func (e Event) MetaFloat(key string) float64 {
	if e.Meta == nil {
		return 0
	}
	switch v := e.Meta[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// MetaBool returns a boolean metadata value, or false when absent.
func (e Event) MetaBool(key string) bool {
	if e.Meta == nil {
		return false
	}
	if v, ok := e.Meta[key].(bool); ok {
		return v
	}
	return false
}
