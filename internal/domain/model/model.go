// Package model contains the domain types consumed by the simulator.
//
// Players come from the external roster provider and plays from the
// external playbook provider; both are read-only to the simulation core.
package model

import (
	"errors"
	"fmt"
)

// Position identifies a player's position group.
type Position string

// The closed set of positions.
const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
	PositionOL Position = "OL"
	PositionDL Position = "DL"
	PositionLB Position = "LB"
	PositionCB Position = "CB"
	PositionS  Position = "S"
	PositionK  Position = "K"
	PositionP  Position = "P"
)

var validPositions = map[Position]bool{
	PositionQB: true, PositionRB: true, PositionWR: true, PositionTE: true,
	PositionOL: true, PositionDL: true, PositionLB: true, PositionCB: true,
	PositionS: true, PositionK: true, PositionP: true,
}

// Attributes are the scalar ratings (0-100) describing a player's
// physical and technical abilities.
type Attributes struct {
	Speed         int
	Strength      int
	Agility       int
	Awareness     int
	Catching      int
	Tackling      int
	ThrowingPower int
	Accuracy      int
}

// Validate checks every rating is within [0, 100].
func (a Attributes) Validate() error {
	ratings := map[string]int{
		"speed":          a.Speed,
		"strength":       a.Strength,
		"agility":        a.Agility,
		"awareness":      a.Awareness,
		"catching":       a.Catching,
		"tackling":       a.Tackling,
		"throwing_power": a.ThrowingPower,
		"accuracy":       a.Accuracy,
	}
	for name, v := range ratings {
		if v < 0 || v > 100 {
			return fmt.Errorf("attribute %s out of range: %d", name, v)
		}
	}
	return nil
}

// Player is the immutable identity and rating sheet for one player.
type Player struct {
	PlayerID     string
	Name         string
	Position     Position
	JerseyNumber int
	Attributes   Attributes
	TeamID       string
}

// Validate checks the player's identity and ratings.
func (p Player) Validate() error {
	if p.PlayerID == "" {
		return errors.New("player_id is required")
	}
	if !validPositions[p.Position] {
		return fmt.Errorf("unknown position %q", p.Position)
	}
	if p.JerseyNumber < 0 || p.JerseyNumber > 99 {
		return fmt.Errorf("jersey number out of range: %d", p.JerseyNumber)
	}
	return p.Attributes.Validate()
}

// Roster maps player ids to players.
type Roster map[string]Player

// Role is a per-play responsibility given to a player.
type Role string

// The closed set of assignment roles.
const (
	RoleBlock  Role = "block"
	RoleRoute  Role = "route"
	RoleCarry  Role = "carry"
	RolePass   Role = "pass"
	RoleDefend Role = "defend"
	RoleRush   Role = "rush"
	RoleKick   Role = "kick"
	RoleHold   Role = "hold"
)

var validRoles = map[Role]bool{
	RoleBlock: true, RoleRoute: true, RoleCarry: true, RolePass: true,
	RoleDefend: true, RoleRush: true, RoleKick: true, RoleHold: true,
}

// RoutePoint is a single waypoint in a player's route. X is yards from
// the center of the field, Y yards downfield from the snap.
type RoutePoint struct {
	Timestamp float64
	X         float64
	Y         float64
}

// Assignment is the instruction given to one player for one play.
type Assignment struct {
	PlayerID string
	Role     Role
	Route    []RoutePoint
}

// Validate checks the role and route ordering. Route waypoint timestamps
// must strictly increase.
func (a Assignment) Validate() error {
	if a.PlayerID == "" {
		return errors.New("assignment player_id is required")
	}
	if !validRoles[a.Role] {
		return fmt.Errorf("unknown role %q", a.Role)
	}
	for i := 1; i < len(a.Route); i++ {
		if a.Route[i].Timestamp <= a.Route[i-1].Timestamp {
			return errors.New("route timestamps must be strictly increasing")
		}
	}
	return nil
}

// Play is a named play with metadata and per-player assignments.
type Play struct {
	PlayID      string
	Name        string
	Formation   string
	Personnel   string
	PlayType    string
	Assignments []Assignment
}

// Validate checks the play and all of its assignments.
func (p Play) Validate() error {
	if p.PlayID == "" {
		return errors.New("play_id is required")
	}
	for i, a := range p.Assignments {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("assignment %d: %w", i, err)
		}
	}
	return nil
}

// GameConfig carries caller-validated game parameters.
type GameConfig struct {
	QuarterLength   float64 `koanf:"quarter_length"`
	Quarters        int     `koanf:"quarters"`
	MaxPlays        int     `koanf:"max_plays"`
	KickoffYardline float64 `koanf:"kickoff_yardline"`
}

// DefaultGameConfig returns regulation settings.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		QuarterLength:   900.0,
		Quarters:        4,
		MaxPlays:        130,
		KickoffYardline: 25.0,
	}
}

// Validate range-checks the configuration.
func (c GameConfig) Validate() error {
	if c.QuarterLength <= 0 {
		return errors.New("quarter_length must be positive")
	}
	if c.Quarters < 1 {
		return errors.New("quarters must be at least 1")
	}
	if c.MaxPlays < 1 {
		return errors.New("max_plays must be at least 1")
	}
	if c.KickoffYardline < 0 || c.KickoffYardline > 100 {
		return fmt.Errorf("kickoff_yardline out of range: %v", c.KickoffYardline)
	}
	return nil
}
