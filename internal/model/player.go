package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is a guest identity that owns at most one active game
type Player struct {
	ID          PlayerID
	DisplayName string
	CreatedAt   time.Time
}
