package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrNoActiveGame = errors.New("player has no active game")
	ErrNotGameOwner = errors.New("game belongs to another player")
	ErrCardNotFound = errors.New("card not found")
)
