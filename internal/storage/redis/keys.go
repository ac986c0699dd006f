package redis

import (
	"fmt"

	"github.com/mcoot/memorygame/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "memgame"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// gameKey returns the Redis key for a GameRecord
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gameVersionKey returns the Redis key holding the snapshot version last saved for a game
func gameVersionKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s:version", keyPrefix, id)
}

// activeGameKey returns the Redis key holding a player's live game ID
func activeGameKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:active_game:%s", keyPrefix, playerID)
}
