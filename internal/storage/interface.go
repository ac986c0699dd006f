package storage

import (
	"context"

	"github.com/mcoot/memorygame/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Game record operations. SaveGameRecord keeps the stored record when it
	// carries a newer snapshot version than the one being saved.
	SaveGameRecord(ctx context.Context, record *model.GameRecord) error
	GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error)
	DeleteGameRecord(ctx context.Context, id model.GameID) error

	// Active game index: at most one live game per player
	SetActiveGame(ctx context.Context, playerID model.PlayerID, gameID model.GameID) error
	GetActiveGame(ctx context.Context, playerID model.PlayerID) (model.GameID, error)
	ClearActiveGame(ctx context.Context, playerID model.PlayerID) error
}
