package memory

import (
	"context"
	"sync"

	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players     map[model.PlayerID]*model.Player
	games       map[model.GameID]*model.GameRecord
	activeGames map[model.PlayerID]model.GameID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:     make(map[model.PlayerID]*model.Player),
		games:       make(map[model.GameID]*model.GameRecord),
		activeGames: make(map[model.PlayerID]model.GameID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	delete(s.activeGames, id)
	return nil
}

// Game record operations

func (s *Storage) SaveGameRecord(ctx context.Context, record *model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.games[record.ID]; ok && record.Snapshot.Version < current.Snapshot.Version {
		return nil
	}
	s.games[record.ID] = cloneRecord(record)
	return nil
}

func (s *Storage) GetGameRecord(ctx context.Context, id model.GameID) (*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return cloneRecord(record), nil
}

func (s *Storage) DeleteGameRecord(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// cloneRecord copies the slices so callers never share a stored record
func cloneRecord(record *model.GameRecord) *model.GameRecord {
	out := *record
	out.Snapshot.Cards = append([]model.CardView(nil), record.Snapshot.Cards...)
	out.Snapshot.Selection = append([]model.CardID(nil), record.Snapshot.Selection...)
	return &out
}

// Active game operations

func (s *Storage) SetActiveGame(ctx context.Context, playerID model.PlayerID, gameID model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeGames[playerID] = gameID
	return nil
}

func (s *Storage) GetActiveGame(ctx context.Context, playerID model.PlayerID) (model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gameID, ok := s.activeGames[playerID]
	if !ok {
		return "", model.ErrNoActiveGame
	}
	return gameID, nil
}

func (s *Storage) ClearActiveGame(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeGames, playerID)
	return nil
}
