package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/memorygame/internal/dependencies/clock"
	"github.com/mcoot/memorygame/internal/dependencies/ids"
	"github.com/mcoot/memorygame/internal/dependencies/scheduler"
	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/render"
	"github.com/mcoot/memorygame/internal/services/game"
	"github.com/mcoot/memorygame/internal/storage"
)

// RendererProvider hands out the renderer a game draws on
type RendererProvider interface {
	Renderer(gameID model.GameID) render.Clickable
	// Release is called once the game is discarded
	Release(gameID model.GameID)
}

// NopRenderers provides renderers that draw nothing, for API-only hosting
type NopRenderers struct{}

func (NopRenderers) Renderer(model.GameID) render.Clickable { return &render.Nop{} }
func (NopRenderers) Release(model.GameID) {}

// Config holds configuration for the session manager
type Config struct {
	Game    game.Config
	IdleTTL time.Duration // Games untouched for this long are evicted
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		Game:    game.DefaultConfig(),
		IdleTTL: 30 * time.Minute,
	}
}

// Dependencies are the collaborators each hosted game is built from
type Dependencies struct {
	Storage   storage.Storage
	Renderers RendererProvider
	Shuffler  game.Shuffler
	NewTimer  func() scheduler.Timer
	Delayer   scheduler.Delayer
	IDs       ids.Generator
	Clock     clock.Clock
	Logger    *slog.Logger
}

// liveGame is a running controller and its bookkeeping
type liveGame struct {
	controller *game.Controller
	renderer   render.Clickable
	playerID   model.PlayerID
	createdAt  time.Time

	mu           sync.Mutex
	lastActive   time.Time
	savedVersion uint64
	closed       bool // No more writes reach storage once set
}

func (g *liveGame) touch(now time.Time) {
	g.mu.Lock()
	g.lastActive = now
	g.mu.Unlock()
}

// markClosed stops further persists. Any write already in flight finishes first.
func (g *liveGame) markClosed() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

func (g *liveGame) idleSince() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastActive
}

// Manager hosts live games, one per player, and mirrors their state to storage
type Manager struct {
	deps   Dependencies
	config Config
	logger *slog.Logger

	mu    sync.RWMutex
	games map[model.GameID]*liveGame
}

// New creates a new session Manager
func New(deps Dependencies, cfg Config) *Manager {
	if cfg.IdleTTL == 0 {
		cfg.IdleTTL = DefaultConfig().IdleTTL
	}
	if deps.Renderers == nil {
		deps.Renderers = NopRenderers{}
	}
	return &Manager{
		deps:   deps,
		config: cfg,
		logger: deps.Logger.With(slog.String("component", "session")),
		games:  make(map[model.GameID]*liveGame),
	}
}

// NewGame discards the player's current game, if any, and starts a new one
func (m *Manager) NewGame(ctx context.Context, playerID model.PlayerID) (model.Snapshot, error) {
	if _, err := m.deps.Storage.GetPlayer(ctx, playerID); err != nil {
		return model.Snapshot{}, err
	}

	if previous, err := m.deps.Storage.GetActiveGame(ctx, playerID); err == nil {
		m.discard(ctx, previous)
	}

	now := m.deps.Clock.Now()
	gameID := model.GameID(m.deps.IDs.NewID())
	live := &liveGame{
		renderer:   m.deps.Renderers.Renderer(gameID),
		playerID:   playerID,
		createdAt:  now,
		lastActive: now,
	}

	cfg := m.config.Game
	onChange := cfg.OnChange
	cfg.OnChange = func(snap model.Snapshot) {
		m.persist(live, snap)
		if onChange != nil {
			onChange(snap)
		}
	}

	live.controller = game.NewController(
		gameID,
		cfg,
		live.renderer,
		m.deps.Shuffler,
		m.deps.NewTimer(),
		m.deps.Delayer,
		m.deps.IDs,
		m.deps.Clock,
		m.deps.Logger,
	)

	m.mu.Lock()
	m.games[gameID] = live
	m.mu.Unlock()

	if err := m.deps.Storage.SetActiveGame(ctx, playerID, gameID); err != nil {
		m.discard(ctx, gameID)
		return model.Snapshot{}, fmt.Errorf("set active game: %w", err)
	}

	live.controller.StartGame()

	m.logger.Info("game session created",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
	)

	return live.controller.Snapshot(), nil
}

// persist writes a snapshot through to storage, skipping any older than the last write
func (m *Manager) persist(live *liveGame, snap model.Snapshot) {
	live.mu.Lock()
	defer live.mu.Unlock()
	if live.closed || snap.Version <= live.savedVersion {
		return
	}

	record := &model.GameRecord{
		ID:        snap.GameID,
		PlayerID:  live.playerID,
		Snapshot:  snap,
		CreatedAt: live.createdAt,
		UpdatedAt: snap.UpdatedAt,
	}
	if err := m.deps.Storage.SaveGameRecord(context.Background(), record); err != nil {
		m.logger.Error("failed to save game record",
			slog.String("game_id", string(snap.GameID)),
			slog.String("error", err.Error()),
		)
		return
	}
	live.savedVersion = snap.Version
}

// lookup returns the live game if it belongs to the player
func (m *Manager) lookup(playerID model.PlayerID, gameID model.GameID) (*liveGame, error) {
	m.mu.RLock()
	live, ok := m.games[gameID]
	m.mu.RUnlock()

	if !ok {
		return nil, model.ErrGameNotFound
	}
	if live.playerID != playerID {
		return nil, model.ErrNotGameOwner
	}
	return live, nil
}

// Get returns the player's view of a game. Games no longer live are served
// from their last stored snapshot.
func (m *Manager) Get(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (model.Snapshot, error) {
	live, err := m.lookup(playerID, gameID)
	if err == nil {
		return live.controller.Snapshot(), nil
	}
	if !errors.Is(err, model.ErrGameNotFound) {
		return model.Snapshot{}, err
	}

	record, err := m.deps.Storage.GetGameRecord(ctx, gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	if record.PlayerID != playerID {
		return model.Snapshot{}, model.ErrNotGameOwner
	}
	return record.Snapshot, nil
}

// ActiveGame returns the player's current game
func (m *Manager) ActiveGame(ctx context.Context, playerID model.PlayerID) (model.Snapshot, error) {
	gameID, err := m.deps.Storage.GetActiveGame(ctx, playerID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return m.Get(ctx, playerID, gameID)
}

// Click delivers a card click through the game's renderer, as a user click would
// arrive, and returns the resulting view
func (m *Manager) Click(ctx context.Context, playerID model.PlayerID, gameID model.GameID, cardID model.CardID) (model.Snapshot, error) {
	live, err := m.lookup(playerID, gameID)
	if err != nil {
		return model.Snapshot{}, err
	}

	before := live.controller.Snapshot()
	if _, ok := before.Card(cardID); !ok {
		return model.Snapshot{}, model.ErrCardNotFound
	}

	live.touch(m.deps.Clock.Now())
	live.renderer.Click(cardID)
	return live.controller.Snapshot(), nil
}

// Restart deals the game again
func (m *Manager) Restart(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (model.Snapshot, error) {
	live, err := m.lookup(playerID, gameID)
	if err != nil {
		return model.Snapshot{}, err
	}

	live.touch(m.deps.Clock.Now())
	live.controller.Restart()
	return live.controller.Snapshot(), nil
}

// Close ends the player's game and forgets it
func (m *Manager) Close(ctx context.Context, playerID model.PlayerID, gameID model.GameID) error {
	if _, err := m.lookup(playerID, gameID); err != nil {
		return err
	}
	m.discard(ctx, gameID)
	return nil
}

// discard stops a game and removes every trace of it
func (m *Manager) discard(ctx context.Context, gameID model.GameID) {
	m.mu.Lock()
	live, ok := m.games[gameID]
	delete(m.games, gameID)
	m.mu.Unlock()

	if ok {
		live.markClosed()
		live.controller.Close()
		m.deps.Renderers.Release(gameID)
		if active, err := m.deps.Storage.GetActiveGame(ctx, live.playerID); err == nil && active == gameID {
			if err := m.deps.Storage.ClearActiveGame(ctx, live.playerID); err != nil {
				m.logger.Warn("failed to clear active game",
					slog.String("game_id", string(gameID)),
					slog.String("player_id", string(live.playerID)),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	if err := m.deps.Storage.DeleteGameRecord(ctx, gameID); err != nil {
		m.logger.Warn("failed to delete game record",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
	}

	m.logger.Info("game session closed", slog.String("game_id", string(gameID)))
}

// Snapshot returns the live view of a game regardless of owner
func (m *Manager) Snapshot(gameID model.GameID) (model.Snapshot, error) {
	m.mu.RLock()
	live, ok := m.games[gameID]
	m.mu.RUnlock()

	if !ok {
		return model.Snapshot{}, model.ErrGameNotFound
	}
	return live.controller.Snapshot(), nil
}

// EvictIdle closes games that have not been touched within the idle TTL.
// The stored record survives eviction only until its own TTL runs out.
func (m *Manager) EvictIdle(ctx context.Context) int {
	cutoff := m.deps.Clock.Now().Add(-m.config.IdleTTL)

	m.mu.RLock()
	var idle []model.GameID
	for id, live := range m.games {
		if live.idleSince().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range idle {
		m.mu.Lock()
		live, ok := m.games[id]
		delete(m.games, id)
		m.mu.Unlock()
		if !ok {
			continue
		}
		live.markClosed()
		live.controller.Close()
		m.deps.Renderers.Release(id)
	}

	if len(idle) > 0 {
		m.logger.Info("idle games evicted", slog.Int("count", len(idle)))
	}
	return len(idle)
}

// RunJanitor evicts idle games every interval until ctx is done
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.EvictIdle(ctx)
		}
	}
}

// Count returns the number of live games
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Shutdown closes every live game
func (m *Manager) Shutdown() {
	m.mu.Lock()
	games := m.games
	m.games = make(map[model.GameID]*liveGame)
	m.mu.Unlock()

	for id, live := range games {
		live.markClosed()
		live.controller.Close()
		m.deps.Renderers.Release(id)
	}
}

// Interface for dependency injection
type ManagerInterface interface {
	NewGame(ctx context.Context, playerID model.PlayerID) (model.Snapshot, error)
	Get(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (model.Snapshot, error)
	ActiveGame(ctx context.Context, playerID model.PlayerID) (model.Snapshot, error)
	Click(ctx context.Context, playerID model.PlayerID, gameID model.GameID, cardID model.CardID) (model.Snapshot, error)
	Restart(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (model.Snapshot, error)
	Close(ctx context.Context, playerID model.PlayerID, gameID model.GameID) error
	Snapshot(gameID model.GameID) (model.Snapshot, error)
}

var _ ManagerInterface = (*Manager)(nil)
