package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/memorygame/internal/dependencies/mocks"
	"github.com/mcoot/memorygame/internal/dependencies/scheduler"
	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/render"
	"github.com/mcoot/memorygame/internal/services/game"
	"github.com/mcoot/memorygame/internal/storage/memory"
	"github.com/mcoot/memorygame/internal/testutil"
)

// recordingRenderers hands out RecordingRenderers and remembers releases
type recordingRenderers struct {
	renderers map[model.GameID]*mocks.RecordingRenderer
	released  []model.GameID
}

func (p *recordingRenderers) Renderer(gameID model.GameID) render.Clickable {
	r := mocks.NewRecordingRenderer()
	p.renderers[gameID] = r
	return r
}

func (p *recordingRenderers) Release(gameID model.GameID) {
	p.released = append(p.released, gameID)
}

// failingClearStorage cannot clear a player's active game
type failingClearStorage struct {
	*memory.Storage
}

func (failingClearStorage) ClearActiveGame(context.Context, model.PlayerID) error {
	return errors.New("connection reset")
}

type ManagerSuite struct {
	suite.Suite
	storage   *memory.Storage
	scheduler *mocks.ManualScheduler
	clock     *mocks.MockClock
	renderers *recordingRenderers
	manager   *Manager
	ctx       context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.storage = memory.New()
	s.scheduler = mocks.NewManualScheduler()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.renderers = &recordingRenderers{renderers: make(map[model.GameID]*mocks.RecordingRenderer)}
	s.ctx = context.Background()

	symbols := model.DefaultSymbols()
	var deck []model.Symbol
	for i := 0; i < len(symbols); i += 2 {
		deck = append(deck, symbols[i], symbols[i+1], symbols[i], symbols[i+1])
	}

	s.manager = New(Dependencies{
		Storage:   s.storage,
		Renderers: s.renderers,
		Shuffler:  mocks.NewFixedShuffler(deck),
		NewTimer:  func() scheduler.Timer { return s.scheduler.NewTimer() },
		Delayer:   s.scheduler,
		IDs:       mocks.NewSequentialIDs("id"),
		Clock:     s.clock,
		Logger:    testutil.NopLogger(),
	}, DefaultConfig())

	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "alice", DisplayName: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "bob", DisplayName: "Bob"})
}

func (s *ManagerSuite) newGame(playerID model.PlayerID) model.Snapshot {
	snap, err := s.manager.NewGame(s.ctx, playerID)
	s.Require().NoError(err)
	return snap
}

// NewGame tests

func (s *ManagerSuite) TestNewGameStartsPlaying() {
	snap := s.newGame("alice")

	s.NotEmpty(snap.GameID)
	s.Equal(model.PhasePlaying, snap.State.Phase)
	s.Len(snap.Cards, 16)
	s.Equal(60, snap.State.TimeRemaining)
	s.Equal(1, s.manager.Count())
	s.Equal(1, s.renderers.renderers[snap.GameID].CountCalls("RenderBoard"))
}

func (s *ManagerSuite) TestNewGameSetsActiveGame() {
	snap := s.newGame("alice")

	active, err := s.manager.ActiveGame(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(snap.GameID, active.GameID)
}

func (s *ManagerSuite) TestNewGamePersistsRecord() {
	snap := s.newGame("alice")

	record, err := s.storage.GetGameRecord(s.ctx, snap.GameID)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("alice"), record.PlayerID)
	s.Equal(snap.Version, record.Snapshot.Version)
}

func (s *ManagerSuite) TestNewGameReplacesPrevious() {
	first := s.newGame("alice")
	second := s.newGame("alice")

	s.NotEqual(first.GameID, second.GameID)
	s.Equal(1, s.manager.Count())
	s.Contains(s.renderers.released, first.GameID)

	_, err := s.manager.Get(s.ctx, "alice", first.GameID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ManagerSuite) TestNewGameUnknownPlayer() {
	_, err := s.manager.NewGame(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ManagerSuite) TestActiveGameNone() {
	_, err := s.manager.ActiveGame(s.ctx, "alice")
	s.ErrorIs(err, model.ErrNoActiveGame)
}

// Get tests

func (s *ManagerSuite) TestGetRejectsOtherPlayer() {
	snap := s.newGame("alice")

	_, err := s.manager.Get(s.ctx, "bob", snap.GameID)
	s.ErrorIs(err, model.ErrNotGameOwner)
}

func (s *ManagerSuite) TestGetUnknownGame() {
	_, err := s.manager.Get(s.ctx, "alice", "nope")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Click tests

func (s *ManagerSuite) TestClickFlipsThroughRenderer() {
	snap := s.newGame("alice")
	card := snap.Cards[0].ID

	after, err := s.manager.Click(s.ctx, "alice", snap.GameID, card)
	s.Require().NoError(err)

	s.Equal([]model.CardID{card}, after.Selection)
	s.Equal(model.FaceUp, s.renderers.renderers[snap.GameID].Face(card))
}

func (s *ManagerSuite) TestClickMatchPersists() {
	snap := s.newGame("alice")

	_, _ = s.manager.Click(s.ctx, "alice", snap.GameID, snap.Cards[0].ID)
	after, _ := s.manager.Click(s.ctx, "alice", snap.GameID, snap.Cards[2].ID)

	s.Equal(1, after.State.MatchedPairs)
	record, _ := s.storage.GetGameRecord(s.ctx, snap.GameID)
	s.Equal(1, record.Snapshot.State.MatchedPairs)
}

func (s *ManagerSuite) TestClickUnknownCard() {
	snap := s.newGame("alice")

	_, err := s.manager.Click(s.ctx, "alice", snap.GameID, "missing")
	s.ErrorIs(err, model.ErrCardNotFound)
}

func (s *ManagerSuite) TestClickOtherPlayersGame() {
	snap := s.newGame("alice")

	_, err := s.manager.Click(s.ctx, "bob", snap.GameID, snap.Cards[0].ID)
	s.ErrorIs(err, model.ErrNotGameOwner)
}

func (s *ManagerSuite) TestTicksPersist() {
	snap := s.newGame("alice")

	s.scheduler.Advance(5 * time.Second)

	record, _ := s.storage.GetGameRecord(s.ctx, snap.GameID)
	s.Equal(55, record.Snapshot.State.TimeRemaining)
}

// Restart tests

func (s *ManagerSuite) TestRestartRedeals() {
	snap := s.newGame("alice")
	_, _ = s.manager.Click(s.ctx, "alice", snap.GameID, snap.Cards[0].ID)
	_, _ = s.manager.Click(s.ctx, "alice", snap.GameID, snap.Cards[2].ID)

	after, err := s.manager.Restart(s.ctx, "alice", snap.GameID)
	s.Require().NoError(err)

	s.Equal(snap.GameID, after.GameID)
	s.Equal(0, after.State.MatchedPairs)
	s.NotEqual(snap.Cards[0].ID, after.Cards[0].ID)
}

func (s *ManagerSuite) TestRestartOtherPlayersGame() {
	snap := s.newGame("alice")

	_, err := s.manager.Restart(s.ctx, "bob", snap.GameID)
	s.ErrorIs(err, model.ErrNotGameOwner)
}

// Close tests

func (s *ManagerSuite) TestCloseForgetsGame() {
	snap := s.newGame("alice")

	err := s.manager.Close(s.ctx, "alice", snap.GameID)
	s.Require().NoError(err)

	s.Zero(s.manager.Count())
	_, err = s.manager.Get(s.ctx, "alice", snap.GameID)
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.manager.ActiveGame(s.ctx, "alice")
	s.ErrorIs(err, model.ErrNoActiveGame)
	s.Zero(s.scheduler.Pending())
}

func (s *ManagerSuite) TestCloseLogsClearActiveGameFailure() {
	logger, logs := testutil.CaptureLogger()
	deps := s.manager.deps
	deps.Storage = failingClearStorage{s.storage}
	deps.Logger = logger
	s.manager = New(deps, DefaultConfig())
	snap := s.newGame("alice")

	s.Require().NoError(s.manager.Close(s.ctx, "alice", snap.GameID))

	entry, ok := logs.Find("failed to clear active game")
	s.Require().True(ok)
	s.Equal("WARN", entry["level"])
	s.Equal(string(snap.GameID), entry["game_id"])
	s.Equal("connection reset", entry["error"])
}

func (s *ManagerSuite) TestSnapshotArrivingAfterCloseIsDropped() {
	snap := s.newGame("alice")
	s.manager.mu.RLock()
	live := s.manager.games[snap.GameID]
	s.manager.mu.RUnlock()

	s.Require().NoError(s.manager.Close(s.ctx, "alice", snap.GameID))

	// A tick that released the controller before Close still reports its change
	late := snap
	late.Version += 10
	s.manager.persist(live, late)

	_, err := s.storage.GetGameRecord(s.ctx, snap.GameID)
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.manager.Get(s.ctx, "alice", snap.GameID)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ManagerSuite) TestCloseOtherPlayersGame() {
	snap := s.newGame("alice")

	err := s.manager.Close(s.ctx, "bob", snap.GameID)
	s.ErrorIs(err, model.ErrNotGameOwner)
	s.Equal(1, s.manager.Count())
}

// Eviction tests

func (s *ManagerSuite) TestEvictIdle() {
	idle := s.newGame("alice")
	s.clock.Advance(20 * time.Minute)
	busy := s.newGame("bob")
	s.clock.Advance(15 * time.Minute)

	evicted := s.manager.EvictIdle(s.ctx)

	s.Equal(1, evicted)
	_, err := s.manager.Snapshot(idle.GameID)
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.manager.Snapshot(busy.GameID)
	s.NoError(err)

	// Evicted games are still viewable from their record
	record, err := s.manager.Get(s.ctx, "alice", idle.GameID)
	s.Require().NoError(err)
	s.Equal(idle.GameID, record.GameID)
}

func (s *ManagerSuite) TestEvictedGameIgnoresLateSnapshots() {
	snap := s.newGame("alice")
	s.manager.mu.RLock()
	live := s.manager.games[snap.GameID]
	s.manager.mu.RUnlock()
	s.clock.Advance(31 * time.Minute)
	s.Require().Equal(1, s.manager.EvictIdle(s.ctx))

	late := snap
	late.Version += 10
	s.manager.persist(live, late)

	record, err := s.storage.GetGameRecord(s.ctx, snap.GameID)
	s.Require().NoError(err)
	s.Equal(snap.Version, record.Snapshot.Version)
}

func (s *ManagerSuite) TestClickKeepsGameAlive() {
	snap := s.newGame("alice")
	s.clock.Advance(25 * time.Minute)
	_, _ = s.manager.Click(s.ctx, "alice", snap.GameID, snap.Cards[0].ID)
	s.clock.Advance(10 * time.Minute)

	s.Zero(s.manager.EvictIdle(s.ctx))
}

func (s *ManagerSuite) TestShutdownClosesAll() {
	s.newGame("alice")
	s.newGame("bob")

	s.manager.Shutdown()

	s.Zero(s.manager.Count())
	s.Len(s.renderers.released, 2)
	s.Zero(s.scheduler.Pending())
}

func (s *ManagerSuite) TestOnChangeHookStillCalled() {
	var seen []uint64
	cfg := DefaultConfig()
	cfg.Game = game.DefaultConfig()
	cfg.Game.OnChange = func(snap model.Snapshot) { seen = append(seen, snap.Version) }
	s.manager.config = cfg

	s.newGame("alice")

	s.NotEmpty(seen)
}
