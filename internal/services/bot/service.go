// Package bot plays a game by itself, one flip at a time.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/memorygame/internal/model"
)

const (
	// MaxBotIterations is a safety limit for the Play loop
	MaxBotIterations = 1000

	// DefaultPollInterval is how long the bot waits while the board is locked
	DefaultPollInterval = 250 * time.Millisecond
)

// ErrTooManyIterations is returned when a game does not end within MaxBotIterations steps
var ErrTooManyIterations = errors.New("bot gave up: game did not finish")

// Board is the game the bot plays, local or remote
type Board interface {
	Snapshot(ctx context.Context) (model.Snapshot, error)
	Flip(ctx context.Context, id model.CardID) (model.Snapshot, error)
}

// WaitFunc pauses the bot; it returns early with ctx's error when ctx is done
type WaitFunc func(ctx context.Context, d time.Duration) error

// Sleep is the WaitFunc for real time
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Result summarizes a finished bot game
type Result struct {
	Flips        int
	Outcome      model.Phase
	MatchedPairs int
	TotalPairs   int
}

// Service drives a Board with a Strategy until the game ends
type Service struct {
	strategy     Strategy
	wait         WaitFunc
	pollInterval time.Duration
	logger       *slog.Logger
}

// NewService creates a bot Service; a nil wait sleeps in real time
func NewService(strategy Strategy, wait WaitFunc, logger *slog.Logger) *Service {
	if wait == nil {
		wait = Sleep
	}
	return &Service{
		strategy:     strategy,
		wait:         wait,
		pollInterval: DefaultPollInterval,
		logger:       logger.With(slog.String("component", "bot-service")),
	}
}

// Play flips cards until the game is won or lost.
// onFlip, if set, is called with the state after each flip.
func (s *Service) Play(ctx context.Context, board Board, onFlip func(model.Snapshot)) (Result, error) {
	snap, err := board.Snapshot(ctx)
	if err != nil {
		return Result{}, err
	}

	flips := 0
	for range MaxBotIterations {
		s.strategy.Observe(snap)

		if snap.State.Phase.IsOver() {
			s.logger.Info("bot finished",
				slog.String("game_id", string(snap.GameID)),
				slog.String("outcome", string(snap.State.Phase)),
				slog.Int("flips", flips),
			)
			return Result{
				Flips:        flips,
				Outcome:      snap.State.Phase,
				MatchedPairs: snap.State.MatchedPairs,
				TotalPairs:   snap.State.TotalPairs,
			}, nil
		}

		var id model.CardID
		ok := false
		if snap.State.Phase == model.PhasePlaying && !snap.State.BoardLocked {
			id, ok = s.strategy.ChooseCard(snap)
		}
		if !ok {
			// Locked, or nothing to flip yet
			if err := s.wait(ctx, s.pollInterval); err != nil {
				return Result{}, err
			}
			if snap, err = board.Snapshot(ctx); err != nil {
				return Result{}, err
			}
			continue
		}

		if snap, err = board.Flip(ctx, id); err != nil {
			return Result{}, fmt.Errorf("flip %s: %w", id, err)
		}
		flips++
		s.logger.Debug("bot flipped card", slog.String("card_id", string(id)))
		if onFlip != nil {
			onFlip(snap)
		}
	}

	return Result{}, ErrTooManyIterations
}
