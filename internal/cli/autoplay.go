package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/memorygame/internal/dependencies/random"
	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/services/bot"
)

func newGameAutoplayCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "autoplay <id>",
		Short: "Let a bot play the game to the end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := bot.NewStrategy(strategy, random.New())
			if !ok {
				return fmt.Errorf("unknown strategy %q: use %s or %s", strategy, bot.StrategyRandom, bot.StrategyMemory)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			svc := bot.NewService(st, nil, logger)
			result, err := svc.Play(ctx, &apiBoard{gameID: args[0]}, nil)
			if err != nil {
				return err
			}

			var final Game
			if err := client.Get(cmd.Context(), "/api/v1/games/"+args[0], &final); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(final)
			if cfg.Output != "json" {
				fmt.Printf("Bot flipped %d cards\n", result.Flips)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", bot.StrategyMemory, "Bot strategy: random, memory")

	return cmd
}

// apiBoard plays a server game through the JSON API
type apiBoard struct {
	gameID string
}

func (b *apiBoard) Snapshot(ctx context.Context) (model.Snapshot, error) {
	var g Game
	if err := client.Get(ctx, "/api/v1/games/"+b.gameID, &g); err != nil {
		return model.Snapshot{}, err
	}
	return g.toSnapshot(), nil
}

func (b *apiBoard) Flip(ctx context.Context, id model.CardID) (model.Snapshot, error) {
	var g Game
	req := map[string]string{"card_id": string(id)}
	if err := client.Post(ctx, fmt.Sprintf("/api/v1/games/%s/flip", b.gameID), req, &g); err != nil {
		return model.Snapshot{}, err
	}
	return g.toSnapshot(), nil
}

func (g Game) toSnapshot() model.Snapshot {
	cards := make([]model.CardView, len(g.Cards))
	for i, c := range g.Cards {
		cards[i] = model.CardView{
			ID:     model.CardID(c.ID),
			Face:   model.CardFace(c.Face),
			Symbol: model.Symbol(c.Symbol),
		}
	}
	selection := make([]model.CardID, len(g.Selection))
	for i, id := range g.Selection {
		selection[i] = model.CardID(id)
	}

	return model.Snapshot{
		GameID: model.GameID(g.ID),
		State: model.GameState{
			MatchedPairs:  g.MatchedPairs,
			TotalPairs:    g.TotalPairs,
			BoardLocked:   g.BoardLocked,
			TimeRemaining: g.TimeRemaining,
			Phase:         model.Phase(g.Phase),
		},
		Status:    model.Status(g.Status),
		Cards:     cards,
		Selection: selection,
		Version:   g.Version,
		UpdatedAt: g.UpdatedAt,
	}
}
