package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameFlipCmd())
	cmd.AddCommand(newGameRestartCmd())
	cmd.AddCommand(newGameQuitCmd())
	cmd.AddCommand(newGameAutoplayCmd())

	return cmd
}

func newGameNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new game, replacing any current one",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post(cmd.Context(), "/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Get a game's state (defaults to your active game)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/games/active"
			if len(args) == 1 {
				path = "/api/v1/games/" + args[0]
			}

			var result Game
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				if HasCode(err, "NO_ACTIVE_GAME") {
					return fmt.Errorf("%w: start one with 'memgame game new'", err)
				}
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameFlipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flip <id> <card>",
		Short: "Flip a card, given by its ID or its position on the board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			cardID, err := resolveCard(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}

			req := map[string]string{"card_id": cardID}
			var result Game

			if err := client.Post(cmd.Context(), fmt.Sprintf("/api/v1/games/%s/flip", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// resolveCard maps a board position to that card's ID; anything else is taken as an ID
func resolveCard(ctx context.Context, gameID, card string) (string, error) {
	pos, err := strconv.Atoi(card)
	if err != nil {
		return card, nil
	}

	var game Game
	if err := client.Get(ctx, "/api/v1/games/"+gameID, &game); err != nil {
		return "", err
	}
	return cardAt(game, pos)
}

func cardAt(game Game, pos int) (string, error) {
	if pos < 0 || pos >= len(game.Cards) {
		return "", fmt.Errorf("card position must be between 0 and %d", len(game.Cards)-1)
	}
	return game.Cards[pos].ID, nil
}

func newGameRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <id>",
		Short: "Deal a fresh board and reset the timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post(cmd.Context(), fmt.Sprintf("/api/v1/games/%s/restart", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameQuitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quit <id>",
		Short: "End a game and discard it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), fmt.Sprintf("/api/v1/games/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game ended")
			return nil
		},
	}
}
