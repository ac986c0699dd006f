package cli

import (
	"io"
	"log/slog"

	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/mcoot/memorygame/internal/dependencies/random"
	"github.com/mcoot/memorygame/internal/services/game"
	"github.com/mcoot/memorygame/internal/tui"
)

func newPlayCmd() *cobra.Command {
	gameCfg := game.DefaultConfig()
	var seed uint64

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game locally in the terminal",
		Long: `Play a memory game in the terminal without a server.

Move with the arrow keys and press Enter to flip a card.
Press Ctrl+C to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to tview; logs would corrupt the screen
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			return tui.Play(tview.NewApplication(), gameCfg, random.FromSeed(seed), logger)
		},
	}

	cmd.Flags().DurationVar(&gameCfg.Duration, "duration", gameCfg.Duration, "Time limit, in whole seconds")
	cmd.Flags().DurationVar(&gameCfg.MismatchDelay, "mismatch-delay", gameCfg.MismatchDelay, "How long a mismatched pair stays face up")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Deal reproducibly from this seed (0 deals at random)")
	cmd.Flags().DurationVar(&gameCfg.OverlayDelay, "overlay-delay", gameCfg.OverlayDelay, "Delay before the end-of-game overlay appears")

	return cmd
}
