package tui

import (
	"log/slog"

	"github.com/rivo/tview"

	"github.com/mcoot/memorygame/internal/dependencies/clock"
	"github.com/mcoot/memorygame/internal/dependencies/ids"
	"github.com/mcoot/memorygame/internal/dependencies/random"
	"github.com/mcoot/memorygame/internal/dependencies/scheduler"
	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/services/game"
	"github.com/mcoot/memorygame/internal/services/shuffle"
)

// Play runs a single-player game in the terminal until the player quits.
// The game runs on the real timer and delay scheduler; rnd deals every board.
func Play(app *tview.Application, cfg game.Config, rnd random.Random, logger *slog.Logger) error {
	renderer := New(app)
	gen := ids.New()

	controller := game.NewController(
		model.GameID(gen.NewID()),
		cfg,
		renderer,
		shuffle.New(rnd),
		scheduler.NewTimer(),
		scheduler.NewDelayer(),
		gen,
		clock.New(),
		logger,
	)
	defer controller.Close()

	renderer.OnRestart(controller.Restart)
	renderer.OnQuit(app.Stop)

	// Draws queue up until Run starts draining them
	controller.StartGame()

	return app.Run()
}
