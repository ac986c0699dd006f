package pages

import (
	"strings"

	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/web/templates/components"
	"github.com/mcoot/memorygame/internal/web/templates/layout"
)

// HomeData holds data for the home page
type HomeData struct {
	layout.PageData
	Next         string       // Where to go after signing in
	ActiveGameID model.GameID // Empty when the player has no game to resume
}

// GameData holds data for the game page
type GameData struct {
	layout.PageData
	Snapshot model.Snapshot
	Overlay  components.OverlayState
}

// GamePath returns the URL of a game's page
func GamePath(gameID model.GameID) string {
	return "/game/" + string(gameID)
}

// EventsPath returns the URL of a game's event stream
func EventsPath(gameID model.GameID) string {
	return GamePath(gameID) + "/events"
}

// QuitPath returns the URL that ends a game
func QuitPath(gameID model.GameID) string {
	return GamePath(gameID) + "/quit"
}

func sseEvents() string {
	types := model.AllEventTypes()
	names := make([]string, len(types))
	for i, e := range types {
		names[i] = string(e)
	}
	return strings.Join(names, ",")
}
