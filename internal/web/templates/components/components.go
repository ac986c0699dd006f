package components

import "github.com/mcoot/memorygame/internal/model"

// Element IDs targeted by out-of-band swaps
const (
	BoardID   = "board"
	TimerID   = "timer"
	ScoreID   = "score"
	OverlayID = "overlay"
)

// lowTimeThreshold is when the timer turns red
const lowTimeThreshold = 10

// OverlayState is what the end-of-game overlay currently shows
type OverlayState struct {
	Visible bool
	Image   string
}

// CardElementID returns the DOM id of a card's slot
func CardElementID(id model.CardID) string {
	return "card-" + string(id)
}

// ImagePath returns the URL of a face or outcome asset
func ImagePath(asset string) string {
	return "/static/img/" + asset
}

// FlipPath returns the URL that flips a card
func FlipPath(gameID model.GameID, id model.CardID) string {
	return "/game/" + string(gameID) + "/cards/" + string(id) + "/flip"
}

// RestartPath returns the URL that restarts a game
func RestartPath(gameID model.GameID) string {
	return "/game/" + string(gameID) + "/restart"
}

func outcomeText(image string) string {
	switch image {
	case model.VictoryAsset:
		return "You win!"
	case model.DefeatAsset:
		return "Time's up!"
	}
	return "Game over"
}
