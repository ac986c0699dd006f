package sse

import (
	"context"
	"sync"

	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/render"
	"github.com/mcoot/memorygame/internal/web/templates/components"
)

// BoardRenderer draws a game for browsers. Each command re-renders the affected
// fragment and broadcasts it; clicks arrive from the HTTP flip handler.
type BoardRenderer struct {
	gameID      model.GameID
	broadcaster *Broadcaster

	mu      sync.Mutex
	cards   []model.Card
	faces   map[model.CardID]model.CardFace
	symbols map[model.CardID]model.Symbol
	matched int
	overlay components.OverlayState
	handler render.ClickHandler
}

// Ensure BoardRenderer implements Clickable
var _ render.Clickable = (*BoardRenderer)(nil)

// NewBoardRenderer creates a BoardRenderer for a game
func NewBoardRenderer(gameID model.GameID, broadcaster *Broadcaster) *BoardRenderer {
	return &BoardRenderer{
		gameID:      gameID,
		broadcaster: broadcaster,
		faces:       make(map[model.CardID]model.CardFace),
		symbols:     make(map[model.CardID]model.Symbol),
	}
}

func (r *BoardRenderer) RenderBoard(cards []model.Card) {
	r.mu.Lock()
	r.cards = append([]model.Card(nil), cards...)
	r.faces = make(map[model.CardID]model.CardFace, len(cards))
	r.symbols = make(map[model.CardID]model.Symbol, len(cards))
	views := make([]model.CardView, len(cards))
	for i, c := range cards {
		r.faces[c.ID] = model.FaceDown
		r.symbols[c.ID] = c.Symbol
		views[i] = model.CardView{ID: c.ID, Face: model.FaceDown}
	}
	r.matched = 0
	total := len(cards) / 2
	r.mu.Unlock()

	r.broadcaster.Broadcast(context.Background(), model.EventBoard,
		Fragment{TargetID: components.BoardID, Component: components.Cards(r.gameID, views)},
		Fragment{TargetID: components.ScoreID, Component: components.Score(0, total)},
	)
}

func (r *BoardRenderer) Flip(id model.CardID) {
	r.setFace(id, model.FaceUp)
}

func (r *BoardRenderer) Unflip(id model.CardID) {
	r.setFace(id, model.FaceDown)
}

func (r *BoardRenderer) MarkMatched(id model.CardID) {
	r.setFace(id, model.FaceMatched)
}

// setFace records the card's face and broadcasts its slot, plus the score when
// a card becomes matched
func (r *BoardRenderer) setFace(id model.CardID, face model.CardFace) {
	r.mu.Lock()
	symbol, ok := r.symbols[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	if face == model.FaceMatched && r.faces[id] != model.FaceMatched {
		r.matched++
	}
	r.faces[id] = face
	matchedPairs, total := r.matched/2, len(r.cards)/2
	r.mu.Unlock()

	view := model.CardView{ID: id, Face: face}
	if face != model.FaceDown {
		view.Symbol = symbol
	}

	fragments := []Fragment{{TargetID: components.CardElementID(id), Component: components.Card(r.gameID, view)}}
	if face == model.FaceMatched {
		fragments = append(fragments, Fragment{TargetID: components.ScoreID, Component: components.Score(matchedPairs, total)})
	}
	r.broadcaster.Broadcast(context.Background(), model.EventCard, fragments...)
}

func (r *BoardRenderer) OnCardClick(handler render.ClickHandler) {
	r.mu.Lock()
	r.handler = handler
	r.mu.Unlock()
}

func (r *BoardRenderer) ShowTime(remaining int) {
	r.broadcaster.Broadcast(context.Background(), model.EventTimer,
		Fragment{TargetID: components.TimerID, Component: components.Timer(remaining)},
	)
}

func (r *BoardRenderer) ShowOverlayImage(asset string) {
	r.updateOverlay(func(s *components.OverlayState) { s.Image = asset })
}

func (r *BoardRenderer) ShowOverlay() {
	r.updateOverlay(func(s *components.OverlayState) { s.Visible = true })
}

func (r *BoardRenderer) HideOverlay() {
	r.updateOverlay(func(s *components.OverlayState) { *s = components.OverlayState{} })
}

func (r *BoardRenderer) updateOverlay(change func(*components.OverlayState)) {
	r.mu.Lock()
	change(&r.overlay)
	state := r.overlay
	r.mu.Unlock()

	r.broadcaster.Broadcast(context.Background(), model.EventOverlay,
		Fragment{TargetID: components.OverlayID, Component: components.Overlay(r.gameID, state)},
	)
}

// Click forwards a click to the subscribed game
func (r *BoardRenderer) Click(id model.CardID) {
	r.mu.Lock()
	handler := r.handler
	r.mu.Unlock()
	if handler != nil {
		handler(id)
	}
}
