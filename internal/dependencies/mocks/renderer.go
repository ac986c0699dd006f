package mocks

import (
	"sync"

	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/render"
)

// RendererCall is one command received by a RecordingRenderer
type RendererCall struct {
	Method string
	CardID model.CardID
	Value  int
	Asset  string
}

// RecordingRenderer is a mock Renderer that records every command
type RecordingRenderer struct {
	mu      sync.Mutex
	calls   []RendererCall
	cards   []model.Card
	faces   map[model.CardID]model.CardFace
	overlay bool
	image   string
	time    int
	handler render.ClickHandler
}

// Ensure RecordingRenderer implements Clickable
var _ render.Clickable = (*RecordingRenderer)(nil)

// NewRecordingRenderer creates an empty RecordingRenderer
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{faces: make(map[model.CardID]model.CardFace)}
}

func (r *RecordingRenderer) record(call RendererCall) {
	r.calls = append(r.calls, call)
}

// RenderBoard records the new board, all face down
func (r *RecordingRenderer) RenderBoard(cards []model.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards = append([]model.Card(nil), cards...)
	r.faces = make(map[model.CardID]model.CardFace, len(cards))
	for _, c := range cards {
		r.faces[c.ID] = model.FaceDown
	}
	r.record(RendererCall{Method: "RenderBoard", Value: len(cards)})
}

// Flip records a card turning face up
func (r *RecordingRenderer) Flip(id model.CardID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces[id] = model.FaceUp
	r.record(RendererCall{Method: "Flip", CardID: id})
}

// Unflip records a card turning face down
func (r *RecordingRenderer) Unflip(id model.CardID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces[id] = model.FaceDown
	r.record(RendererCall{Method: "Unflip", CardID: id})
}

// MarkMatched records a card being matched
func (r *RecordingRenderer) MarkMatched(id model.CardID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces[id] = model.FaceMatched
	r.record(RendererCall{Method: "MarkMatched", CardID: id})
}

// OnCardClick stores the click subscriber
func (r *RecordingRenderer) OnCardClick(handler render.ClickHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = handler
	r.record(RendererCall{Method: "OnCardClick"})
}

// ShowTime records the displayed countdown
func (r *RecordingRenderer) ShowTime(remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.time = remaining
	r.record(RendererCall{Method: "ShowTime", Value: remaining})
}

// ShowOverlayImage records the overlay asset
func (r *RecordingRenderer) ShowOverlayImage(asset string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.image = asset
	r.record(RendererCall{Method: "ShowOverlayImage", Asset: asset})
}

// ShowOverlay records the overlay becoming visible
func (r *RecordingRenderer) ShowOverlay() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overlay = true
	r.record(RendererCall{Method: "ShowOverlay"})
}

// HideOverlay records the overlay being hidden
func (r *RecordingRenderer) HideOverlay() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overlay = false
	r.record(RendererCall{Method: "HideOverlay"})
}

// Click delivers a click to the subscriber, as the platform would
func (r *RecordingRenderer) Click(id model.CardID) {
	r.mu.Lock()
	handler := r.handler
	r.mu.Unlock()
	if handler != nil {
		handler(id)
	}
}

// ClickIndex clicks the card at the given board position
func (r *RecordingRenderer) ClickIndex(idx int) {
	r.Click(r.Card(idx).ID)
}

// Card returns the card at the given board position
func (r *RecordingRenderer) Card(idx int) model.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cards[idx]
}

// Cards returns the current board
func (r *RecordingRenderer) Cards() []model.Card {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Card(nil), r.cards...)
}

// Face returns how the card with the given ID is currently drawn
func (r *RecordingRenderer) Face(id model.CardID) model.CardFace {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.faces[id]
}

// OverlayVisible returns true while the overlay is shown
func (r *RecordingRenderer) OverlayVisible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlay
}

// OverlayImage returns the last overlay asset
func (r *RecordingRenderer) OverlayImage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.image
}

// DisplayedTime returns the last countdown shown
func (r *RecordingRenderer) DisplayedTime() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.time
}

// Calls returns every recorded command
func (r *RecordingRenderer) Calls() []RendererCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RendererCall(nil), r.calls...)
}

// CountCalls returns how many times the named method was called
func (r *RecordingRenderer) CountCalls(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// Reset forgets recorded commands but keeps the board
func (r *RecordingRenderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
