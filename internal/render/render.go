// Package render defines the presentation boundary of a game.
//
// The game controller drives a Renderer and never touches HTML, terminals or
// assets directly. A Renderer only has to honour the commands in the order they
// are issued; it does not need to track game rules.
package render

import "github.com/mcoot/memorygame/internal/model"

// ClickHandler receives the identity of a clicked card
type ClickHandler func(id model.CardID)

// Renderer materializes a board and reports clicks back to the game
type Renderer interface {
	// RenderBoard replaces the board with the given cards, all face down
	RenderBoard(cards []model.Card)

	Flip(id model.CardID)
	Unflip(id model.CardID)

	// MarkMatched leaves the card face up permanently and no longer clickable
	MarkMatched(id model.CardID)

	// OnCardClick subscribes handler to click notifications, replacing any previous one
	OnCardClick(handler ClickHandler)

	ShowTime(remaining int)
	ShowOverlayImage(asset string)
	ShowOverlay()
	HideOverlay()
}

// Clickable is a Renderer whose clicks are delivered from outside the renderer,
// for example by an HTTP handler
type Clickable interface {
	Renderer

	// Click notifies the subscribed handler, if any
	Click(id model.CardID)
}

// Nop is a Renderer that draws nothing; Click still reaches the subscriber
type Nop struct {
	handler ClickHandler
}

var _ Clickable = (*Nop)(nil)

func (n *Nop) RenderBoard([]model.Card) {}
func (n *Nop) Flip(model.CardID) {}
func (n *Nop) Unflip(model.CardID) {}
func (n *Nop) MarkMatched(model.CardID) {}
func (n *Nop) ShowTime(int) {}
func (n *Nop) ShowOverlayImage(string) {}
func (n *Nop) ShowOverlay() {}
func (n *Nop) HideOverlay() {}
func (n *Nop) OnCardClick(h ClickHandler) { n.handler = h }

// Click forwards to the subscribed handler
func (n *Nop) Click(id model.CardID) {
	if n.handler != nil {
		n.handler(id)
	}
}
