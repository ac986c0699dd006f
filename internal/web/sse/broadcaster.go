package sse

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/a-h/templ"

	"github.com/mcoot/memorygame/internal/model"
)

// Fragment is a component to be swapped into the element with the given id
type Fragment struct {
	TargetID  string
	Component templ.Component
}

// Broadcaster renders fragments and pushes them to one game's SSE clients
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster for a hub
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster"), slog.String("game_id", string(hub.gameID))),
	}
}

// Broadcast renders each fragment wrapped for an out-of-band swap and sends
// them together as a single event
func (b *Broadcaster) Broadcast(ctx context.Context, event model.EventType, fragments ...Fragment) {
	var html bytes.Buffer
	for _, f := range fragments {
		var buf bytes.Buffer
		if err := f.Component.Render(ctx, &buf); err != nil {
			b.logger.Error("sse failed to render fragment",
				slog.String("event", string(event)),
				slog.String("target", f.TargetID),
				slog.Any("error", err))
			return
		}
		html.WriteString(WrapForOOBSwap(f.TargetID, buf.String()))
	}

	b.hub.BroadcastEvent(string(event), html.String())
}

// WrapForOOBSwap wraps HTML for an out-of-band swap of the target's contents,
// leaving the target element and its attributes in place
func WrapForOOBSwap(id, html string) string {
	return `<div id="` + id + `" hx-swap-oob="innerHTML">` + html + `</div>`
}
