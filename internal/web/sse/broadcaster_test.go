package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/testutil"
	"github.com/mcoot/memorygame/internal/web/templates/components"
)

func TestWrapForOOBSwap(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		html     string
		expected string
	}{
		{
			name:     "simple content",
			id:       "timer",
			html:     "<span>42</span>",
			expected: `<div id="timer" hx-swap-oob="innerHTML"><span>42</span></div>`,
		},
		{
			name:     "empty content",
			id:       "overlay",
			html:     "",
			expected: `<div id="overlay" hx-swap-oob="innerHTML"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapForOOBSwap(tt.id, tt.html)
			if result != tt.expected {
				t.Errorf("WrapForOOBSwap(%q, %q)\ngot:  %q\nwant: %q",
					tt.id, tt.html, result, tt.expected)
			}
		})
	}
}

// newTestHub starts a hub with one registered client
func newTestHub(t *testing.T) (*Hub, *Client) {
	t.Helper()
	hub := NewHub("game-1", testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)

	client := NewClient(hub, "player1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)
	return hub, client
}

// receive waits for the next message sent to a client
func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestBroadcaster_BroadcastSingleFragment(t *testing.T) {
	hub, client := newTestHub(t)
	broadcaster := NewBroadcaster(hub, testutil.NopLogger())

	broadcaster.Broadcast(context.Background(), model.EventTimer,
		Fragment{TargetID: components.TimerID, Component: components.Timer(42)})

	msg := receive(t, client)
	if !strings.HasPrefix(msg, "event: timer\n") {
		t.Errorf("message has wrong event: %s", msg)
	}
	if !strings.Contains(msg, `<div id="timer" hx-swap-oob="innerHTML">`) {
		t.Errorf("message is not an OOB swap: %s", msg)
	}
	if !strings.Contains(msg, ">42<") {
		t.Errorf("message does not contain the time: %s", msg)
	}
}

func TestBroadcaster_BroadcastCombinesFragments(t *testing.T) {
	hub, client := newTestHub(t)
	broadcaster := NewBroadcaster(hub, testutil.NopLogger())

	broadcaster.Broadcast(context.Background(), model.EventCard,
		Fragment{TargetID: "card-a", Component: components.Card("game-1", model.CardView{ID: "a", Symbol: "1.gif", Face: model.FaceMatched})},
		Fragment{TargetID: components.ScoreID, Component: components.Score(1, 8)},
	)

	msg := receive(t, client)
	if strings.Count(msg, "event: ") != 1 {
		t.Errorf("expected a single event: %s", msg)
	}
	if !strings.Contains(msg, `id="card-a"`) || !strings.Contains(msg, `id="score"`) {
		t.Errorf("expected both fragments: %s", msg)
	}
	if !strings.Contains(msg, "1/8") {
		t.Errorf("expected score: %s", msg)
	}
}
