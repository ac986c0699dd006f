package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/memorygame/internal/model"
)

func TestReadEvents(t *testing.T) {
	stream := strings.Join([]string{
		"retry: 3000",
		"",
		"event: connected",
		"data: ok",
		"",
		": keepalive",
		"event: card",
		`data: <div id="card-1" hx-swap-oob="innerHTML">`,
		`data: <img src="/static/img/1.gif"></div>`,
		"",
		"",
	}, "\n")

	var events []SSEEvent
	err := readEvents(strings.NewReader(stream), func(e SSEEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "connected", events[0].Event)
	assert.Equal(t, "ok", events[0].Data)
	assert.Equal(t, "card", events[1].Event)
	assert.Equal(t, "<div id=\"card-1\" hx-swap-oob=\"innerHTML\">\n<img src=\"/static/img/1.gif\"></div>", events[1].Data)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"plain text", "connected", "connected"},
		{"fragment", `<span id="timer" hx-swap-oob="innerHTML"> 42 </span>`, "42"},
		{"nested", "<div><p>Pairs</p>\n<p>3/8</p></div>", "Pairs 3/8"},
		{"long", strings.Repeat("x", 120), strings.Repeat("x", 100) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(tt.data))
		})
	}
}

func TestFormatGame(t *testing.T) {
	g := Game{
		ID:            "g1",
		Phase:         "playing",
		Status:        "awaiting_second_flip",
		MatchedPairs:  1,
		TotalPairs:    2,
		TimeRemaining: 37,
		Cards: []Card{
			{ID: "a", Face: "matched", Symbol: "1.gif"},
			{ID: "b", Face: "up", Symbol: "2.webp"},
			{ID: "c", Face: "matched", Symbol: "1.gif"},
			{ID: "d", Face: "down"},
		},
	}

	out := FormatGame(g)
	assert.Contains(t, out, "Game: g1")
	assert.Contains(t, out, "Time: 37s  Pairs: 1/2")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	board := lines[len(lines)-1]
	assert.Contains(t, board, " 0:(1)")
	assert.Contains(t, board, " 1:[2]")
	assert.Contains(t, board, " 3:##")
	assert.NotContains(t, out, "Time's up!")
}

func TestFormatGameOutcome(t *testing.T) {
	assert.Contains(t, FormatGame(Game{Phase: "won"}), "You found every pair!")
	assert.Contains(t, FormatGame(Game{Phase: "lost"}), "Time's up!")
}

func TestCardAt(t *testing.T) {
	g := Game{Cards: []Card{{ID: "a"}, {ID: "b"}}}

	id, err := cardAt(g, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", id)

	_, err = cardAt(g, 2)
	assert.Error(t, err)
	_, err = cardAt(g, -1)
	assert.Error(t, err)
}

func TestTokenFile(t *testing.T) {
	c := &Config{TokenFile: filepath.Join(t.TempDir(), "nested", "token")}

	// Missing file is fine
	require.NoError(t, c.LoadToken())
	assert.Empty(t, c.Token)

	require.NoError(t, c.SaveToken("sess_abc"))

	loaded := &Config{TokenFile: c.TokenFile}
	require.NoError(t, loaded.LoadToken())
	assert.Equal(t, "sess_abc", loaded.Token)

	require.NoError(t, loaded.ClearToken())
	assert.Empty(t, loaded.Token)
	require.NoError(t, loaded.ClearToken(), "clearing twice is fine")

	reloaded := &Config{TokenFile: c.TokenFile}
	require.NoError(t, reloaded.LoadToken())
	assert.Empty(t, reloaded.Token)
}

func TestLoadTokenKeepsExplicitToken(t *testing.T) {
	c := &Config{Token: "sess_flag", TokenFile: filepath.Join(t.TempDir(), "token")}
	require.NoError(t, c.LoadToken())
	assert.Equal(t, "sess_flag", c.Token)
}

func TestGameToSnapshot(t *testing.T) {
	g := Game{
		ID:            "g1",
		Phase:         "playing",
		Status:        "awaiting_second_flip",
		MatchedPairs:  2,
		TotalPairs:    8,
		TimeRemaining: 12,
		BoardLocked:   false,
		Cards:         []Card{{ID: "a", Face: "up", Symbol: "1.gif"}, {ID: "b", Face: "down"}},
		Selection:     []string{"a"},
		Version:       7,
	}

	snap := g.toSnapshot()
	assert.Equal(t, model.GameID("g1"), snap.GameID)
	assert.Equal(t, model.PhasePlaying, snap.State.Phase)
	assert.Equal(t, model.StatusAwaitingSecondFlip, snap.Status)
	assert.Equal(t, 2, snap.State.MatchedPairs)
	assert.Equal(t, 12, snap.State.TimeRemaining)
	assert.Equal(t, []model.CardID{"a"}, snap.Selection)
	assert.Equal(t, model.CardView{ID: "a", Face: model.FaceUp, Symbol: "1.gif"}, snap.Cards[0])
	assert.Equal(t, uint64(7), snap.Version)
}
