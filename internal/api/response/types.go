package response

import (
	"time"

	"github.com/mcoot/memorygame/internal/model"
	"github.com/mcoot/memorygame/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player    `json:"player"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Card represents one card on the board.
// Symbol is omitted while the card is face down.
type Card struct {
	ID     string `json:"id"`
	Face   string `json:"face"`
	Symbol string `json:"symbol,omitempty"`
}

// CardFromView converts a model.CardView
func CardFromView(v model.CardView) Card {
	return Card{
		ID:     string(v.ID),
		Face:   string(v.Face),
		Symbol: string(v.Symbol),
	}
}

// Game represents a game's current state
type Game struct {
	ID            string    `json:"id"`
	Phase         string    `json:"phase"`
	Status        string    `json:"status"`
	MatchedPairs  int       `json:"matched_pairs"`
	TotalPairs    int       `json:"total_pairs"`
	TimeRemaining int       `json:"time_remaining"`
	BoardLocked   bool      `json:"board_locked"`
	Cards         []Card    `json:"cards"`
	Selection     []string  `json:"selection"`
	Version       uint64    `json:"version"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GameFromSnapshot converts a model.Snapshot
func GameFromSnapshot(s model.Snapshot) Game {
	cards := make([]Card, len(s.Cards))
	for i, c := range s.Cards {
		cards[i] = CardFromView(c)
	}

	selection := make([]string, len(s.Selection))
	for i, id := range s.Selection {
		selection[i] = string(id)
	}

	return Game{
		ID:            string(s.GameID),
		Phase:         string(s.State.Phase),
		Status:        string(s.Status),
		MatchedPairs:  s.State.MatchedPairs,
		TotalPairs:    s.State.TotalPairs,
		TimeRemaining: s.State.TimeRemaining,
		BoardLocked:   s.State.BoardLocked,
		Cards:         cards,
		Selection:     selection,
		Version:       s.Version,
		UpdatedAt:     s.UpdatedAt,
	}
}

// Health is the response of the health endpoint
type Health struct {
	Status    string `json:"status"`
	LiveGames int    `json:"live_games"`
}
