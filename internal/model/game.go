package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// Phase is the coarse lifecycle of a game
type Phase string

const (
	PhaseIdle    Phase = "idle"    // Constructed, never started
	PhasePlaying Phase = "playing" // Timer running, cards clickable
	PhaseWon     Phase = "won"     // All pairs matched in time
	PhaseLost    Phase = "lost"    // Timer ran out
)

// IsOver returns true for the terminal phases
func (p Phase) IsOver() bool {
	return p == PhaseWon || p == PhaseLost
}

// Status is the fine-grained state derived from phase, lock and selection
type Status string

const (
	StatusIdle               Status = "idle"
	StatusAwaitingFirstFlip  Status = "awaiting_first_flip"
	StatusAwaitingSecondFlip Status = "awaiting_second_flip"
	StatusLocked             Status = "locked"
	StatusWon                Status = "won"
	StatusLost               Status = "lost"
)

// GameState holds the scalar state of a game
type GameState struct {
	MatchedPairs  int
	TotalPairs    int
	BoardLocked   bool
	TimeRemaining int // Seconds
	Phase         Phase
}

// Snapshot is a consistent, read-only view of a game at one instant
type Snapshot struct {
	GameID    GameID
	State     GameState
	Status    Status
	Cards     []CardView
	Selection []CardID
	Version   uint64 // Increments on every state change
	UpdatedAt time.Time
}

// Card returns the view of the card with the given ID, or false if not on the board
func (s *Snapshot) Card(id CardID) (CardView, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return CardView{}, false
}

// GameRecord is the stored form of a game, used to restore views after reload
type GameRecord struct {
	ID        GameID
	PlayerID  PlayerID
	Snapshot  Snapshot
	CreatedAt time.Time
	UpdatedAt time.Time
}
