package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		fmt.Print(FormatGame(v))
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player    `json:"player"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Card response type
type Card struct {
	ID     string `json:"id"`
	Face   string `json:"face"`
	Symbol string `json:"symbol,omitempty"`
}

// Game response type
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

// HealthResult response type
type HealthResult struct {
	Status    string `json:"status"`
	LiveGames int    `json:"live_games"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
	if !a.ExpiresAt.IsZero() {
		fmt.Printf("Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
	}
}

// boardColumns matches the 4x4 board the web page draws
const boardColumns = 4

// FormatGame renders a game as text: a header and the board grid.
// Cells are numbered so they can be passed to "game flip".
func FormatGame(g Game) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Game: %s\n", g.ID)
	fmt.Fprintf(&b, "Status: %s\n", g.Status)
	fmt.Fprintf(&b, "Time: %ds  Pairs: %d/%d\n", g.TimeRemaining, g.MatchedPairs, g.TotalPairs)
	b.WriteString("\n")

	for i, c := range g.Cards {
		fmt.Fprintf(&b, "%2d:%-6s", i, cardLabel(c))
		if i%boardColumns == boardColumns-1 || i == len(g.Cards)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}

	switch g.Phase {
	case "won":
		b.WriteString("\nYou found every pair!\n")
	case "lost":
		b.WriteString("\nTime's up!\n")
	}

	return b.String()
}

func cardLabel(c Card) string {
	switch c.Face {
	case "up":
		return "[" + symbolName(c.Symbol) + "]"
	case "matched":
		return "(" + symbolName(c.Symbol) + ")"
	default:
		return "##"
	}
}

// symbolName drops the image extension from a symbol
func symbolName(s string) string {
	return strings.TrimSuffix(s, path.Ext(s))
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Live games: %d\n", h.LiveGames)
}
