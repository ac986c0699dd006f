package model

// EventType names the server-sent events pushed to a game's viewers
type EventType string

const (
	EventBoard   EventType = "board"   // Whole board re-rendered (new game)
	EventCard    EventType = "card"    // A single card changed face
	EventTimer   EventType = "timer"   // Countdown changed
	EventOverlay EventType = "overlay" // End-of-game overlay shown, hidden or re-imaged
)

// AllEventTypes returns every event a game stream can carry
func AllEventTypes() []EventType {
	return []EventType{EventBoard, EventCard, EventTimer, EventOverlay}
}
