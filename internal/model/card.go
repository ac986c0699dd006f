package model

// CardID identifies a single physical card on a board
// IDs are minted per game, so a card from an earlier game never matches a current one
type CardID string

// Symbol is the face-identifier printed on a card
type Symbol string

// Asset references used by the board
const (
	CardBackAsset = "back.png"
	VictoryAsset  = "ganaste.gif"
	DefeatAsset   = "perdiste.gif"
)

// DefaultSymbols returns the eight card faces of a standard game
func DefaultSymbols() []Symbol {
	return []Symbol{
		"1.gif", "2.webp", "3.webp", "4.jpeg",
		"5.jpeg", "6.jpeg", "7.jpeg", "8.jpeg",
	}
}

// Card binds a card identity to its face
type Card struct {
	ID     CardID
	Symbol Symbol
}

// CardFace is how a card is currently shown
type CardFace string

const (
	FaceDown    CardFace = "down"
	FaceUp      CardFace = "up"
	FaceMatched CardFace = "matched"
)

// CardView is the presentation state of one card
// Symbol is empty while the card is face down
type CardView struct {
	ID     CardID
	Symbol Symbol
	Face   CardFace
}

// IsClickable returns true if clicking the card can flip it
func (v CardView) IsClickable() bool {
	return v.Face == FaceDown
}
