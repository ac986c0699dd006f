package bot

import (
	"github.com/mcoot/memorygame/internal/dependencies/random"
	"github.com/mcoot/memorygame/internal/model"
)

// Strategy decides which card a bot flips next
type Strategy interface {
	// Observe is shown every snapshot the bot sees, including the result of its own flips
	Observe(snap model.Snapshot)

	// ChooseCard picks a face-down card to flip; false if there is none
	ChooseCard(snap model.Snapshot) (model.CardID, bool)
}

// NewStrategy returns the named strategy, or false for an unknown name
func NewStrategy(name string, rnd random.Random) (Strategy, bool) {
	switch name {
	case StrategyRandom:
		return NewRandomStrategy(rnd), true
	case StrategyMemory:
		return NewMemoryStrategy(rnd), true
	default:
		return nil, false
	}
}

// Strategy names
const (
	StrategyRandom = "random"
	StrategyMemory = "memory"
)

// faceDown returns the cards that can still be flipped
func faceDown(snap model.Snapshot) []model.CardID {
	var ids []model.CardID
	for _, c := range snap.Cards {
		if c.Face == model.FaceDown {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
