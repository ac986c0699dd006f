package bot

import (
	"github.com/mcoot/memorygame/internal/dependencies/random"
	"github.com/mcoot/memorygame/internal/model"
)

// RandomStrategy flips random face-down cards and remembers nothing
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

func (s *RandomStrategy) Observe(model.Snapshot) {}

// ChooseCard picks any face-down card
func (s *RandomStrategy) ChooseCard(snap model.Snapshot) (model.CardID, bool) {
	down := faceDown(snap)
	if len(down) == 0 {
		return "", false
	}
	return down[s.random.Intn(len(down))], true
}
