package bot

import (
	"github.com/mcoot/memorygame/internal/dependencies/random"
	"github.com/mcoot/memorygame/internal/model"
)

// MemoryStrategy remembers every symbol it has seen and completes known pairs
// before exploring unseen cards
type MemoryStrategy struct {
	random random.Random
	seen   map[model.CardID]model.Symbol
	game   model.GameID
}

// NewMemoryStrategy creates a MemoryStrategy with nothing remembered
func NewMemoryStrategy(rnd random.Random) *MemoryStrategy {
	return &MemoryStrategy{
		random: rnd,
		seen:   make(map[model.CardID]model.Symbol),
	}
}

// Observe records the symbols of face-up cards
func (s *MemoryStrategy) Observe(snap model.Snapshot) {
	if snap.GameID != s.game {
		s.game = snap.GameID
		clear(s.seen)
	}
	for _, c := range snap.Cards {
		if c.Symbol != "" {
			s.seen[c.ID] = c.Symbol
		}
	}
}

// ChooseCard completes a remembered pair if it can, otherwise flips an unseen card
func (s *MemoryStrategy) ChooseCard(snap model.Snapshot) (model.CardID, bool) {
	down := faceDown(snap)
	if len(down) == 0 {
		return "", false
	}

	switch len(snap.Selection) {
	case 0:
		// A pair already seen but not yet matched
		bySymbol := make(map[model.Symbol]model.CardID)
		for _, id := range down {
			sym, ok := s.seen[id]
			if !ok {
				continue
			}
			if _, twin := bySymbol[sym]; twin {
				return bySymbol[sym], true
			}
			bySymbol[sym] = id
		}
	case 1:
		// The twin of the selected card
		if sym, ok := s.seen[snap.Selection[0]]; ok {
			for _, id := range down {
				if id != snap.Selection[0] && s.seen[id] == sym {
					return id, true
				}
			}
		}
	}

	var unseen []model.CardID
	for _, id := range down {
		if _, ok := s.seen[id]; !ok {
			unseen = append(unseen, id)
		}
	}
	if len(unseen) > 0 {
		return unseen[s.random.Intn(len(unseen))], true
	}
	return down[s.random.Intn(len(down))], true
}
